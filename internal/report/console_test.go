package report

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryabkov82/sets-merger/internal/merger"
)

func TestSummarySuccess(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Summary(&merger.Result{
		OutputPath: "/out/merged_sets_3.xlsx",
		Rows:       17,
		Stats: merger.Stats{
			FilesFound:      2,
			FilesProcessed:  1,
			SheetsProcessed: 4,
			SheetsSkipped:   1,
			Errors:          []string{"ошибка открытия книги bad.xlsx: zip"},
			Warnings:        []string{"лист S в a.xlsx пуст"},
		},
	}, nil)

	out := buf.String()
	assert.Contains(t, out, "ОБРАБОТКА ЗАВЕРШЕНА")
	assert.Contains(t, out, "Найдено файлов: 2\n")
	assert.Contains(t, out, "Обработано файлов: 1\n")
	assert.Contains(t, out, "Обработано листов: 4\n")
	assert.Contains(t, out, "Пропущено листов: 1\n")
	assert.Contains(t, out, "Строк в результате: 17\n")
	assert.Contains(t, out, "Ошибок: 1\n")
	assert.Contains(t, out, "Файл результата: /out/merged_sets_3.xlsx")
	assert.Contains(t, out, "  - ошибка открытия книги bad.xlsx: zip\n")
	assert.Contains(t, out, "Предупреждения:\n  - лист S в a.xlsx пуст\n")
	assert.NotContains(t, out, "Причина")
}

func TestSummaryFailure(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Summary(&merger.Result{}, merger.ErrNoDataProcessed)

	out := buf.String()
	assert.Contains(t, out, "ОБРАБОТКА НЕ УДАЛАСЬ")
	assert.Contains(t, out, "Причина: "+merger.ErrNoDataProcessed.Error())
	assert.NotContains(t, out, "Файл результата")
	assert.NotContains(t, out, "Ошибки:")
}

func TestSummaryNoFiles(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Summary(nil, fmt.Errorf("%w в /in", merger.ErrNoFilesFound))

	assert.Contains(t, buf.String(), "НЕТ ФАЙЛОВ ДЛЯ ОБРАБОТКИ")
	assert.Contains(t, buf.String(), "Найдено файлов: 0\n")
}

func TestSummaryOtherError(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Summary(&merger.Result{}, errors.New("диск заполнен"))
	assert.Contains(t, buf.String(), "Причина: диск заполнен")
}

