// Package report печатает итоговую сводку прогона.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ryabkov82/sets-merger/internal/merger"
)

// Console пишет сводку в текстовом виде.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Summary печатает итог прогона, успешного или нет.
func (c *Console) Summary(res *merger.Result, err error) {
	if res == nil {
		res = &merger.Result{}
	}
	s := res.Stats
	line := strings.Repeat("=", 50)

	status := "ОБРАБОТКА ЗАВЕРШЕНА"
	switch {
	case errors.Is(err, merger.ErrNoFilesFound):
		status = "НЕТ ФАЙЛОВ ДЛЯ ОБРАБОТКИ"
	case err != nil:
		status = "ОБРАБОТКА НЕ УДАЛАСЬ"
	}

	fmt.Fprintf(c.w, "\n%s\n%s\n%s\n", line, status, line)
	fmt.Fprintf(c.w, "Найдено файлов: %d\n", s.FilesFound)
	fmt.Fprintf(c.w, "Обработано файлов: %d\n", s.FilesProcessed)
	fmt.Fprintf(c.w, "Обработано листов: %d\n", s.SheetsProcessed)
	fmt.Fprintf(c.w, "Пропущено листов: %d\n", s.SheetsSkipped)
	fmt.Fprintf(c.w, "Строк в результате: %d\n", res.Rows)
	fmt.Fprintf(c.w, "Ошибок: %d\n", len(s.Errors))
	if res.OutputPath != "" {
		fmt.Fprintf(c.w, "Файл результата: %s\n", res.OutputPath)
	}
	if err != nil {
		fmt.Fprintf(c.w, "Причина: %v\n", err)
	}

	printList(c.w, "Ошибки", s.Errors)
	printList(c.w, "Предупреждения", s.Warnings)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
