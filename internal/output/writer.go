// Package output сохраняет сводную таблицу в новую xlsx-книгу.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/sets-merger/internal/table"
	"github.com/ryabkov82/sets-merger/internal/workbook"
)

const (
	// Шаблон имени результата: merged_sets_<N>.xlsx
	BaseName  = "merged_sets"
	SheetName = "Sheet1"

	minColWidth = 8
	maxColWidth = 60
)

// WriteError возвращается, если результат не удалось сохранить
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if errors.Is(e.Err, fs.ErrPermission) {
		return fmt.Sprintf("нет доступа к %s (возможно, файл открыт в Excel): %v", e.Path, e.Err)
	}
	return fmt.Sprintf("ошибка сохранения %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Writer пишет таблицу потоково через StreamWriter.
type Writer struct {
	BaseName   string
	SampleRows int

	// Лимит строк данных, по умолчанию лимит листа Excel минус заголовок
	MaxRows int
}

// NewWriter создаёт Writer со стандартным именем.
func NewWriter(sampleRows int) *Writer {
	return &Writer{
		BaseName:   BaseName,
		SampleRows: sampleRows,
		MaxRows:    excelize.TotalRows - 1,
	}
}

// Write сохраняет таблицу в первый свободный файл каталога dir и возвращает его путь.
// Существующие файлы никогда не перезаписываются.
func (w *Writer) Write(tbl *table.Table, dir string) (string, error) {
	if w.MaxRows > 0 && tbl.Len() > w.MaxRows {
		return "", &WriteError{Path: dir, Err: fmt.Errorf("строк %d, лимит листа %d", tbl.Len(), w.MaxRows)}
	}

	out, path, err := w.allocate(dir)
	if err != nil {
		return "", &WriteError{Path: dir, Err: err}
	}

	if err := w.write(tbl, out); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", &WriteError{Path: path, Err: err}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", &WriteError{Path: path, Err: err}
	}

	return path, nil
}

// allocate создаёт файл с наименьшим свободным номером. O_EXCL гарантирует,
// что чужой файл не будет перезаписан даже при гонке.
func (w *Writer) allocate(dir string) (*os.File, string, error) {
	for n := 1; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.xlsx", w.BaseName, n))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, path, err
		}
	}
}

func (w *Writer) write(tbl *table.Table, out *os.File) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля заголовка: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("ошибка создания StreamWriter: %w", err)
	}

	// ширина колонок задаётся до первой строки
	for i, width := range w.AnalyzeSample(tbl) {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("ошибка установки ширины колонки: %w", err)
		}
	}

	header := make([]interface{}, len(tbl.Columns))
	for i, col := range tbl.Columns {
		header[i] = excelize.Cell{Value: col, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("ошибка записи заголовков: %w", err)
	}

	styles := newStyleCache(f)
	for i := range tbl.Records {
		row := tbl.Row(i)
		values := make([]interface{}, len(row))
		for j, c := range row {
			v := cellValue(c)
			styleID, err := styles.id(c, v)
			if err != nil {
				return fmt.Errorf("ошибка создания числового формата: %w", err)
			}
			if styleID != 0 {
				values[j] = excelize.Cell{Value: v, StyleID: styleID}
			} else {
				values[j] = v
			}
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("ошибка записи строки %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("ошибка финального flush: %w", err)
	}
	return f.Write(out)
}

// AnalyzeSample оценивает ширину колонок по заголовку и первым SampleRows строкам.
func (w *Writer) AnalyzeSample(tbl *table.Table) []float64 {
	widths := make([]int, len(tbl.Columns))
	for i, col := range tbl.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}

	limit := tbl.Len()
	if w.SampleRows > 0 && w.SampleRows < limit {
		limit = w.SampleRows
	}
	for i := 0; i < limit; i++ {
		for j, c := range tbl.Row(i) {
			if n := utf8.RuneCountInString(c.Value); n > widths[j] {
				widths[j] = n
			}
		}
	}

	out := make([]float64, len(widths))
	for i, n := range widths {
		out[i] = float64(min(max(n+2, minColWidth), maxColWidth))
	}
	return out
}

// cellValue приводит значение к типу ячейки источника; пустое значение не пишется.
// Даты пишутся числом Excel, формат даты добавляет styleCache.
func cellValue(c workbook.Cell) interface{} {
	if c.IsNull() {
		return nil
	}

	switch c.Type {
	case excelize.CellTypeBool:
		return c.Value == "1" || strings.EqualFold(c.Value, "true")
	case excelize.CellTypeNumber, excelize.CellTypeDate:
		if n, err := strconv.ParseFloat(c.Value, 64); err == nil {
			return n
		}
	}
	return c.Value
}

// defaultDateFmt: "m/d/yy" для дат без сохранённого формата
const defaultDateFmt = 14

// styleCache переносит числовые форматы источника в результат,
// по одному стилю на каждый встреченный формат.
type styleCache struct {
	f      *excelize.File
	styles map[string]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, styles: make(map[string]int)}
}

// id возвращает стиль для записанного значения v; 0, если формат не нужен.
func (s *styleCache) id(c workbook.Cell, v interface{}) (int, error) {
	if _, ok := v.(float64); !ok {
		return 0, nil
	}

	numFmt, custom := c.NumFmt, c.CustomNumFmt
	if c.Type == excelize.CellTypeDate && numFmt == 0 && custom == "" {
		numFmt = defaultDateFmt
	}
	if numFmt == 0 && custom == "" {
		return 0, nil
	}

	key := strconv.Itoa(numFmt) + "_" + custom
	if id, ok := s.styles[key]; ok {
		return id, nil
	}

	style := &excelize.Style{NumFmt: numFmt}
	if custom != "" {
		style.CustomNumFmt = &custom
	}
	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.styles[key] = id
	return id, nil
}
