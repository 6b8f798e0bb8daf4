// Package workbook открывает xlsx-книги и отдаёт листы в виде сырых сеток
// без заголовков. Значения читаются без числового формата, формат хранится отдельно.
package workbook

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Cell сырое значение ячейки. Пустая строка означает отсутствующее значение.
type Cell struct {
	Value string
	Type  excelize.CellType

	// NumFmt и CustomNumFmt: числовой формат стиля исходной ячейки
	NumFmt       int
	CustomNumFmt string
}

// Null маркер пустой ячейки
var Null = Cell{}

// Text создаёт строковую ячейку.
func Text(s string) Cell {
	return Cell{Value: s, Type: excelize.CellTypeInlineString}
}

// IsNull сообщает, пуста ли ячейка.
func (c Cell) IsNull() bool {
	return c.Value == ""
}

// Grid строки листа в исходном порядке. Длина строк может различаться.
type Grid [][]Cell

// Rows возвращает количество строк.
func (g Grid) Rows() int {
	return len(g)
}

// Width возвращает длину самой широкой строки.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// At возвращает ячейку по координатам (с нуля), за пределами строки Null
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Null
	}
	return g[row][col]
}

// OpenError: книгу не удалось открыть как xlsx
type OpenError struct {
	File string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("ошибка открытия книги %s: %v", e.File, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Workbook открытая книга. Закрывается вызывающей стороной.
type Workbook struct {
	Name string
	f    *excelize.File
}

// Open открывает книгу по пути.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &OpenError{File: filepath.Base(path), Err: err}
	}
	return &Workbook{Name: filepath.Base(path), f: f}, nil
}

// Sheets возвращает имена листов в порядке книги.
func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// Grid читает лист целиком. Хвостовые пустые строки отбрасываются.
func (w *Workbook) Grid(sheet string) (Grid, error) {
	rows, err := w.f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения строк листа %q: %w", sheet, err)
	}
	defer rows.Close()

	var (
		grid    Grid
		lastRow int
	)
	for rowIdx := 1; rows.Next(); rowIdx++ {
		values, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки %d листа %q: %w", rowIdx, sheet, err)
		}

		row := make([]Cell, len(values))
		for i, v := range values {
			if v == "" {
				continue
			}
			cellRef, err := excelize.CoordinatesToCellName(i+1, rowIdx)
			if err != nil {
				return nil, err
			}
			row[i] = w.cell(sheet, cellRef, v)
			lastRow = rowIdx
		}
		grid = append(grid, row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("ошибка чтения листа %q: %w", sheet, err)
	}

	return grid[:lastRow], nil
}

// cell уточняет тип значения: в OOXML отсутствие атрибута t означает число,
// а дату отличает только числовой формат стиля.
func (w *Workbook) cell(sheet, cellRef, value string) Cell {
	c := Cell{Value: value}

	t, err := w.f.GetCellType(sheet, cellRef)
	if err != nil {
		return c
	}
	c.Type = t
	if t != excelize.CellTypeUnset && t != excelize.CellTypeNumber {
		return c
	}

	c.Type = excelize.CellTypeNumber
	styleID, err := w.f.GetCellStyle(sheet, cellRef)
	if err != nil || styleID == 0 {
		return c
	}
	style, err := w.f.GetStyle(styleID)
	if err != nil {
		return c
	}
	c.NumFmt = style.NumFmt
	if style.CustomNumFmt != nil {
		c.CustomNumFmt = *style.CustomNumFmt
	}
	if isDateFormat(c.NumFmt) || isDateCustomFormat(c.CustomNumFmt) {
		c.Type = excelize.CellTypeDate
	}
	return c
}

// Close освобождает книгу.
func (w *Workbook) Close() error {
	if w == nil || w.f == nil {
		return nil
	}
	return w.f.Close()
}

// IsOpenError сообщает, является ли err ошибкой открытия книги.
func IsOpenError(err error) bool {
	var oe *OpenError
	return errors.As(err, &oe)
}
