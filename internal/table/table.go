// Package table описывает записи, пакеты записей одного листа и сводную таблицу.
package table

import "github.com/ryabkov82/sets-merger/internal/workbook"

// Имена колонок, которые добавляются к каждой записи.
const (
	ColumnTeacher    = "Teacher"
	ColumnSet        = "Set"
	ColumnSourceFile = "SourceFile"
)

// SheetMeta происхождение записи
type SheetMeta struct {
	File  string
	Sheet string
}

// Record одна строка данных листа
type Record struct {
	Meta    SheetMeta
	Teacher string
	Set     string
	Values  map[string]workbook.Cell
}

// Value возвращает значение колонки. Teacher и Set берутся из полей записи.
func (r Record) Value(column string) (workbook.Cell, bool) {
	switch column {
	case ColumnTeacher:
		return workbook.Text(r.Teacher), true
	case ColumnSet:
		return workbook.Text(r.Set), true
	}
	c, ok := r.Values[column]
	return c, ok
}

// Batch записи одного листа с общим упорядоченным набором колонок
type Batch struct {
	Meta    SheetMeta
	Columns []string
	Records []Record
}

// Len возвращает количество записей.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Records)
}

// Table сводная таблица всех пакетов
type Table struct {
	Columns []string
	Records []Record
}

// Len возвращает количество записей.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Concat склеивает пакеты в порядке поступления. Колонки объединяются в порядке
// первого появления, отсутствующие значения остаются пустыми.
func Concat(batches []*Batch) *Table {
	t := &Table{}
	seen := make(map[string]bool)
	total := 0
	for _, b := range batches {
		for _, col := range b.Columns {
			if !seen[col] {
				seen[col] = true
				t.Columns = append(t.Columns, col)
			}
		}
		total += b.Len()
	}

	t.Records = make([]Record, 0, total)
	for _, b := range batches {
		t.Records = append(t.Records, b.Records...)
	}
	return t
}

// Row возвращает значения записи i в порядке колонок таблицы.
func (t *Table) Row(i int) []workbook.Cell {
	rec := t.Records[i]
	row := make([]workbook.Cell, len(t.Columns))
	for j, col := range t.Columns {
		if c, ok := rec.Value(col); ok {
			row[j] = c
		}
	}
	return row
}
