package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/sets-merger/internal/table"
	"github.com/ryabkov82/sets-merger/internal/workbook"
)

// Outcome хранит результат обработки одного листа. Заполнено не более одного из
// Batch, Rejection, Err; если пусто всё, лист молча отброшен.
type Outcome struct {
	Meta      table.SheetMeta
	Batch     *table.Batch
	Teacher   TeacherID
	Rejection *Rejection
	Err       error
}

// Accepted сообщает, что лист дал пакет записей.
func (o Outcome) Accepted() bool {
	return o.Batch != nil
}

// Extractor применяет Layout к сырым листам.
type Extractor struct {
	Layout        Layout
	AddSourceFile bool
	Logger        *slog.Logger
}

// New создаёт Extractor. nil logger заменяется на slog.Default().
func New(layout Layout, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{Layout: layout, Logger: logger}
}

// Extract проверяет лист и собирает пакет. Паника внутри превращается в ProcessingError.
func (e *Extractor) Extract(ctx context.Context, grid workbook.Grid, meta table.SheetMeta) (out Outcome) {
	out.Meta = meta
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Meta: meta, Err: &ProcessingError{File: meta.File, Sheet: meta.Sheet, Err: fmt.Errorf("%v", r)}}
		}
	}()

	if rej := e.validate(grid, meta); rej != nil {
		out.Rejection = rej
		return out
	}

	out.Teacher = e.Layout.Teacher(grid.At(e.Layout.TeacherRow, e.Layout.TeacherCol))
	switch out.Teacher.Provenance {
	case Unknown:
		e.Logger.WarnContext(ctx, "нет данных об учителе в первой ячейке",
			slog.String("file", meta.File), slog.String("sheet", meta.Sheet))
	case Verbatim:
		e.Logger.WarnContext(ctx, "слишком короткое значение учителя, используется целиком",
			slog.String("file", meta.File), slog.String("sheet", meta.Sheet),
			slog.String("teacher", out.Teacher.Value))
	}

	batch := e.reshape(grid, meta, out.Teacher.Value)
	if batch.Len() == 0 {
		return out
	}
	out.Batch = batch
	return out
}

func (e *Extractor) validate(grid workbook.Grid, meta table.SheetMeta) *Rejection {
	n := grid.Rows()
	rej := &Rejection{File: meta.File, Sheet: meta.Sheet, Rows: n}
	switch {
	case n == 0:
		rej.Reason = ReasonEmptySheet
	case n < e.Layout.MinRows:
		rej.Reason = ReasonInsufficientRows
	case n <= e.Layout.HeaderRows+e.Layout.FooterRows:
		rej.Reason = ReasonNoDataRows
	default:
		return nil
	}
	return rej
}

func (e *Extractor) reshape(grid workbook.Grid, meta table.SheetMeta, teacher string) *table.Batch {
	columns := labels(grid, e.Layout.LabelRow)

	batch := &table.Batch{Meta: meta, Columns: append([]string{}, columns...)}
	batch.Columns = appendMissing(batch.Columns, table.ColumnTeacher, table.ColumnSet)
	if e.AddSourceFile {
		batch.Columns = appendMissing(batch.Columns, table.ColumnSourceFile)
	}

	last := grid.Rows() - e.Layout.FooterRows
	for r := e.Layout.HeaderRows; r < last; r++ {
		rec := table.Record{
			Meta:    meta,
			Teacher: teacher,
			Set:     meta.Sheet,
			Values:  make(map[string]workbook.Cell, len(columns)),
		}
		for c, col := range columns {
			if cell := grid.At(r, c); !cell.IsNull() {
				rec.Values[col] = cell
			}
		}
		if e.AddSourceFile {
			rec.Values[table.ColumnSourceFile] = workbook.Text(meta.File)
		}
		batch.Records = append(batch.Records, rec)
	}
	return batch
}

// labels строит названия колонок по строке row на всю ширину листа. Пустое
// название заменяется буквой колонки, повтор получает суффикс _2, _3 и т.д.
func labels(grid workbook.Grid, row int) []string {
	width := grid.Width()
	out := make([]string, width)
	taken := make(map[string]bool, width)
	for c := 0; c < width; c++ {
		base := grid.At(row, c).Value
		if base == "" {
			base, _ = excelize.ColumnNumberToName(c + 1)
		}
		label := base
		for n := 2; taken[label]; n++ {
			label = base + "_" + strconv.Itoa(n)
		}
		taken[label] = true
		out[c] = label
	}
	return out
}

func appendMissing(columns []string, names ...string) []string {
	for _, name := range names {
		found := false
		for _, c := range columns {
			if c == name {
				found = true
				break
			}
		}
		if !found {
			columns = append(columns, name)
		}
	}
	return columns
}
