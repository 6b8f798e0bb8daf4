package merger

import (
	"context"
	"log/slog"

	"github.com/ryabkov82/sets-merger/internal/extract"
	"github.com/ryabkov82/sets-merger/internal/table"
)

// Aggregator копит пакеты листов и статистику прогона.
type Aggregator struct {
	logger  *slog.Logger
	batches []*table.Batch
	stats   Stats
}

func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// SetFilesFound фиксирует количество найденных книг.
func (a *Aggregator) SetFilesFound(n int) {
	a.stats.FilesFound = n
}

// Record принимает результат обработки листа и сообщает, дал ли лист данные.
func (a *Aggregator) Record(ctx context.Context, o extract.Outcome) bool {
	switch {
	case o.Batch.Len() > 0:
		a.RecordSuccess(ctx, o.Batch)
		return true
	case o.Rejection != nil:
		a.RecordWarning(ctx, o.Rejection.Error())
	case o.Err != nil:
		a.RecordError(ctx, o.Err.Error())
	default:
		a.logger.DebugContext(ctx, "пустой пакет отброшен",
			slog.String("file", o.Meta.File), slog.String("sheet", o.Meta.Sheet))
	}
	a.stats.SheetsSkipped++
	return false
}

// RecordSuccess добавляет пакет. Пустые пакеты игнорируются.
func (a *Aggregator) RecordSuccess(ctx context.Context, batch *table.Batch) {
	if batch.Len() == 0 {
		return
	}
	a.batches = append(a.batches, batch)
	a.stats.SheetsProcessed++
	a.logger.InfoContext(ctx, "лист обработан",
		slog.String("file", batch.Meta.File),
		slog.String("sheet", batch.Meta.Sheet),
		slog.Int("rows", batch.Len()))
}

// RecordFileOutcome засчитывает книгу, если хотя бы один её лист дал данные.
func (a *Aggregator) RecordFileOutcome(ctx context.Context, file string, succeeded int) {
	if succeeded > 0 {
		a.stats.FilesProcessed++
		a.logger.InfoContext(ctx, "файл обработан", slog.String("file", file), slog.Int("sheets", succeeded))
		return
	}
	a.logger.WarnContext(ctx, "в файле не обработано ни одного листа", slog.String("file", file))
}

// RecordError добавляет сообщение об ошибке.
func (a *Aggregator) RecordError(ctx context.Context, msg string) {
	a.stats.Errors = append(a.stats.Errors, msg)
	a.logger.ErrorContext(ctx, msg)
}

// RecordWarning добавляет предупреждение (отклонённый лист).
func (a *Aggregator) RecordWarning(ctx context.Context, msg string) {
	a.stats.Warnings = append(a.stats.Warnings, msg)
	a.logger.WarnContext(ctx, msg)
}

// Stats возвращает снимок статистики.
func (a *Aggregator) Stats() Stats {
	return a.stats.clone()
}

// Finalize склеивает пакеты в порядке поступления. Без пакетов возвращает ErrNoDataProcessed.
func (a *Aggregator) Finalize() (*table.Table, Stats, error) {
	if len(a.batches) == 0 {
		return nil, a.Stats(), ErrNoDataProcessed
	}
	return table.Concat(a.batches), a.Stats(), nil
}
