package merger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ryabkov82/sets-merger/internal/config"
	"github.com/ryabkov82/sets-merger/internal/extract"
	"github.com/ryabkov82/sets-merger/internal/files"
	"github.com/ryabkov82/sets-merger/internal/output"
	"github.com/ryabkov82/sets-merger/internal/table"
	"github.com/ryabkov82/sets-merger/internal/workbook"
)

var (
	// Во входном каталоге нет книг. Это не сбой, а отсутствие работы.
	ErrNoFilesFound = errors.New("книги не найдены")
	// Ни один лист не дал данных
	ErrNoDataProcessed = errors.New("не удалось обработать ни одного листа")
)

type FileMerger interface {
	MergeFiles(ctx context.Context, cfg *config.Config) (*Result, error)
}

// Source открытая книга
type Source interface {
	Sheets() []string
	Grid(sheet string) (workbook.Grid, error)
	Close() error
}

// Loader открывает книгу по пути.
type Loader func(path string) (Source, error)

// Enumerator перечисляет входные книги.
type Enumerator interface {
	FindWorkbooks(dir string) ([]files.FileInfo, error)
}

// TableWriter сохраняет сводную таблицу и возвращает путь.
type TableWriter interface {
	Write(tbl *table.Table, dir string) (string, error)
}

// Reporter выводит итог прогона, успешного или нет.
type Reporter interface {
	Summary(res *Result, err error)
}

// SetsMerger объединяет листы всех книг каталога в одну таблицу.
type SetsMerger struct {
	Logger   *slog.Logger
	Files    Enumerator
	Open     Loader
	Writer   TableWriter // если nil, output.Writer по конфигурации
	Reporter Reporter
}

func NewSetsMerger(logger *slog.Logger, reporter Reporter) *SetsMerger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SetsMerger{
		Logger:   logger,
		Files:    files.NewDiscovery(),
		Open:     OpenWorkbook,
		Reporter: reporter,
	}
}

// OpenWorkbook Loader по умолчанию
func OpenWorkbook(path string) (Source, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// MergeFiles выполняет прогон. Result возвращается всегда, даже вместе с ошибкой:
// в нём статистика и диагностика. Ошибки отдельных книг и листов не прерывают прогон.
func (m *SetsMerger) MergeFiles(ctx context.Context, cfg *config.Config) (res *Result, err error) {
	res = &Result{}
	defer func() {
		if m.Reporter != nil {
			m.Reporter.Summary(res, err)
		}
	}()

	m.Logger.InfoContext(ctx, "запуск обработки",
		slog.String("input_dir", cfg.InputDir),
		slog.String("output_dir", cfg.OutputDir))

	for _, dir := range []string{cfg.InputDir, cfg.OutputDir} {
		if err := files.CheckDir(dir); err != nil {
			m.Logger.ErrorContext(ctx, "каталог недоступен", slog.String("dir", dir), slog.String("error", err.Error()))
			return res, err
		}
	}

	found, err := m.Files.FindWorkbooks(cfg.InputDir)
	if err != nil {
		return res, fmt.Errorf("ошибка поиска книг: %w", err)
	}
	if len(found) == 0 {
		m.Logger.WarnContext(ctx, "книги не найдены", slog.String("input_dir", cfg.InputDir))
		return res, fmt.Errorf("%w в %s", ErrNoFilesFound, cfg.InputDir)
	}
	m.Logger.InfoContext(ctx, "найдены книги", slog.Int("count", len(found)))

	agg := NewAggregator(m.Logger)
	agg.SetFilesFound(len(found))

	extractor := extract.New(cfg.ExtractLayout(), m.Logger)
	extractor.AddSourceFile = cfg.AddSourceFile

	for _, file := range found {
		m.processFile(ctx, file, extractor, agg)
	}

	tbl, stats, err := agg.Finalize()
	res.Stats = stats
	if err != nil {
		m.Logger.ErrorContext(ctx, "нет данных для сохранения", slog.Any("stats", stats))
		return res, err
	}
	m.Logger.InfoContext(ctx, "данные объединены",
		slog.Int("sheets", stats.SheetsProcessed), slog.Int("rows", tbl.Len()))

	writer := m.Writer
	if writer == nil {
		writer = output.NewWriter(cfg.SampleRows)
	}
	path, err := writer.Write(tbl, cfg.OutputDir)
	if err != nil {
		m.Logger.ErrorContext(ctx, "ошибка сохранения результата", slog.String("error", err.Error()))
		return res, err
	}

	res.OutputPath = path
	res.Rows = tbl.Len()
	m.Logger.InfoContext(ctx, "обработка завершена",
		slog.String("output", path), slog.Int("rows", res.Rows), slog.Any("stats", stats))
	return res, nil
}

func (m *SetsMerger) processFile(ctx context.Context, file files.FileInfo, extractor *extract.Extractor, agg *Aggregator) {
	m.Logger.InfoContext(ctx, "обработка файла", slog.String("file", file.Name))

	src, err := m.Open(file.Path)
	if err != nil {
		if !workbook.IsOpenError(err) {
			err = &workbook.OpenError{File: file.Name, Err: err}
		}
		agg.RecordError(ctx, err.Error())
		return
	}
	defer func() {
		if err := src.Close(); err != nil {
			m.Logger.WarnContext(ctx, "ошибка закрытия книги", slog.String("file", file.Name), slog.String("error", err.Error()))
		}
	}()

	succeeded := 0
	for _, sheet := range src.Sheets() {
		meta := table.SheetMeta{File: file.Name, Sheet: sheet}
		m.Logger.DebugContext(ctx, "обработка листа", slog.String("file", meta.File), slog.String("sheet", meta.Sheet))

		var outcome extract.Outcome
		grid, err := readGrid(src, meta)
		if err != nil {
			outcome = extract.Outcome{Meta: meta, Err: err}
		} else {
			outcome = extractor.Extract(ctx, grid, meta)
		}

		if agg.Record(ctx, outcome) {
			succeeded++
		}
	}

	agg.RecordFileOutcome(ctx, file.Name, succeeded)
}

// readGrid читает лист; ошибка и паника загрузчика превращаются в ProcessingError.
func readGrid(src Source, meta table.SheetMeta) (grid workbook.Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, &extract.ProcessingError{File: meta.File, Sheet: meta.Sheet, Err: fmt.Errorf("%v", r)}
		}
	}()

	grid, err = src.Grid(meta.Sheet)
	if err != nil {
		return nil, &extract.ProcessingError{File: meta.File, Sheet: meta.Sheet, Err: err}
	}
	return grid, nil
}
