package merger

import "log/slog"

// Stats статистика прогона. Списки ошибок и предупреждений только пополняются.
type Stats struct {
	FilesFound      int
	FilesProcessed  int
	SheetsProcessed int
	SheetsSkipped   int
	Errors          []string
	Warnings        []string
}

// LogValue реализует slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("files_found", s.FilesFound),
		slog.Int("files_processed", s.FilesProcessed),
		slog.Int("sheets_processed", s.SheetsProcessed),
		slog.Int("sheets_skipped", s.SheetsSkipped),
		slog.Int("errors", len(s.Errors)),
		slog.Int("warnings", len(s.Warnings)),
	)
}

// clone возвращает копию, не разделяющую срезы с оригиналом.
func (s Stats) clone() Stats {
	s.Errors = append([]string(nil), s.Errors...)
	s.Warnings = append([]string(nil), s.Warnings...)
	return s
}

// Result итог прогона. OutputPath пуст, если файл не записан.
type Result struct {
	OutputPath string
	Rows       int
	Stats      Stats
}
