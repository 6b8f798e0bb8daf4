package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryabkov82/sets-merger/internal/config"
	"github.com/ryabkov82/sets-merger/internal/logging"
	"github.com/ryabkov82/sets-merger/internal/merger"
	"github.com/ryabkov82/sets-merger/internal/report"
)

type flags struct {
	configFile string
	inputDir   string
	outputDir  string
	logLevel   string
	logFormat  string
	addSource  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "sets-merger",
		Short:         "Объединяет листы с наборами из всех книг каталога в одну таблицу",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "YAML-файл конфигурации")
	fs.StringVarP(&f.inputDir, "in", "i", "uploads", "каталог с исходными книгами")
	fs.StringVarP(&f.outputDir, "out", "o", ".", "каталог для результата")
	fs.StringVar(&f.logLevel, "log-level", "info", "уровень логирования: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "text", "формат логов: text или json")
	fs.BoolVar(&f.addSource, "add-source", false, "добавить колонку SourceFile с именем исходного файла")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return fail(cmd, fmt.Errorf("ошибка конфигурации: %w", err))
	}
	applyFlags(cmd, f, cfg)
	if err := cfg.Validate(); err != nil {
		return fail(cmd, err)
	}

	reporter := report.NewConsole(cmd.OutOrStdout())

	logger := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	ctx := logging.WithRunID(cmd.Context())

	_, err = merger.NewSetsMerger(logger, reporter).MergeFiles(ctx, cfg)
	if errors.Is(err, merger.ErrNoFilesFound) {
		return nil
	}
	// Причину уже напечатал reporter.
	return err
}

// applyFlags накладывает только явно заданные флаги поверх файла и окружения.
func applyFlags(cmd *cobra.Command, f flags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("in") {
		cfg.InputDir = f.inputDir
	}
	if changed("out") {
		cfg.OutputDir = f.outputDir
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if changed("add-source") {
		cfg.AddSourceFile = f.addSource
	}
}

func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Ошибка: %v\n", err)
	return err
}
