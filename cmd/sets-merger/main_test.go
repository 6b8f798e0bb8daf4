package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeRoster(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{{"TEACHER12345"}, {"Name"}, {"Ivanov"}, {"Итого"}, {"Подпись"}}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestRunMergesDirectory(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeRoster(t, filepath.Join(in, "a.xlsx"))

	stdout, _, err := execute(t, "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ОБРАБОТКА ЗАВЕРШЕНА")
	assert.FileExists(t, filepath.Join(out, "merged_sets_1.xlsx"))
}

func TestRunNoFilesIsNotFailure(t *testing.T) {
	stdout, _, err := execute(t, "-i", t.TempDir(), "-o", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "НЕТ ФАЙЛОВ ДЛЯ ОБРАБОТКИ")
}

func TestRunMissingInputFails(t *testing.T) {
	_, _, err := execute(t, "-i", filepath.Join(t.TempDir(), "nope"), "-o", t.TempDir())
	assert.Error(t, err)
}

func TestRunAddSource(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeRoster(t, filepath.Join(in, "a.xlsx"))

	_, _, err := execute(t, "-i", in, "-o", out, "--add-source")
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(out, "merged_sets_1.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Teacher", "Set", "SourceFile"}, rows[0])
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeRoster(t, filepath.Join(in, "a.xlsx"))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "input_dir: " + filepath.Join(in, "missing") + "\noutput_dir: " + out + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	_, _, err := execute(t, "-c", cfgPath)
	assert.Error(t, err)

	_, _, err = execute(t, "-c", cfgPath, "-i", in)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "merged_sets_1.xlsx"))
}

func TestRunInvalidConfig(t *testing.T) {
	_, stderr, err := execute(t, "--log-format", "xml")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Ошибка")
}
