package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/ryabkov82/sets-merger/internal/extract"
)

// EnvPrefix префикс переменных окружения (SETS_INPUT_DIR и т.д.)
const EnvPrefix = "SETS"

type Config struct {
	InputDir      string        `yaml:"input_dir" envconfig:"INPUT_DIR" default:"uploads" validate:"required"`
	OutputDir     string        `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"." validate:"required"`
	SampleRows    int           `yaml:"sample_rows" envconfig:"SAMPLE_ROWS" default:"1000" validate:"gte=0"`
	AddSourceFile bool          `yaml:"add_source_file" envconfig:"ADD_SOURCE_FILE" default:"false"` // колонка с именем файла
	Layout        LayoutConfig  `yaml:"layout" envconfig:"LAYOUT"`
	Logging       LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LayoutConfig описывает структурное соглашение листов
type LayoutConfig struct {
	HeaderRows       int    `yaml:"header_rows" envconfig:"HEADER_ROWS" default:"2" validate:"gte=1"`
	FooterRows       int    `yaml:"footer_rows" envconfig:"FOOTER_ROWS" default:"2" validate:"gte=0"`
	LabelRow         int    `yaml:"label_row" envconfig:"LABEL_ROW" default:"1" validate:"gte=0,ltfield=HeaderRows"`
	MinRows          int    `yaml:"min_rows" envconfig:"MIN_ROWS" default:"3" validate:"gte=1"`
	TeacherRow       int    `yaml:"teacher_row" envconfig:"TEACHER_ROW" default:"0" validate:"gte=0"`
	TeacherCol       int    `yaml:"teacher_col" envconfig:"TEACHER_COL" default:"0" validate:"gte=0"`
	TeacherSuffixLen int    `yaml:"teacher_suffix_len" envconfig:"TEACHER_SUFFIX_LEN" default:"5" validate:"gte=1"`
	UnknownTeacher   string `yaml:"unknown_teacher" envconfig:"UNKNOWN_TEACHER" default:"UNKNOWN" validate:"required"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load читает конфигурацию: значения по умолчанию, окружение, затем файл
// configFile (если указан). Флаги командной строки накладывает вызывающая сторона.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка чтения окружения: %w", err)
	}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора файла конфигурации %s: %w", configFile, err)
		}
	}

	return &cfg, nil
}

// Validate проверяет значения и нормализует пути.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("некорректная конфигурация: %w", err)
	}

	c.InputDir = filepath.Clean(c.InputDir)
	c.OutputDir = filepath.Clean(c.OutputDir)
	return nil
}

// ExtractLayout переводит LayoutConfig в политику извлечения.
func (c *Config) ExtractLayout() extract.Layout {
	return extract.Layout{
		HeaderRows:       c.Layout.HeaderRows,
		FooterRows:       c.Layout.FooterRows,
		LabelRow:         c.Layout.LabelRow,
		MinRows:          c.Layout.MinRows,
		TeacherRow:       c.Layout.TeacherRow,
		TeacherCol:       c.Layout.TeacherCol,
		TeacherSuffixLen: c.Layout.TeacherSuffixLen,
		UnknownTeacher:   c.Layout.UnknownTeacher,
	}
}
