// Package files ищет входные книги и проверяет каталоги.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Каталог не существует или не является каталогом
var ErrDirectoryNotFound = errors.New("каталог не найден")

// WorkbookExt расширение входных книг
const WorkbookExt = ".xlsx"

type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery ищет книги непосредственно в каталоге, без обхода подкаталогов.
type Discovery struct {
	Ext string
}

// NewDiscovery создаёт Discovery для .xlsx.
func NewDiscovery() *Discovery {
	return &Discovery{Ext: WorkbookExt}
}

// CheckDir проверяет, что path существует и является каталогом.
func CheckDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
		}
		return fmt.Errorf("ошибка проверки каталога %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s не является каталогом", ErrDirectoryNotFound, path)
	}
	return nil
}

// FindWorkbooks возвращает книги каталога, отсортированные по имени.
// Временные файлы Office (~$*) пропускаются.
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("ошибка чтения каталога %s: %w", dir, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), d.Ext) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		found = append(found, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})

	return found, nil
}
