// Package project вычисляет пути внутри каталога проекта.
//
// Ожидаемая структура:
//
//	<root>/data/data.yaml
//	<root>/data/test/images/
//	<root>/runs/<run>/weights/best.pt
//	<root>/bin/<binary> или <root>/scripts/<script>
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout набор путей, построенных от корня проекта
type Layout struct {
	Root string
}

// New создаёт Layout с явно заданным корнем
func New(root string) (Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("resolve project root: %w", err)
	}
	return Layout{Root: abs}, nil
}

// FromFile берёт корень на два уровня выше файла: <root>/scripts/model -> <root>.
func FromFile(path string) (Layout, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Layout{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	return Layout{Root: filepath.Dir(filepath.Dir(abs))}, nil
}

// FromExecutable применяет FromFile к текущему бинарнику
func FromExecutable() (Layout, error) {
	exe, err := os.Executable()
	if err != nil {
		return Layout{}, fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return FromFile(exe)
}

// DatasetPath путь к описанию датасета
func (l Layout) DatasetPath() string {
	return filepath.Join(l.Root, "data", "data.yaml")
}

// TestImagesDir каталог тестовых изображений
func (l Layout) TestImagesDir() string {
	return filepath.Join(l.Root, "data", "test", "images")
}

// Resolve привязывает относительный путь к корню проекта
func (l Layout) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Root, p)
}

// RunsDir каталог со всеми запусками
func (l Layout) RunsDir(outputRoot string) string {
	return l.Resolve(outputRoot)
}

// RunDir каталог одного запуска
func (l Layout) RunDir(outputRoot, runName string) string {
	return filepath.Join(l.RunsDir(outputRoot), runName)
}

// BestCheckpoint путь к лучшим весам запуска
func (l Layout) BestCheckpoint(outputRoot, runName string) string {
	return filepath.Join(l.RunDir(outputRoot, runName), "weights", "best.pt")
}
