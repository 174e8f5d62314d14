package entity

import (
	"fmt"
	"strings"
)

// RunConfig неизменяемые параметры одного запуска конвейера.
type RunConfig struct {
	CheckpointID string // предобученные веса, например yolov8n-obb.pt
	DatasetPath  string // путь к data.yaml
	Epochs       int
	ImageSize    int
	RunName      string
	OutputRoot   string // каталог project для фреймворка
	ExistOK      bool   // разрешить перезапись существующего запуска
}

// Validate проверяет, что все поля заданы и числа положительные.
func (c RunConfig) Validate() error {
	var problems []string
	if strings.TrimSpace(c.CheckpointID) == "" {
		problems = append(problems, "checkpoint id is empty")
	}
	if strings.TrimSpace(c.DatasetPath) == "" {
		problems = append(problems, "dataset path is empty")
	}
	if c.Epochs <= 0 {
		problems = append(problems, fmt.Sprintf("epochs must be positive, got %d", c.Epochs))
	}
	if c.ImageSize <= 0 {
		problems = append(problems, fmt.Sprintf("image size must be positive, got %d", c.ImageSize))
	}
	if strings.TrimSpace(c.RunName) == "" {
		problems = append(problems, "run name is empty")
	}
	if strings.TrimSpace(c.OutputRoot) == "" {
		problems = append(problems, "output root is empty")
	}
	if len(problems) > 0 {
		return &Error{Kind: KindConfig, Op: "validate run config", Err: fmt.Errorf("%s", strings.Join(problems, "; "))}
	}
	return nil
}

// TrainParams переводит конфигурацию в параметры вызова обучения
func (c RunConfig) TrainParams() TrainParams {
	return TrainParams{
		Data:      c.DatasetPath,
		Epochs:    c.Epochs,
		ImageSize: c.ImageSize,
		Project:   c.OutputRoot,
		Name:      c.RunName,
		ExistOK:   c.ExistOK,
	}
}
