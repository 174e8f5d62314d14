package port

import (
	"context"

	"crack-detector/internal/domain/entity"
)

// Viewer показывает результат предсказания человеку
type Viewer interface {
	// Show блокирует вызывающего, пока показ не завершён
	Show(ctx context.Context, prediction entity.Prediction) error
}
