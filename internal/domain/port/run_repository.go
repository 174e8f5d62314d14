package port

import (
	"context"

	"crack-detector/internal/domain/entity"
)

// RunRepository интерфейс хранилища запусков
type RunRepository interface {
	// Get возвращает запуск по имени, создаёт новый если не найден
	Get(ctx context.Context, name string) (*entity.Run, error)

	// Save сохраняет запуск
	Save(ctx context.Context, run *entity.Run) error

	// UpdateStage обновляет стадию запуска
	UpdateStage(ctx context.Context, name string, stage entity.RunStage) error
}
