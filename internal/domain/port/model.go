package port

import (
	"context"

	"crack-detector/internal/domain/entity"
)

// ModelLoader загружает модель по идентификатору или пути к весам
type ModelLoader interface {
	// Load создаёт модель; для локального пути отсутствие файла даёт KindMissingCheckpoint
	Load(ctx context.Context, checkpoint string) (Model, error)
}

// Model узкий интерфейс модели детекции: только то, что использует конвейер
type Model interface {
	// Train запускает обучение и возвращает каталог запуска
	Train(ctx context.Context, params entity.TrainParams) (*entity.TrainResult, error)

	// Validate запускает валидацию на val-части датасета
	Validate(ctx context.Context) (*entity.Metrics, error)

	// Predict запускает предсказание по файлу или каталогу
	Predict(ctx context.Context, params entity.PredictParams) ([]entity.Prediction, error)

	// Checkpoint возвращает веса, из которых загружена модель
	Checkpoint() string
}
