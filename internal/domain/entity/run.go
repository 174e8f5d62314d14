package entity

import (
	"path/filepath"

	"github.com/google/uuid"
)

// RunStage стадия жизненного цикла запуска
type RunStage string

const (
	StageCreated   RunStage = "created"   // Запуск зарегистрирован
	StageTrained   RunStage = "trained"   // Обучение завершено
	StageValidated RunStage = "validated" // Валидация завершена
	StageTested    RunStage = "tested"    // Предсказания на тестовых изображениях сохранены
	StageFailed    RunStage = "failed"    // Один из шагов упал
)

// Run представляет один запуск обучения в каталоге runs
type Run struct {
	ID      string   // уникальный идентификатор вызова
	Name    string   // имя запуска (каталог внутри runs)
	SaveDir string   // каталог, куда фреймворк сложил результаты
	Stage   RunStage // текущая стадия
	Metrics *Metrics // метрики последней валидации
}

// NewRun создаёт запуск в начальной стадии
func NewRun(name string) *Run {
	return &Run{
		ID:    uuid.NewString(),
		Name:  name,
		Stage: StageCreated,
	}
}

// SetStage обновляет стадию запуска
func (r *Run) SetStage(stage RunStage) {
	r.Stage = stage
}

// BestCheckpoint возвращает путь к лучшим весам запуска
func (r *Run) BestCheckpoint() string {
	return BestCheckpointIn(r.SaveDir)
}

// BestCheckpointIn возвращает <saveDir>/weights/best.pt
func BestCheckpointIn(saveDir string) string {
	return filepath.Join(saveDir, "weights", "best.pt")
}
