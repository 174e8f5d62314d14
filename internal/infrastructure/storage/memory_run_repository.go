package storage

import (
	"context"
	"fmt"
	"sync"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

// MemoryRunRepository in-memory хранилище запусков
type MemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[string]*entity.Run
}

// NewMemoryRunRepository создаёт новое in-memory хранилище
func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{
		runs: make(map[string]*entity.Run),
	}
}

// Get возвращает запуск по имени, создаёт новый если не найден
func (r *MemoryRunRepository) Get(ctx context.Context, name string) (*entity.Run, error) {
	r.mu.RLock()
	run, exists := r.runs[name]
	r.mu.RUnlock()

	if exists {
		return run, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Повторная проверка: между блокировками запуск мог появиться
	if run, exists := r.runs[name]; exists {
		return run, nil
	}
	run = entity.NewRun(name)
	r.runs[name] = run

	return run, nil
}

// Save сохраняет запуск
func (r *MemoryRunRepository) Save(ctx context.Context, run *entity.Run) error {
	if run == nil || run.Name == "" {
		return fmt.Errorf("save run: name is empty")
	}

	r.mu.Lock()
	r.runs[run.Name] = run
	r.mu.Unlock()

	return nil
}

// UpdateStage обновляет стадию запуска
func (r *MemoryRunRepository) UpdateStage(ctx context.Context, name string, stage entity.RunStage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, exists := r.runs[name]
	if !exists {
		return fmt.Errorf("update stage: run %q not found", name)
	}
	run.SetStage(stage)

	return nil
}

// Проверка реализации интерфейса
var _ port.RunRepository = (*MemoryRunRepository)(nil)
