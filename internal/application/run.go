package app

import (
	"context"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

type RunService struct {
	repo port.RunRepository
}

func NewRunService(repo port.RunRepository) *RunService {
	return &RunService{repo: repo}
}

func (s *RunService) Get(ctx context.Context, name string) (*entity.Run, error) {
	return s.repo.Get(ctx, name)
}

func (s *RunService) SetStage(ctx context.Context, name string, stage entity.RunStage) (*entity.Run, error) {
	run, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	run.SetStage(stage)
	if err := s.repo.Save(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// RecordTraining запоминает каталог обучения и переводит запуск в trained.
func (s *RunService) RecordTraining(ctx context.Context, name, saveDir string) (*entity.Run, error) {
	run, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	run.SaveDir = saveDir
	run.SetStage(entity.StageTrained)
	if err := s.repo.Save(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// RecordMetrics запоминает метрики валидации и переводит запуск в validated.
func (s *RunService) RecordMetrics(ctx context.Context, name string, metrics *entity.Metrics) (*entity.Run, error) {
	run, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	run.Metrics = metrics
	run.SetStage(entity.StageValidated)
	if err := s.repo.Save(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

func (s *RunService) Fail(ctx context.Context, name string) (*entity.Run, error) {
	return s.SetStage(ctx, name, entity.StageFailed)
}
