package ultralytics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

// Loader создаёт модели, которые исполняются через Runner
type Loader struct {
	runner *Runner
}

// NewLoader создаёт загрузчик моделей
func NewLoader(runner *Runner) *Loader {
	return &Loader{runner: runner}
}

// Load проверяет локальный путь к весам и возвращает модель.
// Голые идентификаторы вроде yolov8n-obb.pt передаются фреймворку как есть.
func (l *Loader) Load(ctx context.Context, checkpoint string) (port.Model, error) {
	_ = ctx
	if strings.TrimSpace(checkpoint) == "" {
		return nil, &entity.Error{Kind: entity.KindConfig, Op: "load model", Err: errors.New("checkpoint is empty")}
	}

	if isLocalPath(checkpoint) {
		path := checkpoint
		if !filepath.IsAbs(path) && l.runner.Dir != "" {
			path = filepath.Join(l.runner.Dir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, &entity.Error{Kind: entity.KindMissingCheckpoint, Op: "load model", Path: checkpoint, Err: err}
		}
		if info.IsDir() {
			return nil, &entity.Error{Kind: entity.KindMissingCheckpoint, Op: "load model", Path: checkpoint, Err: errors.New("is a directory")}
		}
		checkpoint = path
	}

	return &Model{runner: l.runner, checkpoint: checkpoint}, nil
}

func isLocalPath(checkpoint string) bool {
	return filepath.IsAbs(checkpoint) || strings.ContainsAny(checkpoint, `/\`)
}

// Model модель фреймворка, загружаемая заново при каждом вызове драйвера
type Model struct {
	runner     *Runner
	checkpoint string
}

// Checkpoint возвращает веса модели
func (m *Model) Checkpoint() string {
	return m.checkpoint
}

// Train запускает обучение
func (m *Model) Train(ctx context.Context, params entity.TrainParams) (*entity.TrainResult, error) {
	var out struct {
		SaveDir string `json:"save_dir"`
	}
	err := m.runner.call(ctx, request{
		Action:     "train",
		Checkpoint: m.checkpoint,
		Train: &trainRequest{
			Data:    params.Data,
			Epochs:  params.Epochs,
			ImgSize: params.ImageSize,
			Project: params.Project,
			Name:    params.Name,
			ExistOK: params.ExistOK,
		},
	}, &out)
	if err != nil {
		return nil, &entity.Error{Kind: entity.KindEngine, Op: "train", Path: m.checkpoint, Err: err}
	}
	if out.SaveDir == "" {
		return nil, &entity.Error{Kind: entity.KindEngine, Op: "train", Path: m.checkpoint, Err: errors.New("framework reported no save dir")}
	}

	return &entity.TrainResult{SaveDir: m.resolve(out.SaveDir)}, nil
}

// Validate запускает валидацию без параметров
func (m *Model) Validate(ctx context.Context) (*entity.Metrics, error) {
	var out struct {
		MAP     float64 `json:"map"`
		MAP50   float64 `json:"map50"`
		MAP75   float64 `json:"map75"`
		SaveDir string  `json:"save_dir"`
	}
	if err := m.runner.call(ctx, request{Action: "val", Checkpoint: m.checkpoint}, &out); err != nil {
		return nil, &entity.Error{Kind: entity.KindEngine, Op: "validate", Path: m.checkpoint, Err: err}
	}

	return &entity.Metrics{
		MAP50_95: out.MAP,
		MAP50:    out.MAP50,
		MAP75:    out.MAP75,
		SaveDir:  m.resolve(out.SaveDir),
	}, nil
}

type boxDTO struct {
	CX      float64 `json:"cx"`
	CY      float64 `json:"cy"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	R       float64 `json:"r"`
	ClassID int     `json:"class_id"`
	Class   string  `json:"class"`
	Conf    float64 `json:"conf"`
}

type predictionDTO struct {
	Path    string   `json:"path"`
	SaveDir string   `json:"save_dir"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Boxes   []boxDTO `json:"boxes"`
}

// Predict запускает предсказание по файлу или каталогу
func (m *Model) Predict(ctx context.Context, params entity.PredictParams) ([]entity.Prediction, error) {
	var out []predictionDTO
	err := m.runner.call(ctx, request{
		Action:     "predict",
		Checkpoint: m.checkpoint,
		Predict:    &predictRequest{Source: params.Source, Save: params.Save},
	}, &out)
	if err != nil {
		return nil, &entity.Error{Kind: entity.KindEngine, Op: "predict", Path: params.Source, Err: err}
	}

	predictions := make([]entity.Prediction, 0, len(out))
	for _, p := range out {
		boxes := make([]entity.OrientedBox, 0, len(p.Boxes))
		for _, b := range p.Boxes {
			boxes = append(boxes, entity.OrientedBox{
				ClassID:    b.ClassID,
				Class:      b.Class,
				Confidence: b.Conf,
				CX:         b.CX,
				CY:         b.CY,
				Width:      b.W,
				Height:     b.H,
				Rotation:   b.R,
			})
		}
		predictions = append(predictions, entity.Prediction{
			Source:  p.Path,
			SaveDir: m.resolve(p.SaveDir),
			Width:   p.Width,
			Height:  p.Height,
			Boxes:   boxes,
		})
	}
	return predictions, nil
}

// resolve привязывает относительные пути фреймворка к рабочему каталогу процесса
func (m *Model) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.runner.Dir == "" {
		return p
	}
	return filepath.Join(m.runner.Dir, p)
}

var (
	_ port.ModelLoader = (*Loader)(nil)
	_ port.Model       = (*Model)(nil)
)
