package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

type fakeModel struct {
	checkpoint string
	train      *entity.TrainResult
	trainErr   error
	metrics    *entity.Metrics
	predicts   []entity.Prediction
	predictErr error

	trainCalls   []entity.TrainParams
	predictCalls []entity.PredictParams
}

func (m *fakeModel) Checkpoint() string { return m.checkpoint }

func (m *fakeModel) Train(ctx context.Context, params entity.TrainParams) (*entity.TrainResult, error) {
	m.trainCalls = append(m.trainCalls, params)
	return m.train, m.trainErr
}

func (m *fakeModel) Validate(ctx context.Context) (*entity.Metrics, error) {
	return m.metrics, nil
}

func (m *fakeModel) Predict(ctx context.Context, params entity.PredictParams) ([]entity.Prediction, error) {
	m.predictCalls = append(m.predictCalls, params)
	return m.predicts, m.predictErr
}

type fakeLoader struct {
	model  *fakeModel
	err    error
	loaded []string
}

func (l *fakeLoader) Load(ctx context.Context, checkpoint string) (port.Model, error) {
	l.loaded = append(l.loaded, checkpoint)
	if l.err != nil {
		return nil, l.err
	}
	l.model.checkpoint = checkpoint
	return l.model, nil
}

type fakeDatasets struct {
	err error
}

func (d *fakeDatasets) Read(ctx context.Context, path string) (*entity.Dataset, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &entity.Dataset{Train: "train", Val: "val", Names: []string{"crack"}}, nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(ctx context.Context, text string) error {
	n.messages = append(n.messages, text)
	return nil
}

type fakeViewer struct {
	shown []entity.Prediction
}

func (v *fakeViewer) Show(ctx context.Context, p entity.Prediction) error {
	v.shown = append(v.shown, p)
	return nil
}

// makeDir создаёт каталог внутри временного корня.
func makeDir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}
