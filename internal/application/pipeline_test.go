package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/infrastructure/storage"
)

func newRunConfig(root string) entity.RunConfig {
	return entity.RunConfig{
		CheckpointID: "yolov8n-obb.pt",
		DatasetPath:  filepath.Join(root, "data", "data.yaml"),
		Epochs:       50,
		ImageSize:    640,
		RunName:      "crack_detector_run_1",
		OutputRoot:   filepath.Join(root, "runs"),
		ExistOK:      true,
	}
}

func newFakeModel() *fakeModel {
	return &fakeModel{
		train:   &entity.TrainResult{SaveDir: filepath.Join("runs", "crack_detector_run_1")},
		metrics: &entity.Metrics{MAP50_95: 0.8123, MAP50: 0.9001, MAP75: 0.7555},
		predicts: []entity.Prediction{
			{Source: "a.jpg", SaveDir: filepath.Join("runs", "obb", "predict")},
			{Source: "b.jpg", SaveDir: filepath.Join("runs", "obb", "predict")},
		},
	}
}

func TestPipelineService_Train(t *testing.T) {
	root := t.TempDir()
	model := newFakeModel()
	loader := &fakeLoader{model: model}
	runs := NewRunService(storage.NewMemoryRunRepository())
	svc := NewPipelineService(runs, loader, &fakeDatasets{}, nil, nil)
	ctx := context.Background()

	res, err := svc.Train(ctx, newRunConfig(root))
	require.NoError(t, err)
	require.Equal(t, model.train, res)
	require.Equal(t, []string{"yolov8n-obb.pt"}, loader.loaded)
	require.Len(t, model.trainCalls, 1)
	require.Equal(t, 50, model.trainCalls[0].Epochs)
	require.Equal(t, 640, model.trainCalls[0].ImageSize)
	require.Equal(t, "crack_detector_run_1", model.trainCalls[0].Name)
	require.True(t, model.trainCalls[0].ExistOK)

	run, err := runs.Get(ctx, "crack_detector_run_1")
	require.NoError(t, err)
	require.Equal(t, entity.StageTrained, run.Stage)
}

func TestPipelineService_TrainRejectsBadConfig(t *testing.T) {
	loader := &fakeLoader{model: newFakeModel()}
	svc := NewPipelineService(nil, loader, nil, nil, nil)

	cfg := newRunConfig(t.TempDir())
	cfg.Epochs = -1
	_, err := svc.Train(context.Background(), cfg)
	require.True(t, entity.IsKind(err, entity.KindConfig))
	require.Empty(t, loader.loaded)
}

func TestPipelineService_TrainDatasetError(t *testing.T) {
	loader := &fakeLoader{model: newFakeModel()}
	datasets := &fakeDatasets{err: &entity.Error{Kind: entity.KindConfig, Op: "read dataset descriptor"}}
	svc := NewPipelineService(nil, loader, datasets, nil, nil)

	_, err := svc.Train(context.Background(), newRunConfig(t.TempDir()))
	require.True(t, entity.IsKind(err, entity.KindConfig))
	require.Empty(t, loader.loaded)
}

func TestPipelineService_ValidatePrintsFourDecimals(t *testing.T) {
	var out bytes.Buffer
	model := &fakeModel{metrics: &entity.Metrics{MAP50_95: 0.8123, MAP50: 0.9001, MAP75: 0.7555}}
	svc := NewPipelineService(nil, &fakeLoader{model: model}, nil, nil, &out)

	got, metrics, err := svc.Validate(context.Background(), "best.pt")
	require.NoError(t, err)
	require.Same(t, model, got)
	require.Equal(t, model.metrics, metrics)

	require.Contains(t, out.String(), "mAP50-95 (Box): 0.8123")
	require.Contains(t, out.String(), "mAP50 (Box):   0.9001")
	require.Contains(t, out.String(), "mAP75 (Box):   0.7555")
}

func TestPipelineService_ValidateMissingCheckpoint(t *testing.T) {
	loader := &fakeLoader{err: &entity.Error{Kind: entity.KindMissingCheckpoint, Op: "load model"}}
	svc := NewPipelineService(nil, loader, nil, nil, nil)

	_, _, err := svc.Validate(context.Background(), "missing.pt")
	require.True(t, entity.IsKind(err, entity.KindMissingCheckpoint))
}

func TestPipelineService_TestSkipsMissingDir(t *testing.T) {
	var out bytes.Buffer
	model := newFakeModel()
	svc := NewPipelineService(nil, &fakeLoader{model: model}, nil, nil, &out)

	dir := filepath.Join(t.TempDir(), "data", "test", "images")
	saveDir, err := svc.Test(context.Background(), model, dir)
	require.Error(t, err)
	require.True(t, entity.IsKind(err, entity.KindSkipped))
	require.False(t, entity.Fatal(err))
	require.Empty(t, saveDir)
	require.Empty(t, model.predictCalls)
	require.Contains(t, out.String(), "Test directory not found at: "+dir)
	require.Contains(t, out.String(), "Skipping testing.")
}

func TestPipelineService_TestPredictsOnce(t *testing.T) {
	var out bytes.Buffer
	model := newFakeModel()
	svc := NewPipelineService(nil, &fakeLoader{model: model}, nil, nil, &out)

	dir := makeDir(t, t.TempDir(), "data", "test", "images")
	saveDir, err := svc.Test(context.Background(), model, dir)
	require.NoError(t, err)
	require.Equal(t, []entity.PredictParams{{Source: dir, Save: true}}, model.predictCalls)
	require.Equal(t, filepath.Join("runs", "obb", "predict"), saveDir)
	require.Contains(t, out.String(), "Test prediction images saved in: "+saveDir)
}

func TestPipelineService_TestEmptyResults(t *testing.T) {
	model := newFakeModel()
	model.predicts = nil
	svc := NewPipelineService(nil, &fakeLoader{model: model}, nil, nil, nil)

	_, err := svc.Test(context.Background(), model, t.TempDir())
	require.True(t, entity.IsKind(err, entity.KindEmptyResult))
	require.True(t, entity.Fatal(err))
}

func TestPipelineService_RunEndToEnd(t *testing.T) {
	root := t.TempDir()
	testDir := makeDir(t, root, "data", "test", "images")

	var out bytes.Buffer
	model := newFakeModel()
	loader := &fakeLoader{model: model}
	notifier := &fakeNotifier{}
	runs := NewRunService(storage.NewMemoryRunRepository())
	svc := NewPipelineService(runs, loader, &fakeDatasets{}, notifier, &out)
	ctx := context.Background()

	require.NoError(t, svc.Run(ctx, root, testDir, newRunConfig(root)))

	require.Equal(t, []string{
		"yolov8n-obb.pt",
		filepath.Join("runs", "crack_detector_run_1", "weights", "best.pt"),
	}, loader.loaded)
	require.Len(t, model.predictCalls, 1)

	run, err := runs.Get(ctx, "crack_detector_run_1")
	require.NoError(t, err)
	require.Equal(t, entity.StageTested, run.Stage)
	require.InDelta(t, 0.9001, run.Metrics.MAP50, 1e-9)

	require.Contains(t, out.String(), "Project Root Directory: "+root)
	require.Contains(t, out.String(), "Best model saved at: "+filepath.Join("runs", "crack_detector_run_1", "weights", "best.pt"))
	require.Contains(t, out.String(), "Pipeline finished successfully!")
	require.Len(t, notifier.messages, 1)
	require.Contains(t, notifier.messages[0], "mAP50: 0.9001")
}

func TestPipelineService_RunContinuesWithoutTestDir(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer
	model := newFakeModel()
	runs := NewRunService(storage.NewMemoryRunRepository())
	svc := NewPipelineService(runs, &fakeLoader{model: model}, nil, nil, &out)
	ctx := context.Background()

	err := svc.Run(ctx, root, filepath.Join(root, "data", "test", "images"), newRunConfig(root))
	require.NoError(t, err)
	require.Empty(t, model.predictCalls)
	require.Contains(t, out.String(), "Skipping testing.")
	require.Contains(t, out.String(), "Pipeline finished successfully!")

	run, err := runs.Get(ctx, "crack_detector_run_1")
	require.NoError(t, err)
	require.Equal(t, entity.StageValidated, run.Stage)
}

func TestPipelineService_RunTrainFailure(t *testing.T) {
	boom := errors.New("CUDA out of memory")
	model := newFakeModel()
	model.train = nil
	model.trainErr = &entity.Error{Kind: entity.KindEngine, Op: "train", Err: boom}
	notifier := &fakeNotifier{}
	runs := NewRunService(storage.NewMemoryRunRepository())
	svc := NewPipelineService(runs, &fakeLoader{model: model}, nil, notifier, nil)
	ctx := context.Background()

	err := svc.Run(ctx, t.TempDir(), "", newRunConfig(t.TempDir()))
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.True(t, entity.IsKind(err, entity.KindEngine))
	require.Empty(t, model.predictCalls)

	run, err := runs.Get(ctx, "crack_detector_run_1")
	require.NoError(t, err)
	require.Equal(t, entity.StageFailed, run.Stage)
	require.Len(t, notifier.messages, 1)
	require.Contains(t, notifier.messages[0], "failed at train")
}
