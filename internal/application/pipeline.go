package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

const (
	separator = "------------------------------"

	msgTrainStart    = "🚀 Starting model training..."
	msgTrainDone     = "✅ Training complete."
	msgValidateStart = "🧪 Starting model validation..."
	msgValidateDone  = "✅ Validation complete."
	msgTestStart     = "🔎 Starting testing on new images..."
	msgTestDone      = "✅ Testing complete."
	msgTestSkipped   = "Skipping testing."
	msgFinished      = "\n🎉 Pipeline finished successfully!"

	msgArtifacts = `
Inside this folder, you will find:
  - ` + "`weights/best.pt`" + `: Your best trained model file for future use.
  - ` + "`results.png`" + `: A chart showing training and validation loss, mAP, and other metrics over epochs.
  - ` + "`confusion_matrix.png`" + `: A matrix showing any prediction errors between classes.
  - ` + "`val_batch*_pred.jpg`" + `: Images from the validation set with your model's predictions drawn on them.
  - And much more for detailed analysis!`
)

// PipelineService ведёт запуск через обучение, валидацию и тест.
type PipelineService struct {
	runs     *RunService
	loader   port.ModelLoader
	datasets port.DatasetReader
	notifier port.Notifier
	out      io.Writer
}

// NewPipelineService создаёт сервис конвейера; datasets и notifier могут быть nil.
func NewPipelineService(runs *RunService, loader port.ModelLoader, datasets port.DatasetReader, notifier port.Notifier, out io.Writer) *PipelineService {
	if out == nil {
		out = io.Discard
	}
	return &PipelineService{
		runs:     runs,
		loader:   loader,
		datasets: datasets,
		notifier: notifier,
		out:      out,
	}
}

// Train загружает предобученную модель и обучает её на датасете из cfg.
func (s *PipelineService) Train(ctx context.Context, cfg entity.RunConfig) (*entity.TrainResult, error) {
	if s.loader == nil {
		return nil, errors.New("model loader is not configured")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if s.datasets != nil {
		ds, err := s.datasets.Read(ctx, cfg.DatasetPath)
		if err != nil {
			return nil, err
		}
		log.Printf("Dataset %s: %d classes (%s)", cfg.DatasetPath, ds.ClassCount(), strings.Join(ds.Names, ", "))
	}

	model, err := s.loader.Load(ctx, cfg.CheckpointID)
	if err != nil {
		return nil, err
	}

	result, err := model.Train(ctx, cfg.TrainParams())
	if err != nil {
		return nil, err
	}

	if s.runs != nil {
		if _, err := s.runs.RecordTraining(ctx, cfg.RunName, result.SaveDir); err != nil {
			log.Printf("Error recording run %s: %v", cfg.RunName, err)
		}
	}

	return result, nil
}

// Validate загружает веса и печатает mAP; модель возвращается для последующего теста.
func (s *PipelineService) Validate(ctx context.Context, checkpoint string) (port.Model, *entity.Metrics, error) {
	if s.loader == nil {
		return nil, nil, errors.New("model loader is not configured")
	}

	model, err := s.loader.Load(ctx, checkpoint)
	if err != nil {
		return nil, nil, err
	}

	metrics, err := model.Validate(ctx)
	if err != nil {
		return nil, nil, err
	}

	fmt.Fprintln(s.out, msgValidateDone)
	fmt.Fprintln(s.out, "Validation Metrics:")
	fmt.Fprintf(s.out, "  mAP50-95 (Box): %.4f\n", metrics.MAP50_95)
	fmt.Fprintf(s.out, "  mAP50 (Box):   %.4f\n", metrics.MAP50)
	fmt.Fprintf(s.out, "  mAP75 (Box):   %.4f\n", metrics.MAP75)

	return model, metrics, nil
}

// Test предсказывает все изображения каталога и возвращает каталог с аннотациями.
// Отсутствующий каталог не фатален: возвращается ошибка вида KindSkipped.
func (s *PipelineService) Test(ctx context.Context, model port.Model, dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(s.out, "⚠️ Test directory not found at: %s\n", dir)
		fmt.Fprintln(s.out, msgTestSkipped)
		return "", &entity.Error{Kind: entity.KindSkipped, Op: "test", Path: dir, Err: err}
	}

	results, err := model.Predict(ctx, entity.PredictParams{Source: dir, Save: true})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", &entity.Error{Kind: entity.KindEmptyResult, Op: "test", Path: dir, Err: errors.New("no predictions returned")}
	}

	fmt.Fprintln(s.out, msgTestDone)
	fmt.Fprintf(s.out, "Test prediction images saved in: %s\n", results[0].SaveDir)

	return results[0].SaveDir, nil
}

// Run выполняет весь конвейер для проекта с корнем root.
func (s *PipelineService) Run(ctx context.Context, root, testImagesDir string, cfg entity.RunConfig) error {
	fmt.Fprintf(s.out, "Project Root Directory: %s\n", root)
	fmt.Fprintf(s.out, "Data YAML Path: %s\n", cfg.DatasetPath)
	fmt.Fprintln(s.out, separator)

	fmt.Fprintln(s.out, msgTrainStart)
	result, err := s.Train(ctx, cfg)
	if err != nil {
		return s.fail(ctx, cfg.RunName, "train", err)
	}
	fmt.Fprintln(s.out, msgTrainDone)
	fmt.Fprintf(s.out, "Best model saved at: %s\n", result.BestCheckpoint())
	fmt.Fprintln(s.out, separator)

	fmt.Fprintln(s.out, msgValidateStart)
	model, metrics, err := s.Validate(ctx, result.BestCheckpoint())
	if err != nil {
		return s.fail(ctx, cfg.RunName, "validate", err)
	}
	if s.runs != nil {
		if _, err := s.runs.RecordMetrics(ctx, cfg.RunName, metrics); err != nil {
			log.Printf("Error recording metrics for %s: %v", cfg.RunName, err)
		}
	}
	fmt.Fprintln(s.out, separator)

	fmt.Fprintln(s.out, msgTestStart)
	predictDir, err := s.Test(ctx, model, testImagesDir)
	if entity.Fatal(err) {
		return s.fail(ctx, cfg.RunName, "test", err)
	}
	if err == nil && s.runs != nil {
		if _, err := s.runs.SetStage(ctx, cfg.RunName, entity.StageTested); err != nil {
			log.Printf("Error updating run %s: %v", cfg.RunName, err)
		}
	}
	fmt.Fprintln(s.out, separator)

	fmt.Fprintln(s.out, "📊 All analytics and results are saved in the run directory:")
	fmt.Fprintf(s.out, "   %s\n", result.SaveDir)
	fmt.Fprintln(s.out, msgArtifacts)
	fmt.Fprintln(s.out, msgFinished)

	s.notify(ctx, summary(cfg.RunName, result, metrics, predictDir))
	return nil
}

func (s *PipelineService) fail(ctx context.Context, runName, step string, err error) error {
	if s.runs != nil {
		if _, rerr := s.runs.Fail(ctx, runName); rerr != nil {
			log.Printf("Error updating run %s: %v", runName, rerr)
		}
	}
	s.notify(ctx, fmt.Sprintf("❌ Run %s failed at %s: %v", runName, step, err))
	return fmt.Errorf("%s: %w", step, err)
}

func (s *PipelineService) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, text); err != nil {
		log.Printf("Error sending notification: %v", err)
	}
}

func summary(runName string, result *entity.TrainResult, metrics *entity.Metrics, predictDir string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Run %s finished\n", runName)
	fmt.Fprintf(&b, "mAP50-95: %.4f, mAP50: %.4f, mAP75: %.4f\n", metrics.MAP50_95, metrics.MAP50, metrics.MAP75)
	fmt.Fprintf(&b, "Weights: %s", result.BestCheckpoint())
	if predictDir != "" {
		fmt.Fprintf(&b, "\nPredictions: %s", predictDir)
	}
	return b.String()
}
