package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

// ViewerService загружает обученную модель и показывает предсказание для одного изображения.
type ViewerService struct {
	loader port.ModelLoader
	viewer port.Viewer
	out    io.Writer
}

func NewViewerService(loader port.ModelLoader, viewer port.Viewer, out io.Writer) *ViewerService {
	if out == nil {
		out = io.Discard
	}
	return &ViewerService{loader: loader, viewer: viewer, out: out}
}

// View проверяет веса до загрузки модели, затем показывает каждый результат по очереди.
func (s *ViewerService) View(ctx context.Context, checkpoint, imagePath string) error {
	if s.loader == nil || s.viewer == nil {
		return errors.New("viewer is not configured")
	}

	info, err := os.Stat(checkpoint)
	if err != nil || info.IsDir() {
		if err == nil {
			err = errors.New("is a directory")
		}
		return &entity.Error{Kind: entity.KindMissingCheckpoint, Op: "view", Path: checkpoint, Err: err}
	}
	if imagePath == "" {
		return &entity.Error{Kind: entity.KindConfig, Op: "view", Err: errors.New("image path is not set")}
	}

	model, err := s.loader.Load(ctx, checkpoint)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "✅ Model loaded successfully from %s\n", checkpoint)

	results, err := model.Predict(ctx, entity.PredictParams{Source: imagePath})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "✅ Prediction complete.")

	fmt.Fprintln(s.out, "🖼️ Displaying image with detected cracks. Close the image window to exit.")
	for _, r := range results {
		fmt.Fprintf(s.out, "%s: %d crack(s)\n", r.Source, len(r.Boxes))
		if err := s.viewer.Show(ctx, r); err != nil {
			return fmt.Errorf("show %s: %w", r.Source, err)
		}
	}

	return nil
}
