//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"fmt"
	"log"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

// WindowViewer без OpenCV: вместо окна сохраняет аннотированную копию изображения.
type WindowViewer struct {
	Title string
}

// NewWindowViewer создаёт просмотрщик-заглушку (без OpenCV).
func NewWindowViewer(title string) *WindowViewer {
	return &WindowViewer{Title: title}
}

// Show пишет <имя>_obb.png рядом с предсказанием и сообщает путь.
func (v *WindowViewer) Show(ctx context.Context, prediction entity.Prediction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := AnnotatedPath(prediction)
	if err := RenderFile(prediction.Source, dst, prediction.Boxes); err != nil {
		return fmt.Errorf("render %s: %w", prediction.Source, err)
	}

	log.Printf("%s: gocv build tag is not enabled, annotated image written to %s", v.Title, dst)
	return nil
}

var _ port.Viewer = (*WindowViewer)(nil)
