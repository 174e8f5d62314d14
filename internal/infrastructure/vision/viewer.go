//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/domain/port"
)

// WindowViewer показывает предсказание в окне OpenCV.
type WindowViewer struct {
	Title string
}

// NewWindowViewer создаёт просмотрщик с заголовком окна.
func NewWindowViewer(title string) *WindowViewer {
	return &WindowViewer{Title: title}
}

// Show рисует рамки и блокирует, пока окно не закрыто или не нажата клавиша.
func (v *WindowViewer) Show(ctx context.Context, prediction entity.Prediction) error {
	mat := gocv.IMRead(prediction.Source, gocv.IMReadColor)
	if mat.Empty() {
		return fmt.Errorf("failed to read image %s", prediction.Source)
	}
	defer mat.Close()

	green := color.RGBA{G: 255, A: 255}
	for _, box := range prediction.Boxes {
		corners := box.Corners()
		pv := gocv.NewPointsVectorFromPoints([][]image.Point{corners[:]})
		gocv.Polylines(&mat, pv, true, green, 2)
		pv.Close()

		label := fmt.Sprintf("%s %.2f", box.Class, box.Confidence)
		gocv.PutText(&mat, label, box.Bounds().Min.Sub(image.Pt(0, 4)), gocv.FontHersheyPlain, 1.2, green, 2)
	}

	window := gocv.NewWindow(v.Title)
	defer window.Close()

	window.IMShow(mat)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if window.WaitKey(100) >= 0 {
			return nil
		}
		if window.GetWindowProperty(gocv.WindowPropertyVisible) < 1 {
			return nil
		}
	}
}

var _ port.Viewer = (*WindowViewer)(nil)
