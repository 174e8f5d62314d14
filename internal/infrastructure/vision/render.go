package vision

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"crack-detector/internal/domain/entity"
)

// BoxColor цвет рамок трещин
var BoxColor = color.NRGBA{G: 255, A: 255}

const lineThickness = 2

// Render рисует повёрнутые рамки на копии изображения.
func Render(img image.Image, boxes []entity.OrientedBox, col color.Color) *image.NRGBA {
	dst := imaging.Clone(img)
	for _, b := range boxes {
		pts := b.Corners()
		for i := range pts {
			drawLine(dst, pts[i], pts[(i+1)%len(pts)], col)
		}
	}
	return dst
}

// RenderFile открывает src, рисует рамки и сохраняет результат в dst (формат по расширению).
func RenderFile(src, dst string, boxes []entity.OrientedBox) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}

	if err := imaging.Save(Render(img, boxes, BoxColor), dst); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// AnnotatedPath путь для аннотированной копии: рядом с предсказаниями, иначе рядом с исходником.
func AnnotatedPath(p entity.Prediction) string {
	dir := p.SaveDir
	if dir == "" {
		dir = filepath.Dir(p.Source)
	}
	base := filepath.Base(p.Source)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+"_obb.png")
}

// drawLine рисует отрезок алгоритмом Брезенхэма квадратной кистью.
func drawLine(img *image.NRGBA, from, to image.Point, col color.Color) {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}

	bounds := img.Bounds()
	x, y := from.X, from.Y
	e := dx + dy
	for {
		for ty := 0; ty < lineThickness; ty++ {
			for tx := 0; tx < lineThickness; tx++ {
				p := image.Pt(x+tx, y+ty)
				if p.In(bounds) {
					img.Set(p.X, p.Y, col)
				}
			}
		}
		if x == to.X && y == to.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
