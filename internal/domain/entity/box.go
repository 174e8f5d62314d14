package entity

import (
	"image"
	"math"
)

// OrientedBox представляет повёрнутую рамку трещины в пикселях исходного изображения
type OrientedBox struct {
	ClassID    int     // индекс класса из data.yaml
	Class      string  // имя класса
	Confidence float64 // уверенность модели
	CX         float64 // центр X
	CY         float64 // центр Y
	Width      float64
	Height     float64
	Rotation   float64 // угол в радианах
}

// Corners возвращает четыре вершины рамки по часовой стрелке, начиная с левой верхней до поворота.
func (b OrientedBox) Corners() [4]image.Point {
	cos, sin := math.Cos(b.Rotation), math.Sin(b.Rotation)
	hw, hh := b.Width/2, b.Height/2

	offsets := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var pts [4]image.Point
	for i, o := range offsets {
		x := b.CX + o[0]*cos - o[1]*sin
		y := b.CY + o[0]*sin + o[1]*cos
		pts[i] = image.Pt(int(math.Round(x)), int(math.Round(y)))
	}
	return pts
}

// Bounds возвращает осевой прямоугольник, описывающий рамку
func (b OrientedBox) Bounds() image.Rectangle {
	pts := b.Corners()
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}
