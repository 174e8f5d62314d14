package entity

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrientedBoxCorners_NoRotation(t *testing.T) {
	b := OrientedBox{CX: 50, CY: 40, Width: 20, Height: 10}
	pts := b.Corners()
	require.Equal(t, image.Pt(40, 35), pts[0])
	require.Equal(t, image.Pt(60, 35), pts[1])
	require.Equal(t, image.Pt(60, 45), pts[2])
	require.Equal(t, image.Pt(40, 45), pts[3])
	require.Equal(t, image.Rect(40, 35, 60, 45), b.Bounds())
}

func TestOrientedBoxCorners_QuarterTurn(t *testing.T) {
	b := OrientedBox{CX: 50, CY: 50, Width: 20, Height: 10, Rotation: math.Pi / 2}
	require.Equal(t, image.Rect(45, 40, 55, 60), b.Bounds())
}

func TestPredictionHasDetections(t *testing.T) {
	require.False(t, Prediction{}.HasDetections())
	require.True(t, Prediction{Boxes: []OrientedBox{{}}}.HasDetections())
}
