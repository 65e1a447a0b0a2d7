package main

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

const matFont = gocv.FontHersheySimplex

// MatCanvas draws onto a BGR camera frame with OpenCV primitives.
type MatCanvas struct {
	mat *gocv.Mat
}

func NewMatCanvas(mat *gocv.Mat) *MatCanvas {
	return &MatCanvas{mat: mat}
}

func (c *MatCanvas) Line(from, to image.Point, col color.RGBA, thickness int) {
	gocv.Line(c.mat, from, to, col, thickness)
}

func (c *MatCanvas) FilledCircle(center image.Point, radius int, col color.RGBA) {
	gocv.Circle(c.mat, center, radius, col, -1)
}

func (c *MatCanvas) Circle(center image.Point, radius int, col color.RGBA, thickness int) {
	gocv.Circle(c.mat, center, radius, col, thickness)
}

func (c *MatCanvas) Rectangle(a, b image.Point, col color.RGBA, thickness int) {
	gocv.Rectangle(c.mat, image.Rectangle{Min: a, Max: b}.Canon(), col, thickness)
}

func (c *MatCanvas) Ellipse(center, axes image.Point, angle, startAngle, endAngle float64, col color.RGBA, thickness int) {
	gocv.Ellipse(c.mat, center, axes, angle, startAngle, endAngle, col, thickness)
}

func (c *MatCanvas) Text(s string, org image.Point, scale float64, col color.RGBA, thickness int) {
	gocv.PutText(c.mat, s, org, matFont, scale, col, thickness)
}

func (c *MatCanvas) MeasureText(s string, scale float64, thickness int) image.Point {
	return gocv.GetTextSize(s, matFont, scale, thickness)
}
