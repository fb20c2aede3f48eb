// Package raster renders paths onto raster images.
//
// Paths are flattened with [vectorkit.Path.ConvertToLines] at the requested
// accuracy and accumulated by the anti-aliasing rasterizer of
// golang.org/x/image/vector. Path coordinates are in the pixel space of the
// destination image: the point (x, y) lies at pixel (x, y) of the image,
// regardless of where the image's bounds start.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"golang.org/x/image/vector"
	"honnef.co/go/vectorkit"
)

// canvas accumulates contours for one destination image.
type canvas struct {
	z      *vector.Rasterizer
	dst    draw.Image
	origin vectorkit.Point
}

func newCanvas(dst draw.Image) *canvas {
	b := dst.Bounds()
	return &canvas{
		z:      vector.NewRasterizer(b.Dx(), b.Dy()),
		dst:    dst,
		origin: vectorkit.Pt(float64(b.Min.X), float64(b.Min.Y)),
	}
}

func (c *canvas) moveTo(p vectorkit.Point) {
	p = p.Sub(c.origin)
	c.z.MoveTo(float32(p.X), float32(p.Y))
}

func (c *canvas) lineTo(p vectorkit.Point) {
	p = p.Sub(c.origin)
	c.z.LineTo(float32(p.X), float32(p.Y))
}

// contour adds the outline of a flattened path, optionally in reverse.
// Open paths are closed implicitly.
func (c *canvas) contour(p *vectorkit.Path, reverse bool) {
	n := p.Len()
	if n == 0 {
		return
	}
	if reverse {
		c.moveTo(p.Segment(n - 1).End())
		for i := n - 1; i >= 0; i-- {
			c.lineTo(p.Segment(i).Start())
		}
	} else {
		c.moveTo(p.Segment(0).Start())
		for seg := range p.All() {
			c.lineTo(seg.End())
		}
	}
	c.z.ClosePath()
}

// fill adds p oriented so that its contour area has the sign of positive,
// and its holes with the opposite orientation. The rasterizer accumulates
// signed coverage, so oppositely oriented holes cancel their parent.
func (c *canvas) fill(p *vectorkit.Path, positive bool) {
	a := p.ContourArea()
	c.contour(p, (a > 0) != positive && a != 0)
	for _, h := range p.Holes() {
		c.fill(h, !positive)
	}
}

func (c *canvas) draw(col color.Color) {
	c.z.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{})
}

// FillPath paints the interior of p, minus its holes, onto dst. Curves are
// flattened with the given accuracy; a non-positive accuracy selects
// [vectorkit.DefaultAccuracy].
func FillPath(dst draw.Image, p *vectorkit.Path, col color.Color, accuracy float64) {
	c := newCanvas(dst)
	c.fill(p.ConvertToLines(accuracy), true)
	c.draw(col)
	vectorkit.Logger().Debug("filled path",
		slog.Int("segments", p.Len()),
		slog.Int("holes", p.NumHoles()))
}

// FillPathList paints every path of pl onto dst. See [FillPath].
func FillPathList(dst draw.Image, pl *vectorkit.PathList, col color.Color, accuracy float64) {
	for _, p := range pl.All() {
		FillPath(dst, p, col, accuracy)
	}
}

// StrokePath draws the outline of p and of its holes onto dst, with lines of
// the given width. A non-positive width selects a width of one pixel.
func StrokePath(dst draw.Image, p *vectorkit.Path, col color.Color, width, accuracy float64) {
	if !(width > 0) {
		width = 1
	}
	c := newCanvas(dst)
	c.stroke(p.ConvertToLines(accuracy), width/2)
	c.draw(col)
	vectorkit.Logger().Debug("stroked path",
		slog.Int("segments", p.Len()),
		slog.Int("holes", p.NumHoles()),
		slog.Float64("width", width))
}

// StrokePathList draws the outline of every path of pl onto dst. See
// [StrokePath].
func StrokePathList(dst draw.Image, pl *vectorkit.PathList, col color.Color, width, accuracy float64) {
	for _, p := range pl.All() {
		StrokePath(dst, p, col, width, accuracy)
	}
}

// stroke adds one rectangle per line, extended by hw at both ends so that
// consecutive lines overlap at their joints. All rectangles share an
// orientation, so overlaps never cancel.
func (c *canvas) stroke(p *vectorkit.Path, hw float64) {
	for seg := range p.All() {
		p0, p1 := seg.Start(), seg.End()
		l := p0.Distance(p1)
		if l == 0 {
			continue
		}
		d := p1.Sub(p0).Scale(hw / l)
		n := vectorkit.Pt(-d.Y, d.X)
		p0 = p0.Sub(d)
		p1 = p1.Add(d)
		c.moveTo(p0.Add(n))
		c.lineTo(p1.Add(n))
		c.lineTo(p1.Sub(n))
		c.lineTo(p0.Sub(n))
		c.z.ClosePath()
	}
	for _, h := range p.Holes() {
		c.stroke(h, hw)
	}
}
