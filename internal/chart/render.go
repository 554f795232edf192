package chart

import (
	"errors"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// DefaultScale renders the court at 1.6 pixels per court unit.
const DefaultScale = 1.6

// ErrNoWriter is returned when Render has nowhere to write.
var ErrNoWriter = errors.New("chart: nil writer")

// Options controls chart rendering.
type Options struct {
	Title string
	Scale float64
	// LineColor strokes the court markings.
	LineColor string
}

const (
	madeStyle   = "fill:#2e7d32;fill-opacity:0.6;stroke:none"
	missedStyle = "fill:none;stroke:#c62828;stroke-opacity:0.7;stroke-width:1.5"
)

// Render writes an SVG half court with one marker per point. Made shots are
// filled circles, misses are open circles.
func Render(w io.Writer, points []shots.ChartPoint, opts Options) error {
	if w == nil {
		return ErrNoWriter
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.LineColor == "" {
		opts.LineColor = "black"
	}
	p := projection{scale: opts.Scale, margin: 20}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := p.width(), p.height()+60
	canvas.Start(width, height)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(0, 0, width, height, "fill:white")

	drawCourt(canvas, p, opts.LineColor)
	made := drawShots(canvas, p, points)

	canvas.Gstyle("font-family:sans-serif;font-size:16px;fill:gray")
	if opts.Title != "" {
		canvas.Text(width/2, height-34, opts.Title, "text-anchor:middle;font-size:20px;fill:black")
	}
	canvas.Text(p.margin, height-10, fmt.Sprintf("%d of %d made", made, len(points)))
	if len(points) > 0 {
		pct := float64(made) / float64(len(points)) * 100
		canvas.Text(width-p.margin, height-10, fmt.Sprintf("%.1f%%", pct), "text-anchor:end")
	}
	canvas.Gend()
	canvas.End()
	return ew.err
}

func drawCourt(canvas *svg.SVG, p projection, color string) {
	line := fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", color)
	canvas.Gstyle(line)

	canvas.Rect(p.x(courtMinX), p.y(courtMaxY), p.length(courtMaxX-courtMinX), p.length(courtMaxY-courtMinY))
	canvas.Circle(p.x(0), p.y(0), p.length(hoopRadius))
	canvas.Line(p.x(-backboardHalfW), p.y(backboardY), p.x(backboardHalfW), p.y(backboardY))

	top := courtMinY + paintHeight
	canvas.Rect(p.x(-paintOuterHalfW), p.y(top), p.length(2*paintOuterHalfW), p.length(paintHeight))
	canvas.Rect(p.x(-paintInnerHalfW), p.y(top), p.length(2*paintInnerHalfW), p.length(paintHeight))

	arcY := cornerArcY()
	canvas.Line(p.x(-cornerThreeX), p.y(courtMinY), p.x(-cornerThreeX), p.y(arcY))
	canvas.Line(p.x(cornerThreeX), p.y(courtMinY), p.x(cornerThreeX), p.y(arcY))
	r := p.length(threePointR)
	canvas.Arc(p.x(-cornerThreeX), p.y(arcY), r, r, 0, false, true, p.x(cornerThreeX), p.y(arcY))

	canvas.Gend()
}

func drawShots(canvas *svg.SVG, p projection, points []shots.ChartPoint) int {
	made := 0
	radius := p.length(4)
	if radius < 2 {
		radius = 2
	}
	for _, pt := range points {
		x, y := clamp(pt.LocX, courtMinX, courtMaxX), clamp(pt.LocY, courtMinY, courtMaxY)
		if pt.Made {
			made++
			canvas.Circle(p.x(x), p.y(y), radius, madeStyle)
			continue
		}
		canvas.Circle(p.x(x), p.y(y), radius, missedStyle)
	}
	return made
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// errWriter keeps the first write error so Render can report it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return len(b), nil
	}
	n, err := e.w.Write(b)
	if err != nil {
		e.err = err
	}
	return n, err
}
