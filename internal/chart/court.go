// Package chart draws half-court shot charts as SVG.
package chart

import "math"

// Court coordinates are tenths of a foot with the hoop at the origin.
const (
	courtMinX = -250.0
	courtMaxX = 250.0
	courtMinY = -47.5
	courtMaxY = 422.5

	hoopRadius      = 7.5
	threePointR     = 237.5
	cornerThreeX    = 220.0
	paintOuterHalfW = 80.0
	paintInnerHalfW = 60.0
	paintHeight     = 190.0
	backboardHalfW  = 30.0
	backboardY      = -7.5
)

// projection maps court coordinates onto the SVG canvas.
type projection struct {
	scale  float64
	margin int
}

func (p projection) width() int {
	return int(math.Round((courtMaxX-courtMinX)*p.scale)) + 2*p.margin
}

func (p projection) height() int {
	return int(math.Round((courtMaxY-courtMinY)*p.scale)) + 2*p.margin
}

func (p projection) x(v float64) int {
	return p.margin + int(math.Round((v-courtMinX)*p.scale))
}

// y flips the axis so the baseline sits at the bottom of the image.
func (p projection) y(v float64) int {
	return p.margin + int(math.Round((courtMaxY-v)*p.scale))
}

func (p projection) length(v float64) int {
	return int(math.Round(v * p.scale))
}

// cornerArcY is where the arc meets the straight corner three lines.
func cornerArcY() float64 {
	return math.Sqrt(threePointR*threePointR - cornerThreeX*cornerThreeX)
}
