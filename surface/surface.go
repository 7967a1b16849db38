// Package surface defines the drawing target the fire is painted onto.
package surface

import (
	"image/color"

	"github.com/pthm-cable/ember/sim"
)

// Surface is anything that can be cleared and have alpha-blended disks
// drawn on it. Coordinates are simulation units.
type Surface interface {
	Clear()
	FillCircle(x, y, radius float64, c color.NRGBA)
}

// Paint clears s and draws every sprite in order.
func Paint(s Surface, sprites []sim.Sprite) {
	s.Clear()
	for i := range sprites {
		sp := &sprites[i]
		s.FillCircle(sp.X, sp.Y, sp.Radius, sp.Color)
	}
}

// Circle is one recorded FillCircle call.
type Circle struct {
	X, Y, Radius float64
	Color        color.NRGBA
}

// Recorder is an in-memory surface. It keeps only the circles drawn since
// the last Clear.
type Recorder struct {
	Clears  int
	Circles []Circle
}

// Clear implements Surface.
func (r *Recorder) Clear() {
	r.Clears++
	r.Circles = r.Circles[:0]
}

// FillCircle implements Surface.
func (r *Recorder) FillCircle(x, y, radius float64, c color.NRGBA) {
	r.Circles = append(r.Circles, Circle{X: x, Y: y, Radius: radius, Color: c})
}
