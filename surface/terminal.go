package surface

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// halfBlock draws the top pixel as foreground and the bottom as background,
// giving two square-ish pixels per terminal cell.
const halfBlock = '▀'

// Terminal rasterizes disks into a pixel grid and presents it on a tcell
// screen. Each cell holds two vertically stacked pixels.
type Terminal struct {
	screen tcell.Screen

	worldW, worldH float64
	cols, rows     int
	pixels         []colorful.Color // cols x rows*2, row-major
	bg             colorful.Color
}

// NewTerminal creates a terminal surface that maps a worldW x worldH
// simulation onto the screen.
func NewTerminal(screen tcell.Screen, worldW, worldH float64, bg color.NRGBA) *Terminal {
	t := &Terminal{
		screen: screen,
		worldW: worldW,
		worldH: worldH,
		bg:     toColorful(bg),
	}
	t.Resize()
	return t
}

// Resize re-reads the screen size. Call it on tcell.EventResize.
func (t *Terminal) Resize() {
	t.cols, t.rows = t.screen.Size()
	n := t.cols * t.rows * 2
	if cap(t.pixels) < n {
		t.pixels = make([]colorful.Color, n)
	}
	t.pixels = t.pixels[:n]
	t.Clear()
}

// PixelSize returns the grid dimensions in pixels.
func (t *Terminal) PixelSize() (w, h int) {
	return t.cols, t.rows * 2
}

// ToWorld maps a terminal cell to simulation coordinates (cell center).
func (t *Terminal) ToWorld(col, row int) (x, y float64) {
	if t.cols == 0 || t.rows == 0 {
		return 0, 0
	}
	x = (float64(col) + 0.5) * t.worldW / float64(t.cols)
	y = (float64(row) + 0.5) * t.worldH / float64(t.rows)
	return x, y
}

// Clear implements Surface.
func (t *Terminal) Clear() {
	for i := range t.pixels {
		t.pixels[i] = t.bg
	}
}

// FillCircle implements Surface. The disk is scaled into pixel space and
// blended over the existing pixels by the colour's alpha.
func (t *Terminal) FillCircle(x, y, radius float64, c color.NRGBA) {
	pw, ph := t.PixelSize()
	if pw == 0 || ph == 0 || c.A == 0 {
		return
	}
	sx := float64(pw) / t.worldW
	sy := float64(ph) / t.worldH

	cx, cy := x*sx, y*sy
	rx, ry := math.Max(radius*sx, 0.5), math.Max(radius*sy, 0.5)

	x0 := max(int(math.Floor(cx-rx)), 0)
	x1 := min(int(math.Ceil(cx+rx)), pw-1)
	y0 := max(int(math.Floor(cy-ry)), 0)
	y1 := min(int(math.Ceil(cy+ry)), ph-1)

	src := toColorful(c)
	alpha := float64(c.A) / 255

	for py := y0; py <= y1; py++ {
		dy := (float64(py) + 0.5 - cy) / ry
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - cx) / rx
			if dx*dx+dy*dy > 1 {
				continue
			}
			i := py*pw + px
			t.pixels[i] = t.pixels[i].BlendRgb(src, alpha)
		}
	}
}

// Pixel returns the colour at pixel (px, py).
func (t *Terminal) Pixel(px, py int) colorful.Color {
	pw, _ := t.PixelSize()
	return t.pixels[py*pw+px]
}

// Present writes the pixel grid to the screen and shows it.
func (t *Terminal) Present() {
	pw, _ := t.PixelSize()
	for row := 0; row < t.rows; row++ {
		top := t.pixels[row*2*pw:]
		bottom := t.pixels[(row*2+1)*pw:]
		for col := 0; col < t.cols; col++ {
			style := tcell.StyleDefault.
				Foreground(toTcell(top[col])).
				Background(toTcell(bottom[col]))
			t.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
