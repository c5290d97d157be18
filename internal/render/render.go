// Package render draws parking space overlays onto video frames: blended
// polygon fills color-coded by status, outlines, index labels, detection
// boxes, the summary banner and editor feedback.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lotvision/parking-monitor/internal/editor"
	"github.com/lotvision/parking-monitor/internal/occupancy"
	"github.com/lotvision/parking-monitor/internal/space"
	"github.com/lotvision/parking-monitor/pkg/types"
)

var (
	colorFree     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colorOccupied = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorBooked   = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	colorText     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorPending  = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	colorBanner   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// StatusColor maps occupancy to the overlay color: red when occupied,
// green when free. Pure function of the boolean.
func StatusColor(occupied bool) color.RGBA {
	if occupied {
		return colorOccupied
	}
	return colorFree
}

// SpotColor adds the booking dimension: a booked-but-free spot renders
// yellow; occupancy always wins over booking.
func SpotColor(occupied, booked bool) color.RGBA {
	if !occupied && booked {
		return colorBooked
	}
	return StatusColor(occupied)
}

// Renderer draws overlays. FillAlpha is the overlay weight of the blended
// polygon fill (the underlying frame keeps 1-FillAlpha).
type Renderer struct {
	FillAlpha float64
	face      font.Face
}

// New returns a renderer with the stock 0.3 fill blend.
func New() *Renderer {
	return &Renderer{
		FillAlpha: 0.3,
		face:      basicfont.Face7x13,
	}
}

// Render produces a new frame with all overlays applied. The input frame
// is not modified; no other state is touched.
func (r *Renderer) Render(
	frame *types.Frame,
	spaces []space.ParkingSpace,
	res occupancy.Result,
	booked map[int]bool,
	session editor.Session,
	detections []types.Detection,
) *image.RGBA {
	src := frame.Image
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)

	for _, det := range detections {
		r.drawDetection(out, det)
	}

	for i, sp := range spaces {
		col := SpotColor(res.IsOccupied(i), booked[i])
		r.fillPolygon(out, sp, col)
		r.outlinePolygon(out, sp, col)
		r.drawSpaceLabel(out, sp, i)
	}

	r.drawSummary(out, frame, res)

	if session.Active {
		r.drawPending(out, session.Pending)
	}

	return out
}

func (r *Renderer) drawDetection(img *image.RGBA, det types.Detection) {
	b := det.BBox
	rect := image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
	drawRect(img, rect, colorFree, 2)

	label := fmt.Sprintf("%s: %.2f", det.ClassName, det.Confidence)
	labelY := b.Y - 4
	if labelY < r.face.Metrics().Ascent.Ceil() {
		labelY = b.Y + b.H + r.face.Metrics().Height.Ceil()
	}
	r.drawText(img, b.X, labelY, label, colorFree, nil)
}

// fillPolygon blends the fill color over every pixel inside the space,
// using the same inclusive containment test the occupancy engine uses so
// the painted region matches the evaluated one exactly. O(bounding box),
// fine for lot-scale overlays.
func (r *Renderer) fillPolygon(img *image.RGBA, sp space.ParkingSpace, col color.RGBA) {
	bounds := sp.Bounds().Intersect(img.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if occupancy.Contains(sp, image.Point{X: x, Y: y}) {
				blendPixel(img, x, y, col, r.FillAlpha)
			}
		}
	}
}

func (r *Renderer) outlinePolygon(img *image.RGBA, sp space.ParkingSpace, col color.RGBA) {
	for i := range sp {
		a := sp[i].ImagePoint()
		b := sp[(i+1)%len(sp)].ImagePoint()
		drawLine(img, a, b, col, 2)
	}
}

// drawSpaceLabel puts the 1-based index near the third clicked vertex,
// matching the original layout (third corner X-20, Y+20).
func (r *Renderer) drawSpaceLabel(img *image.RGBA, sp space.ParkingSpace, index int) {
	x := sp[2].X - 20
	y := sp[2].Y + 20
	if x < 0 {
		x = 0
	}
	r.drawText(img, x, y, fmt.Sprintf("%d", index+1), colorText, nil)
}

func (r *Renderer) drawSummary(img *image.RGBA, frame *types.Frame, res occupancy.Result) {
	line1 := fmt.Sprintf("Total: %d  Occupied: %d  Free: %d", res.Total, res.Occupied, res.Free)
	line2 := frame.Timestamp.Format("2006/01/02 15:04:05")
	r.drawText(img, 10, 20, line1, colorText, &colorBanner)
	r.drawText(img, 10, 20+r.face.Metrics().Height.Ceil()+4, line2, colorText, &colorBanner)
}

// drawPending marks collected points and, from the second point on, joins
// consecutive points so the operator sees the quad taking shape.
func (r *Renderer) drawPending(img *image.RGBA, pending []space.Point) {
	for i := 1; i < len(pending); i++ {
		drawLine(img, pending[i-1].ImagePoint(), pending[i].ImagePoint(), colorPending, 2)
	}
	for _, p := range pending {
		marker := image.Rect(p.X-3, p.Y-3, p.X+4, p.Y+4)
		fillRect(img, marker, colorPending)
	}
}

// drawText renders one line with an optional solid background behind it.
// (x, y) is the text baseline.
func (r *Renderer) drawText(img *image.RGBA, x, y int, text string, col color.RGBA, background *color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	if background != nil {
		width := d.MeasureString(text).Ceil()
		ascent := r.face.Metrics().Ascent.Ceil()
		descent := r.face.Metrics().Descent.Ceil()
		bg := image.Rect(x-2, y-ascent-2, x+width+2, y+descent+2)
		fillRect(img, bg, *background)
	}
	d.DrawString(text)
}

func blendPixel(img *image.RGBA, x, y int, col color.RGBA, alpha float64) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	dst := img.RGBAAt(x, y)
	blend := func(s, d uint8) uint8 {
		return uint8(float64(s)*alpha + float64(d)*(1-alpha) + 0.5)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: blend(col.R, dst.R),
		G: blend(col.G, dst.G),
		B: blend(col.B, dst.B),
		A: 255,
	})
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// drawRect draws an unfilled rectangle with the given edge thickness.
func drawRect(img *image.RGBA, rect image.Rectangle, col color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		r := rect.Inset(t)
		if r.Empty() {
			return
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			setPixel(img, x, r.Min.Y, col)
			setPixel(img, x, r.Max.Y-1, col)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			setPixel(img, r.Min.X, y, col)
			setPixel(img, r.Max.X-1, y, col)
		}
	}
}

// drawLine is Bresenham with a square brush for thickness.
func drawLine(img *image.RGBA, a, b image.Point, col color.RGBA, thickness int) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	x, y := a.X, a.Y
	for {
		for ox := 0; ox < thickness; ox++ {
			for oy := 0; oy < thickness; oy++ {
				setPixel(img, x+ox, y+oy, col)
			}
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
