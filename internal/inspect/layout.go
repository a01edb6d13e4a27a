package inspect

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/mj1618/uisoup/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// MaxLayoutSide caps each side of a rendered layout map, in pixels.
const MaxLayoutSide = 4096

// ErrEmptyLayout is returned when no element has a non-empty rectangle.
var ErrEmptyLayout = errors.New("no element has on-screen bounds")

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	boxColor        = color.RGBA{R: 220, G: 0, B: 0, A: 255}
	textColor       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// RenderLayoutMap draws every element rectangle of the tree on a white
// canvas covering their union, each labelled with its combined name.
// Canvas pixel (0, 0) is the top-left corner of the union.
func RenderLayoutMap(tree []model.ElementInfo) (*image.RGBA, error) {
	flat := model.FlattenElements(tree)
	var boxes []model.FlatElementInfo
	for _, el := range flat {
		if el.Bounds[2] > 0 && el.Bounds[3] > 0 {
			boxes = append(boxes, el)
		}
	}
	if len(boxes) == 0 {
		return nil, ErrEmptyLayout
	}

	union := image.Rect(boxes[0].Bounds[0], boxes[0].Bounds[1],
		boxes[0].Bounds[0]+boxes[0].Bounds[2], boxes[0].Bounds[1]+boxes[0].Bounds[3])
	for _, el := range boxes[1:] {
		union = union.Union(image.Rect(el.Bounds[0], el.Bounds[1], el.Bounds[0]+el.Bounds[2], el.Bounds[1]+el.Bounds[3]))
	}
	if union.Dx() > MaxLayoutSide || union.Dy() > MaxLayoutSide {
		return nil, fmt.Errorf("layout %dx%d exceeds %d pixels per side", union.Dx(), union.Dy(), MaxLayoutSide)
	}

	img := image.NewRGBA(image.Rect(0, 0, union.Dx(), union.Dy()))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	for _, el := range boxes {
		x := el.Bounds[0] - union.Min.X
		y := el.Bounds[1] - union.Min.Y
		drawRectangle(img, x, y, x+el.Bounds[2], y+el.Bounds[3], boxColor)
		if label := el.CName; label != "" {
			// Baseline 11px below the top edge keeps Face7x13 inside the box.
			drawText(img, label, x+2, y+11, textColor)
		}
	}
	return img, nil
}

// WriteLayoutMap renders the layout map of tree as PNG.
func WriteLayoutMap(w io.Writer, tree []model.ElementInfo) error {
	img, err := RenderLayoutMap(tree)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func drawText(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
