package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// HUD rasterizes lines of text into an image for use as a heads up display overlay.
type HUD struct {
	ttf  *truetype.Font
	face font.Face
	ctx  *freetype.Context
	// Padding in pixels around the text.
	pad int
	img *image.RGBA
}

// NewHUD returns a HUD drawing text with the Go regular font at the given size in points (72 DPI).
func NewHUD(fontSize float64) (*HUD, error) {
	if fontSize <= 0 {
		return nil, errors.New("font size must be positive")
	}
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing HUD font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(fontSize)
	ctx.SetHinting(font.HintingFull)
	ctx.SetSrc(image.NewUniform(toNRGBA(LineColor)))
	h := &HUD{
		ttf:  ttf,
		face: truetype.NewFace(ttf, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingFull}),
		ctx:  ctx,
		pad:  4,
	}
	return h, nil
}

// Render draws lines top to bottom on a translucent white background and returns the image,
// sized to fit the text. The image is reused between calls when its size does not change.
func (h *HUD) Render(lines []string) (*image.RGBA, error) {
	if len(lines) == 0 {
		return nil, errors.New("no HUD lines to render")
	}
	metrics := h.face.Metrics()
	lineHeight := metrics.Height.Ceil()
	var width fixed.Int26_6
	for _, line := range lines {
		width = max(width, font.MeasureString(h.face, line))
	}
	bounds := image.Rect(0, 0, width.Ceil()+2*h.pad, lineHeight*len(lines)+2*h.pad)
	if h.img == nil || h.img.Bounds() != bounds {
		h.img = image.NewRGBA(bounds)
	}
	background := toNRGBA([4]float32{1, 1, 1, 0.7})
	draw.Draw(h.img, bounds, image.NewUniform(background), image.Point{}, draw.Src)
	h.ctx.SetDst(h.img)
	h.ctx.SetClip(bounds)
	pt := freetype.Pt(h.pad, h.pad+metrics.Ascent.Ceil())
	for _, line := range lines {
		_, err := h.ctx.DrawString(line, pt)
		if err != nil {
			return nil, err
		}
		pt.Y += fixed.I(lineHeight)
	}
	return h.img, nil
}

// CameraText formats the camera state shown by the HUD.
func CameraText(rotX, rotY float64, scale float32) []string {
	return []string{
		fmt.Sprintf("rotation x %7.1f°", rotX),
		fmt.Sprintf("rotation y %7.1f°", rotY),
		fmt.Sprintf("scale      %7.3f", scale),
	}
}
