package viz

import (
	"image"
	"image/color"
	"image/gif"
	"io"
)

// Image rasterises the canvas, drawing each braille dot as a dotW x dotH
// block.
func (c *Canvas) Image(dotW, dotH int) *image.Paletted {
	pw, ph := c.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, pw*dotW, ph*dotH), color.Palette{color.Black, color.White})
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	return img
}

// WriteGIF encodes frames as a looping animation with delay hundredths of a
// second between frames.
func WriteGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, f := range frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}
