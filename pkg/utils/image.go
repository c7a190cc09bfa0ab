package utils

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
)

// FrameImage converts frame to an image using the colours of pal,
// scaled by scale with nearest neighbour sampling.
func FrameImage(frame *ppu.Frame, pal palette.Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	src := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			src.SetRGBA(x, y, pal.RGBA(frame[y][x]))
		}
	}
	if scale == 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*scale, ppu.ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG encodes img as a PNG to filename.
func SavePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
