// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"github.com/lumenray/raytrace"
)

// skyboxFaceFiles is the fixed filename-per-face convention spec.md §6
// requires, in raytrace.SkyboxFace order.
var skyboxFaceFiles = [...]string{
	"box_left.bmp",
	"box_front.bmp",
	"box_right.bmp",
	"box_back.bmp",
	"box_top.bmp",
	"box_bottom.bmp",
}

// LoadSkybox reads the six fixed-name 24-bit BMP files from dir and
// returns a populated Skybox. All six files must be present and the same
// size; a missing or mismatched file is a load failure, not a partial
// skybox.
func LoadSkybox(dir string) (*raytrace.Skybox, error) {
	var sb *raytrace.Skybox
	for face, name := range skyboxFaceFiles {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("load: skybox: %w", err)
		}
		img, err := bmp.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("load: skybox: decoding %s: %w", path, err)
		}
		bounds := img.Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		if sb == nil {
			sb = raytrace.NewSkybox(w, h)
		} else if w != sb.Width || h != sb.Height {
			return nil, fmt.Errorf("load: skybox: %s is %dx%d, expected %dx%d", path, w, h, sb.Width, sb.Height)
		}
		pixels := sb.Faces[face]
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				pixels[y*w+x] = raytrace.NewColor(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
			}
		}
	}
	return sb, nil
}

// WriteBMP gamma-corrects and clamps fb to bytes per spec.md §6's output
// image rule and encodes it as a 24-bit BMP.
func WriteBMP(w io.Writer, fb []raytrace.Color, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := fb[y*width+x]
			img.Set(x, y, color.RGBA{
				R: gammaByte(c.X),
				G: gammaByte(c.Y),
				B: gammaByte(c.Z),
				A: 0xff,
			})
		}
	}
	return bmp.Encode(w, img)
}

// gammaByte applies spec.md §6's "gamma then clamp to [0,255]" output rule.
func gammaByte(v float64) byte {
	g := math.Pow(v, 1/2.2)
	if g < 0 {
		g = 0
	}
	if g > 1 {
		g = 1
	}
	return byte(g*255 + 0.5)
}
