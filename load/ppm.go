// Copyright © 2024 Galvanized Logic Inc.

package load

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lumenray/raytrace"
)

// WritePPM encodes fb as an uncompressed binary PPM (P6), the other output
// format spec.md §6 names alongside BMP. No pack library decodes/encodes
// PPM (see DESIGN.md); the format's header-plus-raw-bytes layout is
// trivial enough that a stdlib bufio.Writer is the right tool regardless.
func WritePPM(w io.Writer, fb []raytrace.Color, width, height int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("load: writing ppm header: %w", err)
	}
	buf := make([]byte, 3)
	for _, c := range fb {
		buf[0] = gammaByte(c.X)
		buf[1] = gammaByte(c.Y)
		buf[2] = gammaByte(c.Z)
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("load: writing ppm pixels: %w", err)
		}
	}
	return bw.Flush()
}
