// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lumenray/raytrace/math/lin"
	"github.com/lumenray/raytrace/physics"
)

// LoadMesh reads a Wavefront OBJ file containing a single mesh description
// and triangulates every face into physics.Triangle values in the file's
// local (object-space) coordinates. This loader supports a limited subset
// of the full specification: `v`, `vn`, and `f` with optional per-vertex
// normal indices; faces with more than 3 vertices are fan-triangulated
// around their first vertex. A face with no explicit vertex normals gets
// the triangle's geometric face normal.
//    https://en.wikipedia.org/wiki/Wavefront_.obj_file#File_format
// Scaling, rotation, and translation into world space is the caller's
// responsibility (spec.md §6's object `size`/`rot`/`pos` keys). The
// Reader r is expected to be opened and closed by the caller.
func LoadMesh(r io.Reader) ([]physics.Triangle, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load: reading obj: %w", err)
	}

	var v, n []lin.V3
	for _, line := range lines {
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseObjV3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("load: bad vertex %q: %w", line, err)
			}
			v = append(v, p)
		case "vn":
			p, err := parseObjV3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("load: bad normal %q: %w", line, err)
			}
			n = append(n, p)
		}
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("load: obj file has no vertex data")
	}

	var triangles []physics.Triangle
	for _, line := range lines {
		fields := strings.Fields(line)
		if fields[0] != "f" {
			continue
		}
		fields = fields[1:]
		if len(fields) < 3 {
			return nil, fmt.Errorf("load: face needs at least 3 vertices: %q", line)
		}
		fvs := make([]faceVertex, len(fields))
		for i, tok := range fields {
			fv, err := parseFaceVertex(tok)
			if err != nil {
				return nil, fmt.Errorf("load: %w", err)
			}
			if fv.v < 0 || fv.v >= len(v) {
				return nil, fmt.Errorf("load: face vertex index %d out of range", fv.v+1)
			}
			fvs[i] = fv
		}
		// Fan-triangulate n-gons around the first vertex.
		for i := 1; i+1 < len(fvs); i++ {
			tri, err := buildTriangle(v, n, fvs[0], fvs[i], fvs[i+1])
			if err != nil {
				return nil, fmt.Errorf("load: %w", err)
			}
			triangles = append(triangles, tri)
		}
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("load: obj file has no faces")
	}
	return triangles, nil
}

func parseObjV3(fields []string) (lin.V3, error) {
	if len(fields) < 3 {
		return lin.V3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var x, y, z float64
	if _, err := fmt.Sscanf(fields[0], "%f", &x); err != nil {
		return lin.V3{}, err
	}
	if _, err := fmt.Sscanf(fields[1], "%f", &y); err != nil {
		return lin.V3{}, err
	}
	if _, err := fmt.Sscanf(fields[2], "%f", &z); err != nil {
		return lin.V3{}, err
	}
	return lin.V3{X: x, Y: y, Z: z}, nil
}

// faceVertex is one "v", "v/t", "v//n", or "v/t/n" face token.
type faceVertex struct {
	v, n int // zero-based indices into the file's v/vn arrays; n == -1 if absent.
}

func parseFaceVertex(tok string) (faceVertex, error) {
	parts := strings.Split(tok, "/")
	var v int
	if _, err := fmt.Sscanf(parts[0], "%d", &v); err != nil {
		return faceVertex{}, fmt.Errorf("bad face vertex index %q: %w", tok, err)
	}
	n := -1
	if len(parts) == 3 && parts[2] != "" {
		if _, err := fmt.Sscanf(parts[2], "%d", &n); err != nil {
			return faceVertex{}, fmt.Errorf("bad face normal index %q: %w", tok, err)
		}
		n--
	}
	return faceVertex{v: v - 1, n: n}, nil
}

func buildTriangle(v, n []lin.V3, a, b, c faceVertex) (physics.Triangle, error) {
	if a.n == -1 || b.n == -1 || c.n == -1 {
		return physics.NewTriangle(v[a.v], v[b.v], v[c.v]), nil
	}
	for _, idx := range []int{a.n, b.n, c.n} {
		if idx < 0 || idx >= len(n) {
			return physics.Triangle{}, fmt.Errorf("face normal index %d out of range", idx+1)
		}
	}
	return physics.NewTriangleN(v[a.v], v[b.v], v[c.v], n[a.n], n[b.n], n[c.n]), nil
}
