// Copyright © 2024 Galvanized Logic Inc.

package load

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lumenray/raytrace"
	"github.com/lumenray/raytrace/math/lin"
	"github.com/lumenray/raytrace/physics"
)

// Scene is the result of parsing a scene file: a fully built raytrace.Scene
// plus the output image filename named by the options block's image_name
// key (spec.md §6), which the renderer itself has no use for but the CLI
// needs to pick an encoder and destination.
type Scene struct {
	*raytrace.Scene
	ImageName string
}

// block is the raw key=value accumulator for one [options]/[light]/[object]
// section. Parsing tolerates unknown keys, per spec.md §6.
type block struct {
	kind string
	kv   map[string]string
}

// LoadSceneFile parses the text scene format at path and builds the scene
// it describes, resolving relative mesh paths against path's directory. A
// malformed scene (unparsable value, missing required key, OBJ failure) is
// reported as a single wrapped error; nothing is partially built and
// handed back per spec.md §7's "abort before workers start". Lines that
// are not key=value and unknown block headers are logged and skipped.
func LoadSceneFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	return LoadScene(f, filepath.Dir(path))
}

// LoadScene parses the text scene format from r. baseDir anchors relative
// mesh (object `name=`) paths. Skyboxes are not loaded here.
func LoadScene(r io.Reader, baseDir string) (*Scene, error) {
	blocks, err := parseBlocks(r)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	var opts *block
	var lights, objects []*block
	for _, b := range blocks {
		switch b.kind {
		case "options":
			opts = b
		case "light":
			lights = append(lights, b)
		case "object":
			objects = append(objects, b)
		default:
			slog.Warn("load: unrecognized scene block", "kind", b.kind)
		}
	}
	if opts == nil {
		opts = &block{kind: "options", kv: map[string]string{}}
	}

	attrs, camPos, camRot, imageName, acPenalty, err := parseOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("load: options: %w", err)
	}

	raytraceLights := make([]*raytrace.Light, 0, len(lights))
	for i, b := range lights {
		l, err := parseLight(b)
		if err != nil {
			return nil, fmt.Errorf("load: light %d: %w", i, err)
		}
		raytraceLights = append(raytraceLights, l)
	}

	raytraceObjects := make([]*raytrace.Object, 0, len(objects))
	for i, b := range objects {
		o, err := parseObject(b, baseDir, acPenalty)
		if err != nil {
			return nil, fmt.Errorf("load: object %d: %w", i, err)
		}
		raytraceObjects = append(raytraceObjects, o)
	}

	cam := raytrace.NewCamera(camPos, camRot.X, camRot.Y, camRot.Z)
	sc := raytrace.NewScene(cam, raytraceObjects, raytraceLights, attrs...)
	return &Scene{Scene: sc, ImageName: imageName}, nil
}

// parseBlocks tokenizes the [options]/[light]/[object]/[end] block
// structure, honoring `#` line/inline comments and `#[...]` whole-block
// comment-out until the next `[` per spec.md §6.
func parseBlocks(r io.Reader) ([]*block, error) {
	var blocks []*block
	var cur *block
	skip := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if skip {
			if !strings.HasPrefix(line, "[") {
				continue
			}
			skip = false
		}
		if strings.HasPrefix(line, "#[") {
			skip = true
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if line == "" {
				continue
			}
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			header := strings.TrimSpace(line[1 : len(line)-1])
			switch header {
			case "end":
				if cur != nil {
					blocks = append(blocks, cur)
					cur = nil
				}
			case "options", "light", "object":
				if cur != nil { // tolerate a missing [end] before the next header.
					blocks = append(blocks, cur)
				}
				cur = &block{kind: header, kv: map[string]string{}}
			default:
				slog.Warn("load: unknown block header", "header", header)
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			slog.Warn("load: malformed scene line, expected key=value", "line", line)
			continue
		}
		if cur == nil {
			slog.Warn("load: key=value outside any block, ignored", "line", line)
			continue
		}
		cur.kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	if cur != nil {
		blocks = append(blocks, cur)
	}
	return blocks, nil
}

// parseOptions also returns acPenalty, the raw BVH leaf-threshold value
// (spec.md §3), separately from attrs: mesh objects need it at
// construction time to build their BVH, before raytrace.NewScene ever
// applies the Attr overrides.
func parseOptions(b *block) (attrs []raytrace.Attr, camPos, camRot lin.V3, imageName string, acPenalty int, err error) {
	if w, h, ok := twoInts(b.kv, "width", "height"); ok {
		attrs = append(attrs, raytrace.Size(w, h))
	}
	if s, ok := b.kv["n_workers"]; ok {
		n, perr := strconv.Atoi(s)
		if perr != nil {
			return nil, lin.V3{}, lin.V3{}, "", 0, fmt.Errorf("bad n_workers %q: %w", s, perr)
		}
		attrs = append(attrs, raytrace.Workers(n))
	}
	if s, ok := b.kv["max_ray_depth"]; ok {
		n, perr := strconv.Atoi(s)
		if perr != nil {
			return nil, lin.V3{}, lin.V3{}, "", 0, fmt.Errorf("bad max_ray_depth %q: %w", s, perr)
		}
		attrs = append(attrs, raytrace.MaxRayDepth(n))
	}
	if s, ok := b.kv["ac_penalty"]; ok {
		n, perr := strconv.Atoi(s)
		if perr != nil {
			return nil, lin.V3{}, lin.V3{}, "", 0, fmt.Errorf("bad ac_penalty %q: %w", s, perr)
		}
		attrs = append(attrs, raytrace.AcPenalty(n))
		acPenalty = n
	}
	if s, ok := b.kv["fov"]; ok {
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return nil, lin.V3{}, lin.V3{}, "", 0, fmt.Errorf("bad fov %q: %w", s, perr)
		}
		attrs = append(attrs, raytrace.FOV(f))
	}
	if s, ok := b.kv["background_color"]; ok {
		c, perr := parseV3(s)
		if perr != nil {
			return nil, lin.V3{}, lin.V3{}, "", 0, fmt.Errorf("bad background_color %q: %w", s, perr)
		}
		attrs = append(attrs, raytrace.Background(raytrace.NewColor(c.X, c.Y, c.Z)))
	}
	if s, ok := b.kv["position"]; ok {
		camPos, err = parseV3(s)
		if err != nil {
			return nil, lin.V3{}, lin.V3{}, "", 0, fmt.Errorf("bad position %q: %w", s, err)
		}
	}
	if s, ok := b.kv["rotation"]; ok {
		camRot, err = parseV3(s)
		if err != nil {
			return nil, lin.V3{}, lin.V3{}, "", 0, fmt.Errorf("bad rotation %q: %w", s, err)
		}
	}
	imageName = b.kv["image_name"]
	return attrs, camPos, camRot, imageName, acPenalty, nil
}

func twoInts(kv map[string]string, ka, kb string) (a, b int, ok bool) {
	sa, oka := kv[ka]
	sb, okb := kv[kb]
	if !oka || !okb {
		return 0, 0, false
	}
	var ea, eb error
	a, ea = strconv.Atoi(sa)
	b, eb = strconv.Atoi(sb)
	return a, b, ea == nil && eb == nil
}

func parseV3(s string) (lin.V3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return lin.V3{}, fmt.Errorf("expected 3 comma-separated floats, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return lin.V3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = f
	}
	return lin.V3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseLight(b *block) (*raytrace.Light, error) {
	kind, ok := b.kv["type"]
	if !ok {
		return nil, fmt.Errorf("missing required key: type")
	}
	color := raytrace.NewColor(1, 1, 1)
	if s, ok := b.kv["color"]; ok {
		c, err := parseV3(s)
		if err != nil {
			return nil, fmt.Errorf("bad color %q: %w", s, err)
		}
		color = raytrace.NewColor(c.X, c.Y, c.Z)
	}
	intensity := 1.0
	if s, ok := b.kv["intensity"]; ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bad intensity %q: %w", s, err)
		}
		intensity = f
	}

	switch kind {
	case "distant":
		dir, err := requireV3(b, "direction")
		if err != nil {
			return nil, err
		}
		return raytrace.NewDistantLight(dir, color, intensity), nil
	case "point":
		pos, err := requireV3(b, "position")
		if err != nil {
			return nil, err
		}
		return raytrace.NewPointLight(pos, color, intensity), nil
	case "area":
		pos, err := requireV3(b, "pos")
		if err != nil {
			return nil, err
		}
		i, err := requireV3(b, "i")
		if err != nil {
			return nil, err
		}
		j, err := requireV3(b, "j")
		if err != nil {
			return nil, err
		}
		samples := intOrDefault(b.kv, "samples", 8)
		baseSamples := intOrDefault(b.kv, "base_samples", 2)
		return raytrace.NewAreaLight(pos, i, j, color, intensity, baseSamples, samples), nil
	default:
		return nil, fmt.Errorf("unrecognized light type %q", kind)
	}
}

func requireV3(b *block, key string) (lin.V3, error) {
	s, ok := b.kv[key]
	if !ok {
		return lin.V3{}, fmt.Errorf("missing required key: %s", key)
	}
	v, err := parseV3(s)
	if err != nil {
		return lin.V3{}, fmt.Errorf("bad %s %q: %w", key, s, err)
	}
	return v, nil
}

func intOrDefault(kv map[string]string, key string, def int) int {
	s, ok := kv[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseObject(b *block, baseDir string, acPenalty int) (*raytrace.Object, error) {
	kind, ok := b.kv["type"]
	if !ok {
		return nil, fmt.Errorf("missing required key: type")
	}
	mat, err := parseMaterial(b)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}

	switch kind {
	case "sphere":
		pos, err := requireV3(b, "pos")
		if err != nil {
			return nil, err
		}
		s, ok := b.kv["radius"]
		if !ok {
			return nil, fmt.Errorf("missing required key: radius")
		}
		radius, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bad radius %q: %w", s, err)
		}
		return raytrace.NewSphere(pos, radius, mat), nil

	case "plane":
		pos, err := requireV3(b, "pos")
		if err != nil {
			return nil, err
		}
		normal, err := requireV3(b, "normal")
		if err != nil {
			return nil, err
		}
		return raytrace.NewPlane(pos, normal, mat), nil

	case "mesh":
		name, ok := b.kv["name"]
		if !ok {
			return nil, fmt.Errorf("missing required key: name")
		}
		pos, err := requireV3(b, "pos")
		if err != nil {
			return nil, err
		}
		size := 1.0
		if s, ok := b.kv["size"]; ok {
			size, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("bad size %q: %w", s, err)
			}
		}
		var rotDeg lin.V3
		if s, ok := b.kv["rot"]; ok {
			rotDeg, err = parseV3(s)
			if err != nil {
				return nil, fmt.Errorf("bad rot %q: %w", s, err)
			}
		}
		rot := *lin.RotationXYZ(rotDeg.X, rotDeg.Y, rotDeg.Z)

		f, err := os.Open(filepath.Join(baseDir, name))
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", name, err)
		}
		defer f.Close()
		triangles, err := LoadMesh(f)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", name, err)
		}
		transformMesh(triangles, pos, size, &rot)
		return raytrace.NewMesh(pos, size, rot, triangles, mat, acPenalty), nil

	default:
		return nil, fmt.Errorf("unrecognized object type %q", kind)
	}
}

func parseMaterial(b *block) (raytrace.Material, error) {
	mat := raytrace.Material{Kind: raytrace.Diffuse, Color: raytrace.NewColor(1, 1, 1)}
	if s, ok := b.kv["color"]; ok {
		c, err := parseV3(s)
		if err != nil {
			return mat, fmt.Errorf("bad color %q: %w", s, err)
		}
		mat.Color = raytrace.NewColor(c.X, c.Y, c.Z)
	}
	if s, ok := b.kv["pattern"]; ok {
		switch s {
		case "chessboard":
			mat.Pattern = raytrace.Chessboard
		default:
			return mat, fmt.Errorf("unrecognized pattern %q", s)
		}
	}
	s, ok := b.kv["material"]
	if !ok {
		return mat, nil
	}
	fields := strings.Split(s, ",")
	switch strings.TrimSpace(fields[0]) {
	case "transparent":
		mat.Kind = raytrace.Transparent
		if len(fields) < 2 {
			return mat, fmt.Errorf("transparent material requires ,ior")
		}
		ior, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return mat, fmt.Errorf("bad ior %q: %w", fields[1], err)
		}
		mat.IndexOfRefraction = ior
	case "reflective":
		mat.Kind = raytrace.Reflective
	case "phong":
		mat.Kind = raytrace.Phong
		if len(fields) < 5 {
			return mat, fmt.Errorf("phong material requires ,ambient,diffuse,specular,exponent")
		}
		vals := make([]float64, 4)
		for i := 0; i < 4; i++ {
			f, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
			if err != nil {
				return mat, fmt.Errorf("bad phong coefficient %q: %w", fields[i+1], err)
			}
			vals[i] = f
		}
		mat.Ambient, mat.DiffuseCoeff, mat.Specular, mat.SpecularExponent = vals[0], vals[1], vals[2], vals[3]
	default:
		return mat, fmt.Errorf("unrecognized material kind %q", fields[0])
	}
	return mat, nil
}

// transformMesh maps each triangle's object-space vertices and normals
// into world space: scale by size, rotate by rot, translate by pos.
// Normals are rotated but not scaled/translated.
func transformMesh(triangles []physics.Triangle, pos lin.V3, size float64, rot *lin.M3) {
	for i := range triangles {
		t := &triangles[i]
		t.A = transformPoint(t.A, pos, size, rot)
		t.B = transformPoint(t.B, pos, size, rot)
		t.C = transformPoint(t.C, pos, size, rot)
		t.Na = transformNormal(t.Na, rot)
		t.Nb = transformNormal(t.Nb, rot)
		t.Nc = transformNormal(t.Nc, rot)
	}
}

func transformPoint(p, pos lin.V3, size float64, rot *lin.M3) lin.V3 {
	p.Scale(&p, size)
	p.MultMv(rot, &p)
	p.Add(&p, &pos)
	return p
}

func transformNormal(n lin.V3, rot *lin.M3) lin.V3 {
	n.MultMv(rot, &n)
	n.Unit()
	return n
}
