// Copyright © 2024 Galvanized Logic Inc.

package load

// profile.go reads two optional YAML ambient-config surfaces: a render
// profile overriding numeric Options fields, and a library of named
// material presets. The scene parser does not read a `preset=` key, so a
// loaded preset library is not applied to scene objects. Neither is part of the mandatory scene-file grammar (spec.md §6), which
// has its own bespoke block syntax; these are convenience layers on top,
// following load/shd.go's "yaml into a config struct, then translate"
// pattern.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumenray/raytrace"
)

// renderProfile mirrors the subset of Options a profile file may override.
type renderProfile struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FOV         float64 `yaml:"fov"`
	Bias        float64 `yaml:"bias"`
	MaxRayDepth int     `yaml:"max_ray_depth"`
	Workers     int     `yaml:"workers"`
	AcPenalty   int     `yaml:"ac_penalty"`
}

// LoadProfile reads a YAML render profile from path and returns the Attr
// overrides it specifies. Zero-valued fields are left unset so a profile
// only needs to name the options it actually overrides.
func LoadProfile(path string) ([]raytrace.Attr, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: profile: %w", err)
	}
	var p renderProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("load: profile: yaml: %w", err)
	}

	var attrs []raytrace.Attr
	if p.Width > 0 && p.Height > 0 {
		attrs = append(attrs, raytrace.Size(p.Width, p.Height))
	}
	if p.FOV > 0 {
		attrs = append(attrs, raytrace.FOV(p.FOV))
	}
	if p.Bias > 0 {
		attrs = append(attrs, raytrace.Bias(p.Bias))
	}
	if p.MaxRayDepth > 0 {
		attrs = append(attrs, raytrace.MaxRayDepth(p.MaxRayDepth))
	}
	if p.Workers > 0 {
		attrs = append(attrs, raytrace.Workers(p.Workers))
	}
	if p.AcPenalty > 0 {
		attrs = append(attrs, raytrace.AcPenalty(p.AcPenalty))
	}
	return attrs, nil
}

// materialPreset mirrors a named raytrace.Material in YAML form.
type materialPreset struct {
	Kind             string    `yaml:"kind"`
	Color            []float64 `yaml:"color"`
	Pattern          string    `yaml:"pattern"`
	IOR              float64   `yaml:"ior"`
	Ambient          float64   `yaml:"ambient"`
	Diffuse          float64   `yaml:"diffuse"`
	Specular         float64   `yaml:"specular"`
	SpecularExponent float64   `yaml:"specular_exponent"`
}

// LoadMaterialPresets reads a named-preset library from path and returns
// the Materials keyed by preset name. Neither LoadScene nor the CLI calls
// it; scene objects take their material only from the inline `material=`
// key.
func LoadMaterialPresets(path string) (map[string]raytrace.Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: material presets: %w", err)
	}
	var presets map[string]materialPreset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("load: material presets: yaml: %w", err)
	}

	out := make(map[string]raytrace.Material, len(presets))
	for name, p := range presets {
		mat := raytrace.Material{Color: raytrace.NewColor(1, 1, 1)}
		if len(p.Color) == 3 {
			mat.Color = raytrace.NewColor(p.Color[0], p.Color[1], p.Color[2])
		}
		switch p.Pattern {
		case "chessboard":
			mat.Pattern = raytrace.Chessboard
		}
		switch p.Kind {
		case "", "diffuse":
			mat.Kind = raytrace.Diffuse
		case "phong":
			mat.Kind = raytrace.Phong
			mat.Ambient, mat.DiffuseCoeff, mat.Specular, mat.SpecularExponent = p.Ambient, p.Diffuse, p.Specular, p.SpecularExponent
		case "reflective":
			mat.Kind = raytrace.Reflective
		case "transparent":
			mat.Kind = raytrace.Transparent
			mat.IndexOfRefraction = p.IOR
		default:
			return nil, fmt.Errorf("load: material presets: preset %q has unrecognized kind %q", name, p.Kind)
		}
		out[name] = mat
	}
	return out, nil
}
