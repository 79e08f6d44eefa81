// Copyright © 2024 Galvanized Logic Inc.

package load

import (
	"strings"
	"testing"

	"github.com/lumenray/raytrace"
)

const minimalScene = `
[options]
width=4
height=4
n_workers=2
background_color=0.1,0.2,0.3
position=0,0,5
rotation=0,0,0
image_name=out.ppm
[end]

[light]
type=distant
direction=0,0,-1
color=1,1,1
intensity=1
[end]

[object]
type=sphere
pos=0,0,0
radius=1
color=1,0,0
[end]
`

func TestLoadSceneMinimal(t *testing.T) {
	sc, err := LoadScene(strings.NewReader(minimalScene), ".")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if sc.ImageName != "out.ppm" {
		t.Errorf("ImageName = %q, want out.ppm", sc.ImageName)
	}
	if len(sc.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(sc.Objects))
	}
	if len(sc.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(sc.Lights))
	}
	w, h := sc.Options.Dimensions()
	if w != 4 || h != 4 {
		t.Errorf("Dimensions = (%d,%d), want (4,4)", w, h)
	}
}

const commentedScene = `
[options]
width=2
height=2
[end]

#[light]
type=distant
direction=0,0,-1
[end]

[object]
type=sphere
pos=0,0,0 # inline comment
radius=1
#this whole line is ignored
[end]
`

func TestLoadSceneHonorsComments(t *testing.T) {
	sc, err := LoadScene(strings.NewReader(commentedScene), ".")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if len(sc.Lights) != 0 {
		t.Errorf("expected the #[light] block to be fully commented out, got %d lights", len(sc.Lights))
	}
	if len(sc.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(sc.Objects))
	}
}

func TestLoadSceneMissingRequiredKey(t *testing.T) {
	bad := "[options]\nwidth=4\nheight=4\n[end]\n[object]\ntype=sphere\n[end]\n"
	if _, err := LoadScene(strings.NewReader(bad), "."); err == nil {
		t.Error("expected an error for a sphere missing pos/radius")
	}
}

func TestLoadSceneUnrecognizedObjectType(t *testing.T) {
	bad := "[object]\ntype=cone\npos=0,0,0\n[end]\n"
	if _, err := LoadScene(strings.NewReader(bad), "."); err == nil {
		t.Error("expected an error for an unrecognized object type")
	}
}

func TestLoadSceneReflectiveAndTransparentMaterials(t *testing.T) {
	s := `
[object]
type=sphere
pos=0,0,0
radius=1
material=reflective
[end]
[object]
type=sphere
pos=3,0,0
radius=1
material=transparent,1.5
[end]
`
	sc, err := LoadScene(strings.NewReader(s), ".")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if len(sc.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(sc.Objects))
	}
	if sc.Objects[0].Material.Kind != raytrace.Reflective {
		t.Errorf("first object Kind = %v, want Reflective", sc.Objects[0].Material.Kind)
	}
	if sc.Objects[1].Material.Kind != raytrace.Transparent {
		t.Errorf("second object Kind = %v, want Transparent", sc.Objects[1].Material.Kind)
	}
	if sc.Objects[1].Material.IndexOfRefraction != 1.5 {
		t.Errorf("second object IndexOfRefraction = %v, want 1.5", sc.Objects[1].Material.IndexOfRefraction)
	}
}
