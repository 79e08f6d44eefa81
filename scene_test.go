// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import (
	"testing"

	"github.com/lumenray/raytrace/math/lin"
)

// S1: empty scene, skybox off, background (0,0,0) everywhere.
func TestSceneEmptyBackground(t *testing.T) {
	cam := NewCamera(lin.V3{}, 0, 0, 0)
	sc := NewScene(cam, nil, nil, Size(4, 4), Background(NewColor(0, 0, 0)))
	fb := Render(sc)
	black := NewColor(0, 0, 0)
	for i, c := range fb {
		if !c.Aeq(&black) {
			t.Fatalf("pixel %d: expected black background, got %+v", i, c)
		}
	}
}

// S2: single diffuse sphere lit by a white point light; center pixel's
// red channel must be positive.
func TestSceneDiffuseSpherePointLight(t *testing.T) {
	cam := NewCamera(lin.V3{}, 0, 0, 0)
	mat := Material{Kind: Diffuse, Color: NewColor(1, 1, 1)}
	sphere := NewSphere(lin.V3{X: 0, Y: 0, Z: -5}, 1, mat)
	light := NewPointLight(lin.V3{X: 0, Y: 10, Z: 0}, NewColor(1, 1, 1), 100)
	sc := NewScene(cam, []*Object{sphere}, []*Light{light}, Size(9, 9), Background(NewColor(0, 0, 0)))
	fb := Render(sc)
	center := fb[4*9+4]
	if center.X <= 0 {
		t.Errorf("expected positive red channel at center pixel, got %+v", center)
	}
}

// S3: fully reflective sphere at the origin, camera behind it facing -z;
// the center pixel should equal the skybox's +z face sample attenuated
// by the single-reflection 0.8 factor.
func TestSceneMirrorSphereSkybox(t *testing.T) {
	cam := NewCamera(lin.V3{X: 0, Y: 0, Z: 5}, 0, 0, 0)
	mat := Material{Kind: Reflective, Color: NewColor(1, 1, 1)}
	sphere := NewSphere(lin.V3{}, 1, mat)
	sc := NewScene(cam, []*Object{sphere}, nil, Size(9, 9))

	sky := NewSkybox(2, 2)
	frontColor := NewColor(0.1, 0.6, 0.9)
	for i := range sky.Faces[FaceFront] {
		sky.Faces[FaceFront][i] = frontColor
	}
	sc.Sky = sky

	fb := Render(sc)
	center := fb[4*9+4]
	want := frontColor
	want.Scale(&want, 0.8)
	if !center.Aeq(&want) {
		t.Errorf("center pixel = %+v, want %+v (front face sample attenuated by 0.8)", center, want)
	}
}

// S4: transparent sphere — Fresnel reflection+refraction weights sum to 1.
func TestSceneTransparentFresnelWeightsSumToOne(t *testing.T) {
	d := lin.V3{X: 0.3, Y: -0.2, Z: -1}
	d.Unit()
	n := lin.V3{X: 0, Y: 0, Z: 1}
	kr := fresnel(d, n, 1.5)
	kt := 1 - kr
	if sum := kr + kt; sum < 1-1e-9 || sum > 1+1e-9 {
		t.Errorf("fresnel reflection+refraction weights = %f, want 1", sum)
	}
}

// S5: quad area light over a diffuse plane; the early-out base-sample
// path and the full-sampling path must agree within 2% when unoccluded.
// The quad is small relative to its distance from p so the per-sample
// cosine term is nearly constant across the quad: a coarse grid and a
// fine grid of the same unoccluded light must then converge to the same
// Riemann-sum estimate regardless of sample count.
func TestSceneAreaLightEarlyOutMatchesFullSampling(t *testing.T) {
	p := lin.V3{X: 0, Y: 0, Z: 0}
	n := lin.V3{X: 0, Y: 1, Z: 0}
	pos := lin.V3{X: -0.5, Y: 50, Z: -0.5}
	i := lin.V3{X: 1, Y: 0, Z: 0}
	j := lin.V3{X: 0, Y: 0, Z: 1}

	fast := NewAreaLight(pos, i, j, NewColor(1, 1, 1), 1000, 2, 8)
	full := NewAreaLight(pos, i, j, NewColor(1, 1, 1), 1000, 8, 8) // baseSamples == samples makes the base grid the full grid, so its result equals full sampling.

	var objects []*Object
	gotFast := fast.getTotalIlluminance(p, n, objects)
	gotFull := full.getTotalIlluminance(p, n, objects)

	if gotFull == 0 {
		t.Fatal("expected nonzero illuminance for an unoccluded area light")
	}
	diff := (gotFast - gotFull) / gotFull
	if diff < 0 {
		diff = -diff
	}
	if diff > 0.02 {
		t.Errorf("early-out illuminance %f differs from full-sampling %f by more than 2%%", gotFast, gotFull)
	}
}

// Determinism: the same scene rendered twice with the same worker count
// produces a byte-identical framebuffer.
func TestDeterminism(t *testing.T) {
	build := func() *Scene {
		cam := NewCamera(lin.V3{X: 0, Y: 0, Z: 5}, 0, 0, 0)
		mat := Material{Kind: Diffuse, Color: NewColor(1, 0.5, 0.2)}
		sphere := NewSphere(lin.V3{}, 1, mat)
		light := NewPointLight(lin.V3{X: 5, Y: 5, Z: 5}, NewColor(1, 1, 1), 200)
		return NewScene(cam, []*Object{sphere}, []*Light{light}, Size(16, 16), Workers(3))
	}
	fb1 := Render(build())
	fb2 := Render(build())
	for i := range fb1 {
		if !fb1[i].Aeq(&fb2[i]) {
			t.Fatalf("pixel %d differs between identical renders: %+v vs %+v", i, fb1[i], fb2[i])
		}
	}
}

// Parallelism equivalence: 1 worker and N workers produce identical
// framebuffers.
func TestParallelismEquivalence(t *testing.T) {
	build := func(workers int) *Scene {
		cam := NewCamera(lin.V3{X: 0, Y: 0, Z: 5}, 0, 0, 0)
		mat := Material{Kind: Diffuse, Color: NewColor(1, 0.5, 0.2)}
		sphere := NewSphere(lin.V3{}, 1, mat)
		light := NewPointLight(lin.V3{X: 5, Y: 5, Z: 5}, NewColor(1, 1, 1), 200)
		return NewScene(cam, []*Object{sphere}, []*Light{light}, Size(16, 16), Workers(workers))
	}
	serial := Render(build(1))
	parallel := Render(build(4))
	for i := range serial {
		if !serial[i].Aeq(&parallel[i]) {
			t.Fatalf("pixel %d differs between 1-worker and 4-worker renders: %+v vs %+v", i, serial[i], parallel[i])
		}
	}
}

// Skybox: a scene of zero objects samples only the skybox.
func TestSkyboxOnlyWhenNoObjects(t *testing.T) {
	cam := NewCamera(lin.V3{}, 0, 0, 0)
	sc := NewScene(cam, nil, nil, Size(6, 6))
	sky := NewSkybox(4, 4)
	for f := range sky.Faces {
		for i := range sky.Faces[f] {
			sky.Faces[f][i] = NewColor(float64(f)/10, 0.5, 0.25)
		}
	}
	sc.Sky = sky

	fb := Render(sc)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			scale := sc.Options.scale()
			aspect := sc.Options.aspect()
			xp := (2*(float64(x)+0.5)/6 - 1) * scale * aspect
			yp := -(2*(float64(y)+0.5)/6 - 1) * scale
			_, dir := sc.Camera.getRay(xp, yp)
			want := sky.sample(dir)
			got := fb[y*6+x]
			if !got.Aeq(&want) {
				t.Fatalf("pixel (%d,%d): expected skybox sample %+v, got %+v", x, y, want, got)
			}
		}
	}
}
