// Copyright © 2024 Galvanized Logic Inc.

package raytrace

import (
	"math"

	"github.com/lumenray/raytrace/math/lin"
	"github.com/lumenray/raytrace/physics"
)

// IntersectInfo is the result of tracing a ray against a scene's objects.
// tNear starts at +Inf; hitObject nil means miss.
type IntersectInfo struct {
	hitObject *Object
	tNear     float64
	triIdx    int
	u, v      float64
}

// trace iterates objects, calling the variant-appropriate intersector and
// retaining the minimum-t hit. Shadow rays skip objects whose material is
// Transparent — a deliberate artistic choice: transparent objects cast no
// shadows.
func trace(r *physics.Ray, objects []*Object) IntersectInfo {
	physics.CountRayCast()
	info := IntersectInfo{tNear: math.Inf(1), triIdx: -1}
	for _, o := range objects {
		if r.Kind == physics.Shadow && o.Material.Kind == Transparent {
			continue
		}
		switch o.Kind {
		case MeshObject:
			if hit, t, triIdx, u, v := o.intersectMesh(r); hit && t < info.tNear {
				info = IntersectInfo{hitObject: o, tNear: t, triIdx: triIdx, u: u, v: v}
			}
		default:
			if hit, t, u, v := o.intersectObject(r.Origin, r.Dir); hit && t < info.tNear {
				info = IntersectInfo{hitObject: o, tNear: t, u: u, v: v}
			}
		}
	}
	return info
}

// castRay is the recursive shading dispatcher: primary hit, then material
// branch, then bounded recursion for reflection/refraction, per spec.md §4.5.
func castRay(r *physics.Ray, sc *Scene, depth int) Color {
	if depth > sc.Options.maxRayDepth {
		return sc.skybox(r.Dir)
	}
	info := trace(r, sc.Objects)
	if info.hitObject == nil {
		return sc.skybox(r.Dir)
	}

	hitPoint := r.At(info.tNear)
	normal, texU, texV := info.hitObject.getSurfaceData(hitPoint, info.triIdx, info.u, info.v)
	mat := &info.hitObject.Material

	switch mat.Kind {
	case Reflective:
		biased := biasPoint(hitPoint, normal, sc.Options.bias, true)
		rd := reflect(r.Dir, normal)
		reflRay := physics.NewRay(biased, rd, physics.Primary)
		color := castRay(&reflRay, sc, depth+1)
		color.Scale(&color, 0.8)
		return color

	case Transparent:
		kr := fresnel(r.Dir, normal, mat.IndexOfRefraction)
		var color Color
		if kr < 1 {
			rd := refract(r.Dir, normal, mat.IndexOfRefraction)
			origin := biasPoint(hitPoint, normal, sc.Options.bias, false)
			refrRay := physics.NewRay(origin, rd, physics.Primary)
			refrColor := castRay(&refrRay, sc, depth+1)
			refrColor.Scale(&refrColor, 1-kr)
			color.Add(&color, &refrColor)
		}
		rd := reflect(r.Dir, normal)
		origin := biasPoint(hitPoint, normal, sc.Options.bias, true)
		reflRay := physics.NewRay(origin, rd, physics.Primary)
		reflColor := castRay(&reflRay, sc, depth+1)
		reflColor.Scale(&reflColor, kr)
		color.Add(&color, &reflColor)
		return color

	case Phong:
		return shadePhong(sc, mat, hitPoint, normal, texU, texV, r.Dir)

	default: // Diffuse
		return shadeDiffuse(sc, mat, hitPoint, normal, texU, texV)
	}
}

// biasPoint offsets a hit point along the normal to avoid self-intersection.
// toward=true biases along +normal (reflection/shadow side); false biases
// along -normal (refraction's transmitted side).
func biasPoint(p, n lin.V3, bias float64, toward bool) lin.V3 {
	if !toward {
		bias = -bias
	}
	off := n
	off.Scale(&off, bias)
	out := lin.V3{}
	out.Add(&p, &off)
	return out
}

func shadeDiffuse(sc *Scene, mat *Material, hitPoint, normal lin.V3, texU, texV float64) Color {
	var color Color
	biased := biasPoint(hitPoint, normal, sc.Options.bias, true)
	patt := mat.pattern(texU, texV)
	for _, l := range sc.Lights {
		if l.Kind == AreaLight {
			illum := l.getTotalIlluminance(biased, normal, sc.Objects)
			contrib := mat.Color
			contrib.Mult(&contrib, &l.Color)
			contrib.Scale(&contrib, illum*patt)
			color.Add(&color, &contrib)
			continue
		}
		lightDir, intensity, dist := lightSample(l, hitPoint)
		neg := lightDir
		neg.Scale(&neg, -1)
		vis := 0.0
		if shadowVisible(biased, neg, dist, sc.Objects) {
			vis = 1
		}
		cos := normal.Dot(&neg)
		if cos < 0 {
			cos = 0
		}
		contrib := mat.Color
		contrib.Mult(&contrib, &intensity)
		contrib.Scale(&contrib, vis*cos*patt)
		color.Add(&color, &contrib)
	}
	return color
}

func shadePhong(sc *Scene, mat *Material, hitPoint, normal lin.V3, texU, texV float64, rayDir lin.V3) Color {
	patt := mat.pattern(texU, texV)
	ambient := mat.Color
	ambient.Scale(&ambient, mat.Ambient*patt)
	diffuse, specular := Color{}, Color{}
	biased := biasPoint(hitPoint, normal, sc.Options.bias, true)

	for _, l := range sc.Lights {
		if l.Kind == AreaLight {
			continue // area lights only contribute via the Diffuse branch per spec.md §4.5.
		}
		lightDir, intensity, dist := lightSample(l, hitPoint)
		neg := lightDir
		neg.Scale(&neg, -1)
		vis := 0.0
		if shadowVisible(biased, neg, dist, sc.Objects) {
			vis = 1
		}
		cos := normal.Dot(&neg)
		if cos < 0 {
			cos = 0
		}
		d := intensity
		d.Scale(&d, vis*cos)
		diffuse.Add(&diffuse, &d)

		refl := reflect(lightDir, normal)
		negRay := rayDir
		negRay.Scale(&negRay, -1)
		spec := refl.Dot(&negRay)
		if spec < 0 {
			spec = 0
		}
		spec = math.Pow(spec, mat.SpecularExponent)
		s := intensity
		s.Scale(&s, spec*vis)
		specular.Add(&specular, &s)
	}

	diffuse.Scale(&diffuse, mat.DiffuseCoeff)
	specular.Scale(&specular, mat.Specular)
	color := ambient
	color.Add(&color, &diffuse)
	color.Add(&color, &specular)
	return color
}

// lightSample returns (direction the light travels when it reaches p,
// intensity·color at p, max shadow-ray distance) for Distant/Point lights.
func lightSample(l *Light, p lin.V3) (lightDir lin.V3, intensity Color, dist float64) {
	if l.Kind == DistantLight {
		intensity = l.Color
		intensity.Scale(&intensity, l.Intensity)
		return l.Dir, intensity, math.Inf(1)
	}
	diff := lin.V3{}
	diff.Sub(&p, &l.Pos)
	dist = diff.Len()
	lightDir = diff
	lightDir.Unit()
	falloff := 4 * math.Pi * dist * dist
	intensity = l.Color
	intensity.Scale(&intensity, l.Intensity/falloff)
	return lightDir, intensity, dist
}

// shadowVisible casts a shadow ray from origin in dir and returns true if
// nothing blocks it before maxDist (spec.md §4.6's "same tNear" invariant:
// a hit beyond the light itself does not occlude).
func shadowVisible(origin, dir lin.V3, maxDist float64, objects []*Object) bool {
	if dir.LenSqr() < lin.Epsilon {
		return true
	}
	r := physics.NewRay(origin, dir, physics.Shadow)
	info := trace(&r, objects)
	return info.hitObject == nil || info.tNear >= maxDist-1e-6
}

// reflect computes d - 2(d.n)n.
func reflect(d, n lin.V3) lin.V3 {
	dn := d.Dot(&n)
	out := n
	out.Scale(&out, 2*dn)
	r := lin.V3{}
	r.Sub(&d, &out)
	return r
}

// refract implements Snell's law with relative index depending on whether
// the ray is entering (d.n < 0) or exiting the surface. Total internal
// reflection returns the zero vector; callers gate this via fresnel's kr.
func refract(d, n lin.V3, eta float64) lin.V3 {
	cosi := clampUnit(d.Dot(&n))
	etai, etat := 1.0, eta
	nrm := n
	if cosi < 0 {
		cosi = -cosi
	} else {
		etai, etat = etat, etai
		nrm.Scale(&nrm, -1)
	}
	relEta := etai / etat
	k := 1 - relEta*relEta*(1-cosi*cosi)
	if k < 0 {
		return lin.V3{} // total internal reflection.
	}
	term1 := d
	term1.Scale(&term1, relEta)
	term2 := nrm
	term2.Scale(&term2, relEta*cosi-math.Sqrt(k))
	out := lin.V3{}
	out.Add(&term1, &term2)
	return out
}

// fresnel computes the Fresnel reflectance kr using the closed-form
// average of s- and p-polarization reflectances (no Schlick approximation),
// returning 1 on total internal reflection.
func fresnel(d, n lin.V3, eta float64) float64 {
	cosi := clampUnit(d.Dot(&n))
	etai, etat := 1.0, eta
	if cosi > 0 {
		etai, etat = etat, etai
	}
	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1 // total internal reflection.
	}
	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := ((etat * cosi) - (etai * cost)) / ((etat * cosi) + (etai * cost))
	rp := ((etai * cosi) - (etat * cost)) / ((etai * cosi) + (etat * cost))
	return (rs*rs + rp*rp) / 2
}

func clampUnit(v float64) float64 { return lin.Clamp(v, -1, 1) }
