package ibl

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CellResult holds the split sum terms of one table cell, F0 * Scale + Bias.
type CellResult struct {
	Scale float32
	Bias  float32
	// samples with n.l > 0
	Valid int
}

// Degenerate reports a cell without a single contributing sample.
func (r CellResult) Degenerate() bool {
	return r.Valid == 0
}

// Integrate evaluates the specular BRDF integral for a view angle cosine and
// roughness with n GGX importance samples.
func Integrate(v Variant, ndotv, roughness float32, n int) CellResult {
	return integrate(v, ndotv, roughness, generateHammersleySequence(n))
}

func integrate(v Variant, ndotv, roughness float32, samples [][2]float32) CellResult {
	m2 := v.alpha2(roughness)

	// the view vector lies in the x-z plane, z is the normal
	view := mgl32.Vec3{math32.Sqrt(1.0 - ndotv*ndotv), 0.0, ndotv}

	var res CellResult
	for _, s := range samples {
		h := importanceSampleGGX(s[0], s[1], m2)

		vdh := view.Dot(h)
		l := h.Mul(2.0 * vdh).Sub(view)

		ndotl := math32.Max(l[2], 0.0)
		ndoth := math32.Max(h[2], 0.0)
		vdoth := math32.Max(vdh, 0.0)

		if ndotl <= 0.0 {
			continue
		}

		vis := visibility(v.Visibility, m2, ndotv, ndotl)
		ndotlVisPDF := ndotl * vis * (4.0 * vdoth / ndoth)
		fc := schlick(vdoth)

		res.Scale += ndotlVisPDF * (1.0 - fc)
		res.Bias += ndotlVisPDF * fc
		res.Valid++
	}

	// a cell with no valid sample yields NaN here, the first sample points
	// along the normal so that does not happen for ndotv > 0
	denom := float32(len(samples))
	if v.NormalizeByValidCount {
		denom = float32(res.Valid)
	}
	res.Scale /= denom
	res.Bias /= denom

	return res
}

// half vector around +z for the sample (e1, e2)
func importanceSampleGGX(e1, e2 float32, m2 float32) mgl32.Vec3 {
	phi := 2.0 * Pi * e1
	cosTheta := math32.Sqrt((1.0 - e2) / (1.0 + (m2-1.0)*e2))
	sinTheta := math32.Sqrt(1.0 - cosTheta*cosTheta)

	return mgl32.Vec3{
		sinTheta * float32(math.Cos(float64(phi))),
		sinTheta * float32(math.Sin(float64(phi))),
		cosTheta,
	}
}

// Fresnel weight (1 - v.h)^5. Pow and the trig above go through float64 so
// the tables match ones generated with the C library powf, sinf and cosf.
func schlick(vdoth float32) float32 {
	return float32(math.Pow(float64(1.0-vdoth), 5.0))
}

// Smith visibility G / (4 n.l n.v). The two forms are not bit identical.
func visibility(form Visibility, m2, ndotv, ndotl float32) float32 {
	switch form {
	case VisibilitySeparable:
		visV := ndotv + math32.Sqrt(ndotv*(ndotv-ndotv*m2)+m2)
		visL := ndotl + math32.Sqrt(ndotl*(ndotl-ndotl*m2)+m2)
		return 1.0 / (visV * visL)
	default:
		visV := ndotl * math32.Sqrt(ndotv*(ndotv-ndotv*m2)+m2)
		visL := ndotv * math32.Sqrt(ndotl*(ndotl-ndotl*m2)+m2)
		return 0.5 / (visV + visL)
	}
}
