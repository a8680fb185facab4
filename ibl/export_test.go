package ibl

// these functions are only exported when running tests

var HammersleySequence = generateHammersleySequence
var IntegrateSamples = integrate
var ImportanceSampleGGX = importanceSampleGGX
var VisibilityTerm = visibility
var Schlick = schlick

func (v Variant) Alpha2(roughness float32) float32 {
	return v.alpha2(roughness)
}
