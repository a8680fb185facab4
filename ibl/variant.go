package ibl

import (
	"fmt"
	"math"
)

// Pi as used by the baker. Both lut variants were generated with this
// truncated value, changing it shifts every sample direction.
const Pi float32 = 3.14159

type Visibility int

const (
	// height correlated Smith, 0.5 / (visV + visL)
	VisibilityCorrelated = Visibility(iota)
	// separable Smith, 1 / ((n.v + sqrt(...)) * (n.l + sqrt(...)))
	VisibilitySeparable
)

func (v Visibility) String() string {
	switch v {
	case VisibilityCorrelated:
		return "correlated"
	case VisibilitySeparable:
		return "separable"
	}
	return fmt.Sprintf("Visibility(%d)", int(v))
}

// Variant configures the integrator and the table it produces.
// The two predefined variants are not interchangeable, each matches
// a shader that was tuned against its output.
type Variant struct {
	Name string
	// Prefix for output file names.
	Prefix string
	// When 0 the table columns are roughness, otherwise they are gloss and
	// roughness = (1 - gloss)^GlossExponent.
	GlossExponent float32
	// The GGX distribution width m2 = roughness^AlphaExponent.
	AlphaExponent int
	Visibility    Visibility
	// Divide the accumulated terms by the number of samples with n.l > 0
	// instead of the total sample count.
	NormalizeByValidCount bool
	// Also produce the two channel half float table.
	EmitHalf bool
	// Write the float table with the pre-DX10 DDS header.
	LegacyContainer bool
}

var VariantRoughness = Variant{
	Name:                  "roughness",
	Prefix:                "integrateDFG",
	GlossExponent:         0,
	AlphaExponent:         4,
	Visibility:            VisibilityCorrelated,
	NormalizeByValidCount: true,
	EmitHalf:              true,
}

var VariantGloss = Variant{
	Name:                  "gloss",
	Prefix:                "integrateDFGGloss",
	GlossExponent:         4,
	AlphaExponent:         2,
	Visibility:            VisibilitySeparable,
	NormalizeByValidCount: false,
	LegacyContainer:       true,
}

var Variants = []Variant{VariantRoughness, VariantGloss}

func (v Variant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variant has no name")
	}
	if v.GlossExponent < 0 {
		return fmt.Errorf("variant %s: gloss exponent %v is negative", v.Name, v.GlossExponent)
	}
	if v.AlphaExponent <= 0 {
		return fmt.Errorf("variant %s: alpha exponent %d must be positive", v.Name, v.AlphaExponent)
	}
	if v.Visibility != VisibilityCorrelated && v.Visibility != VisibilitySeparable {
		return fmt.Errorf("variant %s: unknown visibility %v", v.Name, v.Visibility)
	}
	return nil
}

// AxisName is what the table columns represent.
func (v Variant) AxisName() string {
	if v.GlossExponent > 0 {
		return "gloss"
	}
	return "roughness"
}

// Roughness maps a column coordinate in (0, 1) to roughness.
func (v Variant) Roughness(t float32) float32 {
	if v.GlossExponent > 0 {
		return float32(math.Pow(float64(1.0-t), float64(v.GlossExponent)))
	}
	return t
}

// distribution width, written out for the common exponents to match
// tables generated as m = r*r, m2 = m*m
func (v Variant) alpha2(roughness float32) float32 {
	switch v.AlphaExponent {
	case 4:
		m := roughness * roughness
		return m * m
	case 2:
		return roughness * roughness
	case 1:
		return roughness
	default:
		return float32(math.Pow(float64(roughness), float64(v.AlphaExponent)))
	}
}
