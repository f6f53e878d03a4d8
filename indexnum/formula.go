package indexnum

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Formula names an index number formula.
type Formula string

// Weighted formulas.
const (
	FormulaLaspeyres         Formula = "laspeyres"
	FormulaPaasche           Formula = "paasche"
	FormulaFisher            Formula = "fisher"
	FormulaTornqvist         Formula = "tornqvist"
	FormulaWalsh             Formula = "walsh"
	FormulaGeometric         Formula = "geometric"
	FormulaMarshallEdgeworth Formula = "marshall-edgeworth"
)

// Unweighted formulas.
const (
	FormulaCarli         Formula = "carli"
	FormulaDutot         Formula = "dutot"
	FormulaJevons        Formula = "jevons"
	FormulaHarmonicMean  Formula = "harmonic-mean"
	FormulaCSWD          Formula = "cswd"
	FormulaHarmonicRatio Formula = "harmonic-ratio"
)

// relative is the index of period 1 relative to period 0, one element per
// basket item. Unweighted formulas ignore q0 and q1.
type relative func(p0, q0, p1, q1 []float64) float64

type formula struct {
	weighted bool
	rel      relative
}

var formulas = map[Formula]formula{
	FormulaLaspeyres:         {weighted: true, rel: laspeyres},
	FormulaPaasche:           {weighted: true, rel: paasche},
	FormulaFisher:            {weighted: true, rel: fisher},
	FormulaTornqvist:         {weighted: true, rel: tornqvist},
	FormulaWalsh:             {weighted: true, rel: walsh},
	FormulaGeometric:         {weighted: true, rel: geometric},
	FormulaMarshallEdgeworth: {weighted: true, rel: marshallEdgeworth},

	FormulaCarli:         {rel: carli},
	FormulaDutot:         {rel: dutot},
	FormulaJevons:        {rel: jevons},
	FormulaHarmonicMean:  {rel: harmonicMean},
	FormulaCSWD:          {rel: cswd},
	FormulaHarmonicRatio: {rel: harmonicRatio},
}

// ParseFormula accepts a formula name in any case, with '_' or ' ' in place
// of '-'. "torn" and "me" are short for Törnqvist and Marshall-Edgeworth.
func ParseFormula(s string) (Formula, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "-", " ", "-", "ö", "o").Replace(name)
	switch name {
	case "torn":
		name = string(FormulaTornqvist)
	case "me":
		name = string(FormulaMarshallEdgeworth)
	}
	if _, ok := formulas[Formula(name)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormula, s)
	}
	return Formula(name), nil
}

// Formulas lists the supported formulas in name order.
func Formulas() []Formula {
	out := make([]Formula, 0, len(formulas))
	for f := range formulas {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Weighted reports whether f combines prices with quantities.
func (f Formula) Weighted() bool {
	return formulas[f].weighted
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func laspeyres(p0, q0, p1, _ []float64) float64 {
	return dot(p1, q0) / dot(p0, q0)
}

func paasche(p0, _, p1, q1 []float64) float64 {
	return dot(p1, q1) / dot(p0, q1)
}

func fisher(p0, q0, p1, q1 []float64) float64 {
	return math.Sqrt(laspeyres(p0, q0, p1, q1) * paasche(p0, q0, p1, q1))
}

// tornqvist weights the log price relatives by the average of the two
// periods' expenditure shares.
func tornqvist(p0, q0, p1, q1 []float64) float64 {
	v0, v1 := dot(p0, q0), dot(p1, q1)
	var s float64
	for i := range p0 {
		w := (p0[i]*q0[i]/v0 + p1[i]*q1[i]/v1) / 2
		s += w * math.Log(p1[i]/p0[i])
	}
	return math.Exp(s)
}

func walsh(p0, q0, p1, q1 []float64) float64 {
	var num, den float64
	for i := range p0 {
		w := math.Sqrt(q0[i] * q1[i])
		num += p1[i] * w
		den += p0[i] * w
	}
	return num / den
}

// geometric weights the log price relatives by the earlier period's
// expenditure shares.
func geometric(p0, q0, p1, _ []float64) float64 {
	v0 := dot(p0, q0)
	var s float64
	for i := range p0 {
		s += p0[i] * q0[i] / v0 * math.Log(p1[i]/p0[i])
	}
	return math.Exp(s)
}

func marshallEdgeworth(p0, q0, p1, q1 []float64) float64 {
	var num, den float64
	for i := range p0 {
		w := q0[i] + q1[i]
		num += p1[i] * w
		den += p0[i] * w
	}
	return num / den
}

func carli(p0, _, p1, _ []float64) float64 {
	var s float64
	for i := range p0 {
		s += p1[i] / p0[i]
	}
	return s / float64(len(p0))
}

func dutot(p0, _, p1, _ []float64) float64 {
	var s0, s1 float64
	for i := range p0 {
		s0 += p0[i]
		s1 += p1[i]
	}
	return s1 / s0
}

func jevons(p0, _, p1, _ []float64) float64 {
	var s float64
	for i := range p0 {
		s += math.Log(p1[i] / p0[i])
	}
	return math.Exp(s / float64(len(p0)))
}

func harmonicMean(p0, _, p1, _ []float64) float64 {
	var s float64
	for i := range p0 {
		s += p0[i] / p1[i]
	}
	return float64(len(p0)) / s
}

// cswd is the geometric mean of the Carli and harmonic mean indexes.
func cswd(p0, _, p1, _ []float64) float64 {
	var up, down float64
	for i := range p0 {
		up += p1[i] / p0[i]
		down += p0[i] / p1[i]
	}
	return math.Sqrt(up / down)
}

func harmonicRatio(p0, _, p1, _ []float64) float64 {
	var s0, s1 float64
	for i := range p0 {
		s0 += 1 / p0[i]
		s1 += 1 / p1[i]
	}
	return s0 / s1
}
