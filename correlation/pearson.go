// Package correlation is the out-of-scope "correlation analytics"
// collaborator: a Pearson coefficient scan across two series already held
// by a tsz.Registry. It adds no storage of its own — every call re-reads
// both series through Registry.Query.
package correlation

import (
	"errors"
	"math"

	"github.com/nyxcore/tsz"
)

// ErrNoOverlap is returned when the two series share no timestamp in
// [lo, hi], so no correlation coefficient can be computed.
var ErrNoOverlap = errors.New("correlation: no overlapping timestamps")

// Pearson aligns the samples of keyA and keyB within [lo, hi] by exact
// timestamp match and returns their Pearson correlation coefficient r
// along with n, the number of aligned pairs used. Samples present in only
// one of the two series at a given timestamp are ignored.
func Pearson(reg *tsz.Registry, keyA, keyB []byte, lo, hi uint64) (r float64, n int, err error) {
	byTS := make(map[uint64]float64)
	for ts, v := range reg.Query(keyA, lo, hi) {
		byTS[ts] = v
	}

	var a, b []float64
	for ts, vb := range reg.Query(keyB, lo, hi) {
		va, ok := byTS[ts]
		if !ok {
			continue
		}

		a = append(a, va)
		b = append(b, vb)
	}

	if len(a) == 0 {
		return 0, 0, ErrNoOverlap
	}

	return pearson(a, b), len(a), nil
}

// pearson computes the Pearson product-moment correlation coefficient of
// two equal-length, already-aligned samples.
func pearson(a, b []float64) float64 {
	n := float64(len(a))

	var sumA, sumB, sumAB, sumA2, sumB2 float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
		sumAB += a[i] * b[i]
		sumA2 += a[i] * a[i]
		sumB2 += b[i] * b[i]
	}

	num := n*sumAB - sumA*sumB
	den := math.Sqrt((n*sumA2 - sumA*sumA) * (n*sumB2 - sumB*sumB))
	if den == 0 {
		return 0
	}

	return num / den
}
