// Package piecewise evaluates monotone piecewise-linear approximations of a
// cumulative distribution function in fixed point.
//
// A Table maps a signed Q15 argument to a 16-bit CDF value. The argument is
// saturated to the outer edges of the table, the enclosing segment is found
// with a single multiply-shift bucket computation, and the result is the
// segment's base value plus the scaled offset into the segment:
//
//	ind = (BucketMul * (x - Edges[0])) >> BucketShift
//	cdf = Y[ind] + ((x - Edges[ind]) * Slopes[ind]) >> SlopeShift
//
// Tables are plain values owned by the caller. Logistic and Uniform return
// fresh copies of the built-in tables so callers can substitute or modify
// them without affecting other users.
package piecewise

import "errors"

// ErrInvalidTable indicates a table whose arrays are inconsistent or whose
// evaluation would not be monotone non-decreasing.
var ErrInvalidTable = errors.New("piecewise: invalid table")

// Table is a piecewise-linear CDF approximation over a Q15 domain.
type Table struct {
	// Edges are the segment start points in Q15, strictly increasing.
	// Inputs are saturated to [Edges[0], Edges[len-1]].
	Edges []int32

	// Slopes are the per-segment slopes, applied as
	// (x - Edges[ind]) * Slopes[ind] >> SlopeShift.
	Slopes []uint16

	// Y are the cumulative values at each segment start.
	Y []int32

	// BucketMul and BucketShift map an offset from Edges[0] to a segment
	// index without searching.
	BucketMul   int32
	BucketShift uint

	// SlopeShift is the right shift applied to the slope product.
	SlopeShift uint
}

// NewTable validates the arrays and returns a Table referencing them.
//
// The table must have at least two points, equal-length arrays, strictly
// increasing edges, non-decreasing Y capped at 65535, a bucket mapping that
// places the upper edge in the last segment, and slopes that never carry a
// segment past the next segment's base value.
func NewTable(edges []int32, slopes []uint16, y []int32, bucketMul int32, bucketShift, slopeShift uint) (*Table, error) {
	t := &Table{
		Edges:       edges,
		Slopes:      slopes,
		Y:           y,
		BucketMul:   bucketMul,
		BucketShift: bucketShift,
		SlopeShift:  slopeShift,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the invariants documented on NewTable.
func (t *Table) Validate() error {
	n := len(t.Edges)
	if n < 2 || len(t.Slopes) != n || len(t.Y) != n {
		return ErrInvalidTable
	}
	if t.BucketMul <= 0 || t.BucketShift > 30 || t.SlopeShift > 31 {
		return ErrInvalidTable
	}
	for i := 1; i < n; i++ {
		if t.Edges[i] <= t.Edges[i-1] || t.Y[i] < t.Y[i-1] {
			return ErrInvalidTable
		}
	}
	if t.Y[0] < 0 || t.Y[n-1] > 65535 {
		return ErrInvalidTable
	}
	span := int64(t.Edges[n-1]) - int64(t.Edges[0])
	if (span*int64(t.BucketMul))>>t.BucketShift != int64(n-1) {
		return ErrInvalidTable
	}
	// Every offset that buckets into segment k must stay at or above
	// Edges[k] and must not overshoot Y[k+1].
	for k := 0; k < n-1; k++ {
		lo := int64(t.Edges[k]) - int64(t.Edges[0])
		if (lo*int64(t.BucketMul))>>t.BucketShift > int64(k) {
			return ErrInvalidTable
		}
		hi := ((int64(k+1) << t.BucketShift) - 1) / int64(t.BucketMul)
		if hi > span {
			hi = span
		}
		diff := hi - lo
		if diff < 0 {
			return ErrInvalidTable
		}
		if int64(t.Y[k])+((diff*int64(t.Slopes[k]))>>t.SlopeShift) > int64(t.Y[k+1]) {
			return ErrInvalidTable
		}
	}
	return nil
}

// Evaluate returns the CDF value at the Q15 argument x.
// Arguments outside the table's domain saturate to the edge values.
func (t *Table) Evaluate(x int32) uint16 {
	last := len(t.Edges) - 1
	if x < t.Edges[0] {
		x = t.Edges[0]
	}
	if x > t.Edges[last] {
		x = t.Edges[last]
	}

	ind := int((int64(t.BucketMul) * int64(x-t.Edges[0])) >> t.BucketShift)
	if ind > last {
		ind = last
	}

	frac := uint64(x-t.Edges[ind]) * uint64(t.Slopes[ind])
	return uint16(t.Y[ind] + int32(frac>>t.SlopeShift))
}

// Len returns the number of breakpoints.
func (t *Table) Len() int {
	return len(t.Edges)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := *t
	c.Edges = append([]int32(nil), t.Edges...)
	c.Slopes = append([]uint16(nil), t.Slopes...)
	c.Y = append([]int32(nil), t.Y...)
	return &c
}
