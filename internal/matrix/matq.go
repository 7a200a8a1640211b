// Package matrix provides dense matrices of exact rationals and the
// fraction-free determinant the polynomial engine needs for Sylvester
// resultants. Entries are stored row-major.
package matrix

import (
	"fmt"

	"symmetrica/internal/arith"
)

// MatQ is a dense rows x cols matrix over arith.Q.
type MatQ struct {
	rows, cols int
	data       []arith.Q
}

// New builds a matrix from row-major entries. The entry count must equal
// rows*cols; anything else is a programming error.
func New(rows, cols int, entries []arith.Q) *MatQ {
	if len(entries) != rows*cols {
		panic(fmt.Sprintf("matrix: %d entries for %dx%d matrix", len(entries), rows, cols))
	}
	data := make([]arith.Q, len(entries))
	copy(data, entries)
	return &MatQ{rows: rows, cols: cols, data: data}
}

// Zero builds a rows x cols matrix of zeros.
func Zero(rows, cols int) *MatQ {
	data := make([]arith.Q, rows*cols)
	for i := range data {
		data[i] = arith.Zero()
	}
	return &MatQ{rows: rows, cols: cols, data: data}
}

// Identity builds the n x n identity matrix.
func Identity(n int) *MatQ {
	m := Zero(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, arith.One())
	}
	return m
}

// Rows returns the row count.
func (m *MatQ) Rows() int { return m.rows }

// Cols returns the column count.
func (m *MatQ) Cols() int { return m.cols }

// IsSquare reports whether the matrix is square.
func (m *MatQ) IsSquare() bool { return m.rows == m.cols }

// At returns the entry at (i, j).
func (m *MatQ) At(i, j int) arith.Q { return m.data[i*m.cols+j] }

// Set assigns the entry at (i, j).
func (m *MatQ) Set(i, j int, v arith.Q) { m.data[i*m.cols+j] = v }

// Clone returns a deep copy.
func (m *MatQ) Clone() *MatQ {
	data := make([]arith.Q, len(m.data))
	copy(data, m.data)
	return &MatQ{rows: m.rows, cols: m.cols, data: data}
}

// DetBareiss computes the determinant by Bareiss fraction-free elimination
// with row pivoting. Every division in the Bareiss recurrence is exact, so
// intermediate values stay rational without uncontrolled growth of
// denominators. Returns false for non-square matrices or when the exact
// arithmetic saturates.
func (m *MatQ) DetBareiss() (arith.Q, bool) {
	if !m.IsSquare() {
		return arith.Q{}, false
	}
	n := m.rows
	if n == 0 {
		return arith.One(), true
	}
	w := m.Clone()
	sign := 1
	prev := arith.One()
	for k := 0; k < n-1; k++ {
		// Pivot: find a non-zero entry in column k at or below row k.
		pivot := -1
		for i := k; i < n; i++ {
			if !w.At(i, k).IsZero() {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			return arith.Zero(), true
		}
		if pivot != k {
			w.swapRows(pivot, k)
			sign = -sign
		}
		akk := w.At(k, k)
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				// Bareiss: a[i][j] = (a[i][j]*a[k][k] - a[i][k]*a[k][j]) / prev
				num := arith.Sub(
					arith.Mul(w.At(i, j), akk),
					arith.Mul(w.At(i, k), w.At(k, j)),
				)
				if !num.IsValid() {
					return arith.Q{}, false
				}
				v := arith.Div(num, prev)
				if !v.IsValid() {
					return arith.Q{}, false
				}
				w.Set(i, j, v)
			}
			w.Set(i, k, arith.Zero())
		}
		prev = akk
	}
	det := w.At(n-1, n-1)
	if !det.IsValid() {
		return arith.Q{}, false
	}
	if sign < 0 {
		det = arith.Neg(det)
	}
	return det, true
}

func (m *MatQ) swapRows(a, b int) {
	for j := 0; j < m.cols; j++ {
		va, vb := m.At(a, j), m.At(b, j)
		m.Set(a, j, vb)
		m.Set(b, j, va)
	}
}
