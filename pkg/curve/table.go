package curve

import "math/big"

const (
	// TableRows is the number of byte positions in a 256-bit scalar.
	TableRows = 32

	// TableCols is the number of entries per byte position.
	TableCols = 256
)

// Table holds the fixed-base precomputation for G: entry 256*i + j is
// (j+1) * 256^i * G. The last column of each row equals the base of the
// next row and is never read by ScalarBaseMult.
//
// A Table is immutable after NewTable returns and safe for concurrent use.
type Table struct {
	points []Point
}

// NewTable builds the 32x256 table in projective coordinates and reduces
// every entry to affine form with a single batched inversion.
func NewTable() *Table {
	proj := make([]ProjectivePoint, TableRows*TableCols)
	base := Generator().Projective()
	for i := 0; i < TableRows; i++ {
		cur := base
		for j := 0; j < TableCols; j++ {
			proj[i*TableCols+j] = cur
			cur = Add(cur, base)
		}
		// 256 * base, already stored in the last column.
		base = proj[i*TableCols+TableCols-1]
	}
	return &Table{points: BatchToAffine(proj)}
}

// Entry returns a copy of (col+1) * 256^row * G.
func (t *Table) Entry(row, col int) Point {
	return t.points[row*TableCols+col]
}

// ScalarBaseMult returns k*G. k is reduced modulo the group order; zero
// yields the identity. Every non-zero byte of k costs one mixed addition.
func (t *Table) ScalarBaseMult(k *big.Int) Point {
	var buf [TableRows]byte
	s := k
	if k.Sign() < 0 || k.Cmp(Order) >= 0 {
		s = new(big.Int).Mod(k, Order)
	}
	s.FillBytes(buf[:])

	acc := ProjectivePoint{}
	for idx, v := range buf {
		if v == 0 {
			continue
		}
		row := TableRows - 1 - idx
		acc = AddMixed(acc, t.points[row*TableCols+int(v)-1])
	}
	return acc.ToAffine()
}
