package lyra2

import "fmt"

const (
	// minRows is the number of rows the bootstrap always writes (rows 0
	// and 1).
	minRows = 2

	// maxMatrixWords bounds the slab at 2^48 bytes, the largest heap
	// allocation the Go runtime accepts on 64-bit platforms.
	maxMatrixWords = 1 << 45
)

// matrix is the Lyra2 memory matrix: nRows rows of nCols blocks, stored in
// one contiguous slab.  A matrix belongs to exactly one Calculate call.
type matrix struct {
	rows  [][]uint64
	nCols int
}

// matrixRows returns the number of rows actually allocated for nRows.
func matrixRows(nRows uint64) uint64 {
	if nRows < minRows {
		return minRows
	}
	return nRows
}

// newMatrix allocates a zeroed matrix.  Sizes that cannot be addressed as a
// Go slice are reported instead of panicking in make.
func newMatrix(nRows, nCols uint64) (*matrix, error) {
	rows := matrixRows(nRows)
	maxWords := uint64(^uint(0)>>1) / 8
	if maxWords > maxMatrixWords {
		maxWords = maxMatrixWords
	}
	if nCols > maxWords/BlockLenInt64 {
		return nil, makeError(ErrMatrixTooLarge,
			fmt.Sprintf("%d columns do not fit in memory", nCols))
	}
	rowLen := nCols * BlockLenInt64
	if rows > maxWords/rowLen {
		return nil, makeError(ErrMatrixTooLarge,
			fmt.Sprintf("%dx%d matrix does not fit in memory", rows, nCols))
	}

	whole := make([]uint64, rows*rowLen)
	m := &matrix{
		rows:  make([][]uint64, rows),
		nCols: int(nCols),
	}
	for i := range m.rows {
		start := uint64(i) * rowLen
		m.rows[i] = whole[start : start+rowLen : start+rowLen]
	}
	return m, nil
}

// row returns row i.
func (m *matrix) row(i uint64) []uint64 {
	return m.rows[i]
}

// numRows returns the number of allocated rows.
func (m *matrix) numRows() uint64 {
	return uint64(len(m.rows))
}
