package mandel

// IterationMatrix holds one escape time per sample, with the same shape and
// indexing as the SampleGrid it was computed from. Counts is row-major.
type IterationMatrix struct {
	Size   int
	Counts []int
}

func newIterationMatrix(size int) IterationMatrix {
	return IterationMatrix{Size: size, Counts: make([]int, size*size)}
}

// At returns the escape time stored at row, col.
func (m IterationMatrix) At(row, col int) int {
	return m.Counts[row*m.Size+col]
}

// Row returns a view of one matrix row. It must not be modified.
func (m IterationMatrix) Row(row int) []int {
	return m.Counts[row*m.Size : (row+1)*m.Size]
}

// EscapeTime iterates z = z*z + c from z = 0 and returns the index of the
// first iteration after which |z| exceeds radius. Points that stay within
// radius for maxIter iterations get maxIter.
//
// The test runs on the updated z, so |c| > radius escapes at 0.
func EscapeTime(c complex128, maxIter int, radius float64) int {
	r2 := radius * radius
	cr, ci := real(c), imag(c)
	var zr, zi float64
	// float64 conversions round each product so no GOARCH fuses them into FMAs
	// and the counts stay identical across platforms.
	for i := 0; i < maxIter; i++ {
		zr, zi = float64(zr*zr)-float64(zi*zi)+cr, float64(2*zr*zi)+ci
		// squared modulus keeps the threshold decision of |z| > radius without the sqrt
		if float64(zr*zr)+float64(zi*zi) > r2 {
			return i
		}
	}
	return maxIter
}

// ComputeIterations evaluates every point of grid sequentially.
func ComputeIterations(grid SampleGrid, maxIter int, radius float64) IterationMatrix {
	m := newIterationMatrix(grid.Size)
	for row := range grid.Size {
		evalRow(grid, m, row, maxIter, radius)
	}
	return m
}

func evalRow(grid SampleGrid, m IterationMatrix, row, maxIter int, radius float64) {
	out := m.Row(row)
	for col := range grid.Size {
		out[col] = EscapeTime(grid.At(row, col), maxIter, radius)
	}
}
