package mandel

// SampleGrid is the Size × Size lattice of complex points sampled from a viewport.
// Row index follows the imaginary axis and column index the real axis, both ascending.
type SampleGrid struct {
	Size int
	Real []float64 // column values
	Imag []float64 // row values
}

// At returns the sample at row, col.
func (g SampleGrid) At(row, col int) complex128 {
	return complex(g.Real[col], g.Imag[row])
}

// BuildGrid samples v's region with v.Resolution evenly spaced values per axis,
// both endpoints included.
func BuildGrid(v Viewport) (SampleGrid, error) {
	if err := v.Validate(); err != nil {
		return SampleGrid{}, err
	}
	r := v.Region()
	return SampleGrid{
		Size: v.Resolution,
		Real: linspace(r.Xmin, r.Xmax, v.Resolution),
		Imag: linspace(r.Ymin, r.Ymax, v.Resolution),
	}, nil
}

// linspace returns num values from start to end inclusive.
// A single value is start.
func linspace(start, end float64, num int) []float64 {
	r := make([]float64, num)
	if num == 1 {
		r[0] = start
		return r
	}
	step := (end - start) / float64(num-1)
	for i := range num - 1 {
		r[i] = start + step*float64(i)
	}
	r[num-1] = end
	return r
}
