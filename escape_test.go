package mandel

import (
	"testing"
)

func TestEscapeTimeKnownPoints(t *testing.T) {
	tests := []struct {
		name    string
		c       complex128
		maxIter int
		radius  float64
		want    int
	}{
		{"origin stays at zero", 0, 100, 2, 100},
		{"origin with large cap", 0, 10000, 2, 10000},
		{"far point escapes on first update", 10, 50, 2, 0},
		{"minus one cycles", -1, 100, 2, 100},
		{"one: 1, 2, 5", 1, 50, 2, 2},
		{"i: cycles between -1+i and -i", 1i, 100, 2, 100},
		{"minus two stays on the boundary", -2, 100, 2, 100},
		{"just outside the radius", 2.0001, 10, 2, 0},
		{"zero cap", 1, 0, 2, 0},
		{"negative cap", 1, -5, 2, -5},
		{"zero radius escapes immediately", 0.1, 10, 0, 0},
		{"zero radius keeps the origin", 0, 10, 0, 10},
		{"larger radius delays escape", 1, 50, 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeTime(tt.c, tt.maxIter, tt.radius); got != tt.want {
				t.Errorf("EscapeTime(%v, %d, %v) = %d, want %d", tt.c, tt.maxIter, tt.radius, got, tt.want)
			}
		})
	}
}

func TestEscapeTimeOneBelowCap(t *testing.T) {
	for n := 4; n < 20; n++ {
		if got := EscapeTime(1, n, 2); got >= n {
			t.Errorf("EscapeTime(1, %d, 2) = %d, want below the cap", n, got)
		}
	}
}

func TestEscapeTimeHugeValues(t *testing.T) {
	// no overflow past the escape check
	if got := EscapeTime(complex(1e300, 1e300), 100, 2); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := EscapeTime(-2.1, 1000, 2); got >= 1000 {
		t.Errorf("-2.1 reported bounded")
	}
}

func TestComputeIterations(t *testing.T) {
	v := DefaultViewport()
	v.Resolution = 41
	grid, err := BuildGrid(v)
	if err != nil {
		t.Fatal(err)
	}

	m := ComputeIterations(grid, v.MaxIterations, v.EscapeRadius)
	if m.Size != 41 || len(m.Counts) != 41*41 {
		t.Fatalf("matrix size %d with %d counts", m.Size, len(m.Counts))
	}
	for row := range m.Size {
		for col := range m.Size {
			got := m.At(row, col)
			if got < 0 || got > v.MaxIterations {
				t.Fatalf("count %d at (%d, %d) outside [0, %d]", got, row, col, v.MaxIterations)
			}
			if want := EscapeTime(grid.At(row, col), v.MaxIterations, v.EscapeRadius); got != want {
				t.Fatalf("count at (%d, %d) = %d, want %d", row, col, got, want)
			}
		}
	}

	// the center sample is -0.5+0i, inside the main cardioid
	if got := m.At(20, 20); got != v.MaxIterations {
		t.Errorf("center count = %d, want %d", got, v.MaxIterations)
	}
	// the corner -2.25-1.5i is far outside
	if got := m.At(0, 0); got != 0 {
		t.Errorf("corner count = %d, want 0", got)
	}
}

func TestComputeIterationsDeterministic(t *testing.T) {
	v := SeahorseValley
	v.Resolution = 32
	v.MaxIterations = 300

	grid, err := BuildGrid(v)
	if err != nil {
		t.Fatal(err)
	}
	a := ComputeIterations(grid, v.MaxIterations, v.EscapeRadius)
	b := ComputeIterations(grid, v.MaxIterations, v.EscapeRadius)
	for i := range a.Counts {
		if a.Counts[i] != b.Counts[i] {
			t.Fatalf("count %d differs: %d != %d", i, a.Counts[i], b.Counts[i])
		}
	}
}

func TestIterationMatrixRow(t *testing.T) {
	m := IterationMatrix{Size: 2, Counts: []int{1, 2, 3, 4}}
	if r := m.Row(1); len(r) != 2 || r[0] != 3 || r[1] != 4 {
		t.Errorf("Row(1) = %v", r)
	}
	if m.At(0, 1) != 2 {
		t.Errorf("At(0, 1) = %d", m.At(0, 1))
	}
}
