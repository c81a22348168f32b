package mandel

import (
	"context"
	"runtime"
	"sync"
)

const defaultBandHeight = 16

// Band is a horizontal strip of matrix rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

func (b Band) Rows() int { return b.Y1 - b.Y0 }

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many goroutines evaluate bands. n < 1 means runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		e.workers = n
	}
}

// WithBandHeight sets the number of rows handed to a worker at once. Values below 1 are ignored.
func WithBandHeight(rows int) Option {
	return func(e *Engine) {
		if rows > 0 {
			e.bandHeight = rows
		}
	}
}

// WithOnBand registers a callback run after each finished band.
// It is called from worker goroutines and must be safe for concurrent use.
func WithOnBand(fn func(Band)) Option {
	return func(e *Engine) {
		e.onBand = fn
	}
}

// Engine runs the viewport → grid → matrix pipeline.
// The zero value is not usable, use NewEngine.
type Engine struct {
	workers    int
	bandHeight int
	onBand     func(Band)
}

// NewEngine returns an engine evaluating sequentially unless WithWorkers says otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		workers:    1,
		bandHeight: defaultBandHeight,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Compute implements MatrixProvider.
func (e *Engine) Compute(ctx context.Context, v Viewport) (Result, error) {
	grid, err := BuildGrid(v)
	if err != nil {
		return Result{}, err
	}
	m, err := e.Evaluate(ctx, grid, v.MaxIterations, v.EscapeRadius)
	if err != nil {
		return Result{}, err
	}
	return Result{Viewport: v, Region: v.Region(), Matrix: m}, nil
}

// Evaluate computes the iteration matrix of grid. Rows are split into bands
// shared among the engine's workers; every worker writes only the rows of
// its own bands. Cancellation is checked between points and a cancelled
// run returns ctx's error and no matrix.
func (e *Engine) Evaluate(ctx context.Context, grid SampleGrid, maxIter int, radius float64) (IterationMatrix, error) {
	m := newIterationMatrix(grid.Size)
	bs := newBandScheduler(splitRows(grid.Size, e.bandHeight))

	workers := min(e.workers, len(bs.bands))
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for {
				b, found := bs.pop()
				if !found {
					return
				}
				if err := evalBand(ctx, grid, m, b, maxIter, radius); err != nil {
					bs.fail(err)
					return
				}
				if e.onBand != nil {
					e.onBand(b)
				}
			}
		})
	}
	wg.Wait()

	if err := bs.error(); err != nil {
		return IterationMatrix{}, err
	}
	return m, nil
}

func evalBand(ctx context.Context, grid SampleGrid, m IterationMatrix, b Band, maxIter int, radius float64) error {
	done := ctx.Done()
	for row := b.Y0; row < b.Y1; row++ {
		out := m.Row(row)
		for col := range grid.Size {
			select {
			case <-done:
				return context.Cause(ctx)
			default:
			}
			out[col] = EscapeTime(grid.At(row, col), maxIter, radius)
		}
	}
	return nil
}

// bandScheduler hands out bands until they run out or a worker fails.
type bandScheduler struct {
	m     sync.Mutex
	bands []Band
	next  int
	err   error
}

func newBandScheduler(bands []Band) *bandScheduler {
	return &bandScheduler{bands: bands}
}

func (bs *bandScheduler) pop() (b Band, found bool) {
	bs.m.Lock()
	defer bs.m.Unlock()

	if bs.err != nil || bs.next >= len(bs.bands) {
		return Band{}, false
	}
	b = bs.bands[bs.next]
	bs.next++
	return b, true
}

func (bs *bandScheduler) fail(err error) {
	bs.m.Lock()
	defer bs.m.Unlock()
	if bs.err == nil {
		bs.err = err
	}
}

func (bs *bandScheduler) error() error {
	bs.m.Lock()
	defer bs.m.Unlock()
	return bs.err
}

// splitRows splits rows into bands of height rows each.
// The last band is shorter if rows is not divisible.
func splitRows(rows, height int) []Band {
	if height <= 0 {
		panic("band height must be positive")
	}

	var bands []Band
	for y := 0; y < rows; y += height {
		bands = append(bands, Band{Y0: y, Y1: min(y+height, rows)})
	}
	return bands
}
