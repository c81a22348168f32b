package mandel

import (
	"context"
)

//go:generate irpc $GOFILE

// Result is a computed iteration matrix together with the viewport it came
// from and the axis bounds needed to place it on the complex plane.
type Result struct {
	Viewport Viewport
	Region   Region
	Matrix   IterationMatrix
}

// MatrixProvider computes iteration matrices. It is implemented by Engine
// locally and served over irpc endpoints by MatrixProviderIrpcService.
type MatrixProvider interface {
	Compute(ctx context.Context, v Viewport) (Result, error)
}

var (
	_ MatrixProvider = (*Engine)(nil)
	_ MatrixProvider = (*Client)(nil)
	_ MatrixProvider = (*MatrixProviderIrpcClient)(nil)
)
