package mandel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marben/irpc/irpcgen"
)

var (
	ErrTooLarge    = errors.New("viewport too large for this server")
	ErrBadResponse = errors.New("malformed response")
)

// remoteSentinels are the errors a Client restores from the message text a
// remote provider sent back.
var remoteSentinels = []error{
	ErrInvalidResolution,
	ErrInvalidZoom,
	ErrInvalidEscapeRadius,
	ErrInvalidMaxIterations,
	ErrInvalidCenter,
	ErrTooLarge,
}

// RemoteError is an error returned by the provider on the other side of an endpoint.
// It unwraps to the matching Err* sentinel when the message ends with one.
type RemoteError struct {
	Msg    string
	target error
}

func (e *RemoteError) Error() string { return "remote: " + e.Msg }

func (e *RemoteError) Unwrap() error { return e.target }

func newRemoteError(msg string) *RemoteError {
	re := &RemoteError{Msg: msg}
	for _, s := range remoteSentinels {
		if strings.HasSuffix(msg, s.Error()) {
			re.target = s
			break
		}
	}
	return re
}

// LimitResolution wraps p so that viewports finer than maxRes samples per
// axis are rejected with ErrTooLarge before any work is done.
func LimitResolution(p MatrixProvider, maxRes int) MatrixProvider {
	return resolutionLimit{p: p, max: maxRes}
}

type resolutionLimit struct {
	p   MatrixProvider
	max int
}

func (l resolutionLimit) Compute(ctx context.Context, v Viewport) (Result, error) {
	if v.Resolution > l.max {
		return Result{}, fmt.Errorf("resolution %d above %d: %w", v.Resolution, l.max, ErrTooLarge)
	}
	return l.p.Compute(ctx, v)
}

// Client computes matrices through a MatrixProviderIrpcClient.
// Errors sent by the remote provider come back as *RemoteError, and every
// result is checked against the requested viewport before it is returned.
type Client struct {
	rpc *MatrixProviderIrpcClient
}

func NewClient(ep irpcgen.Endpoint) (*Client, error) {
	rpc, err := NewMatrixProviderIrpcClient(ep)
	if err != nil {
		return nil, err
	}
	return &Client{rpc: rpc}, nil
}

type computeReply struct {
	res Result
	err error
}

// Compute implements MatrixProvider. It returns context.Cause(ctx) as soon as
// ctx is done; the endpoint tells the remote side to stop and drops the late reply.
func (c *Client) Compute(ctx context.Context, v Viewport) (Result, error) {
	replyC := make(chan computeReply, 1)
	go func() {
		res, err := c.rpc.Compute(ctx, v)
		replyC <- computeReply{res: res, err: err}
	}()

	var r computeReply
	select {
	case r = <-replyC:
	case <-ctx.Done():
		return Result{}, context.Cause(ctx)
	}

	if r.err != nil {
		if cause := context.Cause(ctx); cause != nil {
			return Result{}, cause
		}
		var remote _error_MatrixProvider_impl
		if errors.As(r.err, &remote) {
			return Result{}, newRemoteError(remote.Error())
		}
		return Result{}, r.err
	}

	if r.res.Viewport != v {
		return Result{}, fmt.Errorf("result for %+v, requested %+v: %w", r.res.Viewport, v, ErrBadResponse)
	}
	if err := r.res.check(); err != nil {
		return Result{}, errors.Join(ErrBadResponse, err)
	}
	return r.res, nil
}
