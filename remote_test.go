package mandel

import (
	"context"
	"errors"
	"net"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marben/irpc"
)

// pipeClient serves provider on one end of an in-memory connection and returns a client on the other.
func pipeClient(t *testing.T, provider MatrixProvider) (*Client, *irpc.Endpoint) {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	serverEp := irpc.NewEndpoint(serverConn, irpc.WithEndpointServices(NewMatrixProviderIrpcService(provider)))
	clientEp := irpc.NewEndpoint(clientConn)
	t.Cleanup(func() {
		clientEp.Close()
		serverEp.Close()
	})

	c, err := NewClient(clientEp)
	if err != nil {
		t.Fatal(err)
	}
	return c, clientEp
}

func TestClientServer(t *testing.T) {
	engine := NewEngine(WithWorkers(2))
	c, _ := pipeClient(t, engine)

	for _, v := range []Viewport{SeahorseValley, DefaultViewport()} {
		v.Resolution = 33
		want, err := engine.Compute(context.Background(), v)
		if err != nil {
			t.Fatal(err)
		}

		got, err := c.Compute(context.Background(), v)
		if err != nil {
			t.Fatal(err)
		}
		if got.Viewport != v || got.Region != want.Region {
			t.Errorf("remote result for %+v carries %+v / %+v", v, got.Viewport, got.Region)
		}
		if !slices.Equal(got.Matrix.Counts, want.Matrix.Counts) {
			t.Errorf("remote matrix for %+v differs from local", v)
		}
	}
}

func TestClientRemoteErrors(t *testing.T) {
	c, _ := pipeClient(t, LimitResolution(NewEngine(), 64))

	tests := []struct {
		name   string
		modify func(*Viewport)
		want   error
	}{
		{"resolution", func(v *Viewport) { v.Resolution = 0 }, ErrInvalidResolution},
		{"zoom", func(v *Viewport) { v.Zoom = -4 }, ErrInvalidZoom},
		{"radius", func(v *Viewport) { v.EscapeRadius = -1 }, ErrInvalidEscapeRadius},
		{"iterations", func(v *Viewport) { v.MaxIterations = -1 }, ErrInvalidMaxIterations},
		{"too large", func(v *Viewport) { v.Resolution = 65 }, ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultViewport()
			v.Resolution = 16
			tt.modify(&v)
			_, err := c.Compute(context.Background(), v)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			var re *RemoteError
			if !errors.As(err, &re) {
				t.Errorf("err = %T, want *RemoteError", err)
			}
		})
	}

	// the endpoint survives rejected requests
	v := DefaultViewport()
	v.Resolution = 16
	if _, err := c.Compute(context.Background(), v); err != nil {
		t.Errorf("after errors: %v", err)
	}
}

type failingProvider struct{}

func (failingProvider) Compute(context.Context, Viewport) (Result, error) {
	return Result{}, errors.New("out of cores")
}

func TestClientInternalError(t *testing.T) {
	c, _ := pipeClient(t, failingProvider{})
	_, err := c.Compute(context.Background(), DefaultViewport())
	var re *RemoteError
	if !errors.As(err, &re) || re.Msg != "out of cores" {
		t.Fatalf("err = %v, want a RemoteError saying out of cores", err)
	}
	if errors.Unwrap(err) != nil {
		t.Errorf("unknown remote error unwraps to %v", errors.Unwrap(err))
	}
}

type wrongShapeProvider struct{}

func (wrongShapeProvider) Compute(_ context.Context, v Viewport) (Result, error) {
	return Result{Viewport: v, Matrix: IterationMatrix{Size: 1, Counts: []int{0}}}, nil
}

func TestClientRejectsMalformedResult(t *testing.T) {
	c, _ := pipeClient(t, wrongShapeProvider{})
	v := DefaultViewport()
	v.Resolution = 4
	if _, err := c.Compute(context.Background(), v); !errors.Is(err, ErrBadResponse) {
		t.Errorf("err = %v, want ErrBadResponse", err)
	}
}

// blockingProvider blocks every call until its context ends.
type blockingProvider struct {
	started  chan struct{}
	canceled chan error
}

func newBlockingProvider() blockingProvider {
	return blockingProvider{started: make(chan struct{}, 1), canceled: make(chan error, 1)}
}

func (p blockingProvider) Compute(ctx context.Context, v Viewport) (Result, error) {
	select {
	case p.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	select {
	case p.canceled <- context.Cause(ctx):
	default:
	}
	return Result{}, context.Cause(ctx)
}

func TestClientDeadline(t *testing.T) {
	p := newBlockingProvider()
	c, _ := pipeClient(t, p)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	for range 20 {
		if _, err := c.Compute(ctx, DefaultViewport()); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("err = %v, want context.DeadlineExceeded", err)
		}
	}

	// the remote computation was told to stop
	select {
	case <-p.canceled:
	case <-time.After(time.Second):
		t.Error("remote computation still running after the deadline")
	}
}

// lateProvider answers the first call only after its caller gave up, with a result for that first viewport.
type lateProvider struct {
	calls  atomic.Int32
	engine *Engine
}

func (p *lateProvider) Compute(ctx context.Context, v Viewport) (Result, error) {
	if p.calls.Add(1) == 1 {
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		return p.engine.Compute(context.Background(), v)
	}
	return p.engine.Compute(ctx, v)
}

func TestClientIgnoresLateReply(t *testing.T) {
	c, _ := pipeClient(t, &lateProvider{engine: NewEngine()})

	first := DefaultViewport()
	first.Resolution = 8
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := c.Compute(ctx, first); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("first call: err = %v, want context.DeadlineExceeded", err)
	}

	second := SeahorseValley
	second.Resolution = 4
	for range 3 {
		res, err := c.Compute(context.Background(), second)
		if err != nil {
			t.Fatal(err)
		}
		if res.Viewport != second || res.Matrix.Size != 4 {
			t.Fatalf("second call returned %+v, want %+v", res.Viewport, second)
		}
	}
}

func TestPeerDisconnectCancelsComputation(t *testing.T) {
	p := newBlockingProvider()
	c, clientEp := pipeClient(t, p)

	errC := make(chan error, 1)
	go func() {
		_, err := c.Compute(context.Background(), DefaultViewport())
		errC <- err
	}()

	select {
	case <-p.started:
	case <-time.After(time.Second):
		t.Fatal("request never reached the provider")
	}
	clientEp.Close()

	select {
	case <-p.canceled:
	case <-time.After(time.Second):
		t.Fatal("computation not canceled after the peer hung up")
	}
	if err := <-errC; !errors.Is(err, irpc.ErrEndpointClosed) {
		t.Errorf("err = %v, want irpc.ErrEndpointClosed", err)
	}
}

func TestLimitResolution(t *testing.T) {
	p := LimitResolution(NewEngine(), 8)
	v := DefaultViewport()
	v.Resolution = 9
	if _, err := p.Compute(context.Background(), v); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
	v.Resolution = 8
	if _, err := p.Compute(context.Background(), v); err != nil {
		t.Error(err)
	}
}

func TestServerServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	connected := make(chan struct{}, 1)
	srv := irpc.NewServer(irpc.WithOnConnect(func(*irpc.Endpoint) { connected <- struct{}{} }))
	srv.AddService(NewMatrixProviderIrpcService(NewEngine()))
	go srv.Serve(l)
	defer srv.Close()

	conn, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	ep := irpc.NewEndpoint(conn)
	defer ep.Close()
	c, err := NewClient(ep)
	if err != nil {
		t.Fatal(err)
	}

	v := DefaultViewport()
	v.Resolution = 10
	res, err := c.Compute(context.Background(), v)
	if err != nil {
		t.Fatal(err)
	}
	if res.Matrix.Size != 10 {
		t.Errorf("size = %d", res.Matrix.Size)
	}
	select {
	case <-connected:
	case <-time.After(time.Second):
		t.Error("OnConnect hook not called")
	}
}
