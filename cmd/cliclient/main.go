// cliclient is the command line control surface for the escape-time engine.
// It computes an iteration matrix locally or on a matrix server, renders it and saves it as a PNG file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/marben/irpc"

	mandel "github.com/marben/mandel_escape"
	"github.com/marben/mandel_escape/render"
)

// maxMessage lifts the websocket read limit above the size of an irpc response carrying a large matrix.
const maxMessage = 1 << 30

type options struct {
	viewport mandel.Viewport
	addr     string
	wsURL    string
	workers  int
	palette  string
	out      string
	dump     string
	timeout  time.Duration
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("cliclient", flag.ContinueOnError)

	def := mandel.DefaultViewport()
	var o options
	landmark := fs.String("landmark", "", "start from a landmark viewport: "+strings.Join(mandel.LandmarkNames(), ", "))
	centerReal := fs.Float64("center-real", def.CenterReal, "real part of the view center")
	centerImag := fs.Float64("center-imag", def.CenterImag, "imaginary part of the view center")
	zoom := fs.Float64("zoom", def.Zoom, "zoom factor, 1 shows the whole set")
	resolution := fs.Int("resolution", def.Resolution, "samples along each axis")
	iterations := fs.Int("iterations", def.MaxIterations, "iteration cap")
	radius := fs.Float64("radius", def.EscapeRadius, "escape radius")
	fs.StringVar(&o.addr, "addr", "", "matrix server tcp address, e.g. :8081")
	fs.StringVar(&o.wsURL, "ws", "", "matrix server websocket url, e.g. ws://localhost:8080/ws")
	fs.IntVar(&o.workers, "workers", 0, "local goroutines, 0 uses every CPU")
	fs.StringVar(&o.palette, "palette", "hsv", "hsv, gray or inferno")
	fs.StringVar(&o.out, "out", "mandel.png", "png output file, empty to skip")
	fs.StringVar(&o.dump, "dump", "", "also save the raw matrix (zstd) to this file")
	fs.DurationVar(&o.timeout, "timeout", 5*time.Minute, "give up after this long")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.addr != "" && o.wsURL != "" {
		return o, errors.New("-addr and -ws are mutually exclusive")
	}

	v := def
	if *landmark != "" {
		lm, ok := mandel.LandmarkByName(*landmark)
		if !ok {
			return o, fmt.Errorf("unknown landmark %q", *landmark)
		}
		v = lm
	}

	// explicitly set flags override the landmark
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "center-real":
			v.CenterReal = *centerReal
		case "center-imag":
			v.CenterImag = *centerImag
		case "zoom":
			v.Zoom = *zoom
		case "resolution":
			v.Resolution = *resolution
		case "iterations":
			v.MaxIterations = *iterations
		case "radius":
			v.EscapeRadius = *radius
		}
	})
	o.viewport = v
	return o, nil
}

// run computes the matrix described by o and saves the requested outputs.
func run(o options) error {
	palette, err := render.PaletteByName(o.palette)
	if err != nil {
		return err
	}
	if err := o.viewport.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	provider, closeFn, err := connect(ctx, o)
	if err != nil {
		return err
	}
	defer closeFn()

	log.Printf("computing %+v", o.viewport)
	start := time.Now()
	res, err := provider.Compute(ctx, o.viewport)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	r := res.Region
	log.Printf("computed %dx%d in %s, real [%g, %g], imag [%g, %g]",
		res.Matrix.Size, res.Matrix.Size, time.Since(start), r.Xmin, r.Xmax, r.Ymin, r.Ymax)

	if o.out != "" {
		if err := writeFile(o.out, func(f *os.File) error { return render.WritePNG(f, res, palette) }); err != nil {
			return err
		}
		log.Printf("image saved to %q", o.out)
	}
	if o.dump != "" {
		if err := writeFile(o.dump, func(f *os.File) error { return mandel.EncodeResult(f, res) }); err != nil {
			return err
		}
		log.Printf("matrix saved to %q", o.dump)
	}
	return nil
}

// connect picks the matrix provider: a tcp server, a websocket server or the local engine.
func connect(ctx context.Context, o options) (mandel.MatrixProvider, func() error, error) {
	switch {
	case o.addr != "":
		log.Printf("connecting to matrix server on %s...", o.addr)
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", o.addr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
		}
		return newRemote(conn)

	case o.wsURL != "":
		log.Printf("connecting to matrix server at %s...", o.wsURL)
		ws, _, err := websocket.Dial(ctx, o.wsURL, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("websocket.Dial: %w", err)
		}
		ws.SetReadLimit(maxMessage)
		return newRemote(websocket.NetConn(context.Background(), ws, websocket.MessageBinary))

	default:
		engine := mandel.NewEngine(
			mandel.WithWorkers(o.workers),
			mandel.WithOnBand(func(b mandel.Band) { log.Printf("rows %d-%d done", b.Y0, b.Y1) }),
		)
		return engine, func() error { return nil }, nil
	}
}

// newRemote runs an irpc endpoint on conn and returns a client for the server's MatrixProvider.
func newRemote(conn net.Conn) (mandel.MatrixProvider, func() error, error) {
	ep := irpc.NewEndpoint(conn, irpc.WithLocalAddress(conn.LocalAddr()), irpc.WithRemoteAddress(conn.RemoteAddr()))
	c, err := mandel.NewClient(ep)
	if err != nil {
		ep.Close()
		return nil, nil, fmt.Errorf("new matrix provider client: %w", err)
	}
	return c, ep.Close, nil
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
