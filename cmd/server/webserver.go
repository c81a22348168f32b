package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coder/websocket"

	mandel "github.com/marben/mandel_escape"
	"github.com/marben/mandel_escape/render"
)

// webServer creates the http server with the /render.png and /matrix endpoints
// and the websocket endpoint, and returns the net.Listener accepting websocket connections
func webServer(ctx context.Context, addr string, provider mandel.MatrixProvider) (*WebsocketListener, *http.Server) {
	l := NewWSListener(ctx, addr+"/ws")

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(l, provider),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://%s", addr)
	return l, srv
}

func newMux(l *WebsocketListener, provider mandel.MatrixProvider) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(l))
	mux.HandleFunc("GET /render.png", renderHandler(provider))
	mux.HandleFunc("GET /matrix", matrixHandler(provider))
	return mux
}

// websocketHandler handles the http ws endpoint
// if websocket is succesfully initialized it is passed to WebsocketListener so it can be accepted
func websocketHandler(l *WebsocketListener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: restrict once the server has a known frontend origin
		})
		if err != nil {
			log.Println(err)
			return
		}

		select {
		case l.ch <- c:
		case <-l.ctx.Done():
			c.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}

func renderHandler(provider mandel.MatrixProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		palette, err := render.PaletteByName(queryString(q, "palette", "hsv"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, ok := computeFromQuery(w, r, provider)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := render.WritePNG(w, res, palette); err != nil {
			log.Printf("render.png: %v", err)
		}
	}
}

func matrixHandler(provider mandel.MatrixProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := computeFromQuery(w, r, provider)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		if err := mandel.EncodeResult(w, res); err != nil {
			log.Printf("matrix: %v", err)
		}
	}
}

// computeFromQuery writes an error response itself and reports false if the request fails.
func computeFromQuery(w http.ResponseWriter, r *http.Request, provider mandel.MatrixProvider) (mandel.Result, bool) {
	v, err := viewportFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return mandel.Result{}, false
	}

	res, err := provider.Compute(r.Context(), v)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, context.Canceled):
		// client went away
		return mandel.Result{}, false
	case errors.Is(err, mandel.ErrInvalidResolution),
		errors.Is(err, mandel.ErrInvalidZoom),
		errors.Is(err, mandel.ErrInvalidEscapeRadius),
		errors.Is(err, mandel.ErrInvalidMaxIterations),
		errors.Is(err, mandel.ErrInvalidCenter),
		errors.Is(err, mandel.ErrTooLarge):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("compute %+v: %v", v, err)
		http.Error(w, "compute failed", http.StatusInternalServerError)
	}
	return mandel.Result{}, false
}

// viewportFromQuery reads cr, ci, zoom, res, iter and radius on top of the default viewport.
func viewportFromQuery(q url.Values) (mandel.Viewport, error) {
	v := mandel.DefaultViewport()
	if name := q.Get("landmark"); name != "" {
		lm, ok := mandel.LandmarkByName(name)
		if !ok {
			return v, fmt.Errorf("unknown landmark %q", name)
		}
		v = lm
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"cr", &v.CenterReal},
		{"ci", &v.CenterImag},
		{"zoom", &v.Zoom},
		{"radius", &v.EscapeRadius},
	}
	for _, f := range floats {
		if s := q.Get(f.key); s != "" {
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return v, fmt.Errorf("%s: %w", f.key, err)
			}
			*f.dst = x
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"res", &v.Resolution},
		{"iter", &v.MaxIterations},
	}
	for _, i := range ints {
		if s := q.Get(i.key); s != "" {
			x, err := strconv.Atoi(s)
			if err != nil {
				return v, fmt.Errorf("%s: %w", i.key, err)
			}
			*i.dst = x
		}
	}
	return v, nil
}

func queryString(q url.Values, key, def string) string {
	if s := q.Get(key); s != "" {
		return s
	}
	return def
}

// WebsocketListener implements net.Listener
// it's a wrapper around websocket.Conn
type WebsocketListener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func NewWSListener(ctx context.Context, addr string) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

func (l *WebsocketListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		if errors.Is(context.Cause(l.ctx), context.Canceled) {
			return nil, net.ErrClosed
		}
		return nil, context.Cause(l.ctx)
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
