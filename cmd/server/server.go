package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"runtime"

	"github.com/marben/irpc"
	mandel "github.com/marben/mandel_escape"
)

// main is the entry point for the matrix server.
// The same engine answers TCP clients, websocket clients and plain HTTP requests.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	tcpAddr := flag.String("tcp", ":8081", "tcp listen address")
	httpAddr := flag.String("http", ":8080", "http (and websocket /ws) listen address")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "goroutines evaluating each request")
	maxRes := flag.Int("max-resolution", 4096, "largest resolution a client may request")
	flag.Parse()

	engine := mandel.NewEngine(mandel.WithWorkers(*workers))

	// every surface shares the engine and the resolution limit
	provider := mandel.LimitResolution(engine, *maxRes)

	// matrixProviderIrpcService provides mandel.MatrixProvider over network
	// Calls run with the endpoint's context, so a client that hangs up or cancels stops its computation
	matrixProviderIrpcService := mandel.NewMatrixProviderIrpcService(provider)

	irpcServer := newIrpcServer(matrixProviderIrpcService)

	// TCP
	log.Printf("tcp listening on %s", *tcpAddr)
	tcpListener, err := net.Listen("tcp", *tcpAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}

	// WEBSOCKET + HTTP
	websocketListener, httpServer := webServer(context.Background(), *httpAddr, provider)

	errCh := make(chan error, 3)
	go func() {
		errCh <- fmt.Errorf("httpServer: %w", httpServer.ListenAndServe())
	}()

	// irpcServer can serve multiple listeners. In this case both tcp and websocket
	go func() {
		errCh <- fmt.Errorf("server.Serve tcp: %w", irpcServer.Serve(tcpListener))
	}()
	go func() {
		errCh <- fmt.Errorf("server.Serve ws: %w", irpcServer.Serve(websocketListener))
	}()

	log.Printf("matrix server waiting for tcp and websocket connections (%d workers)", *workers)
	return <-errCh
}

// newIrpcServer returns an irpc server offering svc to every connection and logging connects and disconnects
func newIrpcServer(svc *mandel.MatrixProviderIrpcService) *irpc.Server {
	s := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		log.Printf("got connection from: %s", ep.RemoteAddr())
		go func() {
			<-ep.Context().Done()
			log.Printf("connection %s closed: %v", ep.RemoteAddr(), context.Cause(ep.Context()))
		}()
	}))

	// irpc services need to be registered to server so clients can use them
	s.AddService(svc)
	return s
}
