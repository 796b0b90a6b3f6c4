package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/marben/juliafatou"
)

// main is the entry point for the render server.
// Images are rendered in-process; GET /juliafatou.png returns a finished
// image and /ws streams band progress before the image.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	port := flag.Int("port", 8080, "http port")
	maxActive := flag.Int("max-active", 2, "renders running at once; further requests wait")
	maxPixels := flag.Int("max-pixels", 4096*4096, "largest image accepted, in pixels")
	maxThreads := flag.Int("max-threads", 0, "cap on the threads a request may ask for (0 = no cap)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	juliafatou.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	rs := newRenderScheduler(*maxActive)
	httpServer := webServer(*port, rs, limits{maxPixels: *maxPixels, maxThreads: *maxThreads})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
