package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/Carmen-Shannon/oxy-viewer/internal/config"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	log.SetPrefix("[VIEWER] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := window.NewWindow(cfg.WindowOptions()...)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}

	session, err := engine.NewSession(w, engine.WithRendererOptions(cfg.RendererOptions()...))
	if err != nil {
		_ = w.Close()
		log.Fatalf("start session: %v", err)
	}

	// GLFW must be driven from the main thread, so signals are observed from a frame callback.
	var watch window.FrameCallback
	watch = func(float32) {
		select {
		case <-ctx.Done():
			log.Printf("shutting down")
			session.Dispose()
			_ = w.Close()
		default:
			w.RequestFrame(watch)
		}
	}
	w.RequestFrame(watch)

	w.ProcessMessages()

	session.Dispose()
	if err := w.Close(); err != nil {
		log.Printf("close window: %v", err)
	}
}
