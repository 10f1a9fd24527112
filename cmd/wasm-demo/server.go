//go:build !js

// Command wasm-demo serves the browser build of basic-demo.
//
//	GOOS=js GOARCH=wasm go build -o cmd/wasm-demo/main.wasm ./cmd/basic-demo
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" cmd/wasm-demo/
//	go run ./cmd/wasm-demo
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kjkrol/gokshader/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dir := flag.String("dir", filepath.Join("cmd", "wasm-demo"), "directory holding index.html, main.wasm and wasm_exec.js")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log, err := logger.New(logger.Config{LogLevel: *level, ServiceName: "wasm-demo"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	srv := &http.Server{Addr: *addr, Handler: logRequests(log, newHandler(*dir))}

	go func() {
		log.Info("serving", zap.String("addr", *addr), zap.String("dir", *dir))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}

func newHandler(baseDir string) http.Handler {
	mux := http.NewServeMux()
	fs := http.FileServer(http.Dir(baseDir))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(baseDir, "index.html"))
			return
		}
		if filepath.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		fs.ServeHTTP(w, r)
	})
	return mux
}

func logRequests(log *zap.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}
