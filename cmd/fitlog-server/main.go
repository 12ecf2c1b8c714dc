package main

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/config"
	"github.com/rahulansharma682/fitlog-cloud-computing/internal/handler"
	"github.com/rahulansharma682/fitlog-cloud-computing/internal/notify"
	"github.com/rahulansharma682/fitlog-cloud-computing/internal/store"
)

//go:embed static/*
var staticFS embed.FS

// Local stand-in for the deployed stack: same handler and routes, but
// a filesystem store and log notifications instead of S3 and SNS.
func main() {
	logger := log.New(os.Stdout, "fitlog-server ", log.LstdFlags|log.LUTC)

	cfg, err := config.LoadServer()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	st, err := store.NewFile(cfg.DataDir, logger)
	if err != nil {
		logger.Fatalf("store: %v", err)
	}

	h := handler.New(st, notify.NewLog(logger), logger)

	r := handler.Router(h)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		logger.Fatalf("static assets: %v", err)
	}
	r.Handle("/app/*", http.StripPrefix("/app/", http.FileServer(http.FS(static))))

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s (data dir %s)", cfg.Addr, cfg.DataDir)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	logger.Printf("shutting down...")
	_ = httpSrv.Close()
}
