// Command subseq-server provides a REST API for subsequence searches.
//
// Usage:
//
//	subseq-server [options]
//
// Options:
//
//	--port     Port to listen on (default: 8080)
//	--host     Host to bind to (default: localhost)
//	--config   Settings file with the search defaults
//
// Settings are also read from SUBSEQ_* environment variables.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aria-lang/subseq-go/api"
	"github.com/aria-lang/subseq-go/internal/config"
)

func main() {
	cfgFile := pflag.String("config", "", "settings file (default ./subseq.yaml or $HOME/.subseq/subseq.yaml)")
	pflag.Int("port", 8080, "Port to listen on")
	pflag.String("host", "localhost", "Host to bind to")
	pflag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	v := viper.New()
	config.Setup(v)
	v.BindPFlag(config.KeyServerPort, pflag.Lookup("port"))
	v.BindPFlag(config.KeyServerHost, pflag.Lookup("host"))
	if err := config.ReadFile(v, *cfgFile); err != nil {
		logger.Fatalf("ERROR: %v", err)
	}

	cfg, err := config.New(v)
	if err != nil {
		logger.Fatalf("ERROR: %v", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			logger.Printf("ERROR: %v", e)
		}
		logger.Fatalf("ERROR: %d errors were found, please see above messages", len(errs))
	}

	addr := cfg.Server.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(cfg, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Println("INFO: Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Fatalf("ERROR: Could not gracefully shutdown: %v\n", err)
		}
		close(done)
	}()

	logger.Printf("INFO: subseq API server starting on http://%s\n", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ERROR: Could not listen on %s: %v\n", addr, err)
	}

	<-done
	logger.Println("INFO: Server stopped")
}
