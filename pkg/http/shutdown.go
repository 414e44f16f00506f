package http

import (
	"os"
	"os/signal"
	"syscall"
)

// GracefulShutdown. blocks until SIGINT or SIGTERM, or until stopped is closed. nil signal means the servers stopped on their own.
func GracefulShutdown(stopped <-chan struct{}) os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		return sig
	case <-stopped:
		return nil
	}
}
