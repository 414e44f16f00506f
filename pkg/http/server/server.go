package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          int
	WebsocketPort int
	Timeout       time.Duration
}

// New. http.Server for the api (websocket=false) or the websocket listener (websocket=true).
// request contexts derive from ctx. searches do not observe it, they stop at their iteration cap.
func New(ctx context.Context, handler http.Handler, config Config, websocket bool) *http.Server {
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "120s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")

	port := config.Port
	writeTimeout := config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT")
	if websocket {
		port = config.WebsocketPort
		// hijacked connections manage their own deadlines
		writeTimeout = 0
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      writeTimeout,
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}
