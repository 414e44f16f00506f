package http

import (
	"context"

	http_router "github.com/lintang-b-s/Slopex/pkg/http/router"
	"github.com/lintang-b-s/Slopex/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Slopex/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log  *zap.Logger
	g    *errgroup.Group
	done chan struct{}
	err  error
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. starts the api & websocket servers in the background, Wait blocks until they stop.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)

	viper.SetDefault("API_TIMEOUT", "60s")

	config := http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	s.g = &errgroup.Group{}

	s.g.Go(func() error {
		return server.Run(
			ctx, config, log,
			useRateLimit, routingService,
		)
	})

	s.done = make(chan struct{})
	go func() {
		s.err = s.g.Wait()
		close(s.done)
	}()

	return s, nil
}

// Done. closed once the servers have stopped, e.g. after a failed bind or a cancelled ctx.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) Wait() error {
	if s.done == nil {
		return nil
	}
	<-s.done
	return s.err
}
