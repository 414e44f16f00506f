package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/Slopex/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/Slopex/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/Slopex/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "net/http/pprof"

	httpSwagger "github.com/swaggo/http-swagger"
)

type API struct {
	log *zap.Logger
	hub *controllers.Hub
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

func newCorsHandler() *cors.Cors {
	return cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})
}

func (api *API) middlewares(useRateLimit bool) alice.Chain {
	mwChain := []alice.Constructor{newCorsHandler().Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Labels}
	if useRateLimit {
		mwChain = append(mwChain, Limit)
	}
	return alice.New(mwChain...)
}

// Handler. the api router wrapped in the middleware chain.
func (api *API) Handler(routingService controllers.RoutingService, useRateLimit bool) http.Handler {
	router := httprouter.New()

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")
	slopexRoutes := controllers.New(routingService, api.log)
	slopexRoutes.Routes(group)

	return api.middlewares(useRateLimit).Then(router)
}

//	@title			Slopex API
//	@version		1.0
//	@description	Slope aware vehicle routing engine. Routes are planned from the vehicle power-to-weight ratio, fuel type & road gradients.

//	@contact.name	Lintang Birda Saputra
//	@contact.url	_
//	@contact.email	lintang.birda.saputra@mail.ugm.ac.id

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
) error {
	log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(routingService, useRateLimit), config, false)
	wsSrv := http_server.New(ctx, api.WebsocketHandler(routingService, useRateLimit), config, true)

	errChan := make(chan error, 1)
	serverErr := make(chan error, 1)

	go func() {
		log.Info(fmt.Sprintf("route query websocket API run on port %d", config.WebsocketPort))
		if err := wsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	go func() {
		log.Info(fmt.Sprintf("API run on port %d", config.Port))
		serverErr <- srv.ListenAndServe()
	}()

	shutdown := func(ctx context.Context) {
		_ = srv.Shutdown(ctx)
		_ = wsSrv.Shutdown(ctx)
		api.hub.RemoveAllUser()
	}

	select {
	case err := <-errChan:
		log.Error("Websocket error, shutting down server", zap.Error(err))
		shutdown(context.Background())
		return err
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		shutdown(context.Background())
		return err
	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		shutdown(context.Background())
		return ctx.Err()
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
