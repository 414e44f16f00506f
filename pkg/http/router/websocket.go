package router

import (
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/Slopex/pkg/http/router/controllers"
	"go.uber.org/zap"
)

// WebsocketHandler. GET /ws upgrades to a websocket, every text message is a route request.
func (api *API) WebsocketHandler(routingService controllers.RoutingService, useRateLimit bool) http.Handler {
	api.hub = controllers.NewHub(routingService)

	wsRouter := httprouter.New()
	wsRouter.GET("/ws", api.upgrade)

	return api.middlewares(useRateLimit).Then(wsRouter)
}

func (api *API) upgrade(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		return
	}

	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	// hijacked connections keep the server read deadline
	_ = conn.SetDeadline(time.Time{})

	user := api.hub.Register(conn)
	go api.serve(user, conn)
}

// serve. one goroutine per connection, requests of a connection are answered in order.
func (api *API) serve(user *controllers.User, conn net.Conn) {
	defer api.hub.Remove(user)

	for {
		if err := user.ComputeRoute(); err != nil {
			if isClosed(err) {
				api.log.Info("user disconnected from websocket server", zap.String("connection name", nameConn(conn)))
			} else {
				api.log.Error("error serving websocket route request", zap.Error(err))
			}
			return
		}
	}
}

func isClosed(err error) bool {
	var closedErr wsutil.ClosedError
	return errors.As(err, &closedErr) || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
