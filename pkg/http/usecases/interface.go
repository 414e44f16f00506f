package usecases

import (
	"context"

	"github.com/lintang-b-s/Slopex/pkg/engine"
	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
)

type RoutingEngine interface {
	FindRoute(q engine.RouteQuery) (*routing.RouteSummary, error)
	CompareRoutes(ctx context.Context, q engine.RouteQuery) ([]*routing.RouteSummary, error)
	FindRoutes(queries []engine.RouteQuery) []engine.BatchResult
}
