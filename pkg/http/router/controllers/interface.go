package controllers

import (
	"context"

	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
	"github.com/lintang-b-s/Slopex/pkg/http/usecases"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
)

type RoutingService interface {
	ComputeRoute(params usecases.RouteParams) (*routing.RouteSummary, error)
	CompareRoutes(ctx context.Context, params usecases.RouteParams) ([]*routing.RouteSummary, error)
	BatchRoutes(params []usecases.RouteParams) []usecases.BatchItem
	Vehicles() []vehicle.Spec
}
