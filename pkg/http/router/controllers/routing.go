package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/Slopex/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/Slopex/pkg/http/usecases"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.computeRoute)
	group.POST("/computeRoutes", api.computeRoutePost)
	group.GET("/compareRoutes", api.compareRoutes)
	group.POST("/batchRoutes", api.batchRoutes)
	group.GET("/vehicles", api.vehicles)
}

func parseFloatParam(query url.Values, key string, required bool) (float64, error) {
	raw := query.Get(key)
	if raw == "" && !required {
		return 0, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if required {
			return 0, fmt.Errorf("%s is required and must be a valid float", key)
		}
		return 0, fmt.Errorf("%s must be a valid float", key)
	}
	return val, nil
}

func parseRouteQuery(query url.Values) (routeRequest, error) {
	var (
		request routeRequest
		err     error
	)

	request.OriginLat, err = parseFloatParam(query, "origin_lat", true)
	if err != nil {
		return request, err
	}
	request.OriginLon, err = parseFloatParam(query, "origin_lon", true)
	if err != nil {
		return request, err
	}
	request.DestinationLat, err = parseFloatParam(query, "destination_lat", true)
	if err != nil {
		return request, err
	}
	request.DestinationLon, err = parseFloatParam(query, "destination_lon", true)
	if err != nil {
		return request, err
	}
	request.FuelPricePerLiter, err = parseFloatParam(query, "fuel_price", false)
	if err != nil {
		return request, err
	}

	request.Vehicle = query.Get("vehicle")
	request.TimeOfDay = query.Get("time_of_day")
	request.Mode = query.Get("mode")
	request.Format = query.Get("format")
	return request, nil
}

//	@Summary		route between two coordinates for one vehicle
//	@Description	locates the nearest road nodes, runs the slope-aware bidirectional search and returns the route summary.
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			vehicle			query	string	true	"catalog vehicle name"
//	@Param			time_of_day		query	string	false	"peak | offpeak"
//	@Param			mode			query	string	false	"power_optimized | fuel_saver | time_saver | balanced"
//	@Param			fuel_price		query	number	false	"fuel price per liter"
//	@Param			format			query	string	false	"json | geojson"
//	@Produce		application/json
//	@Router			/computeRoutes [get]
func (api *routingAPI) computeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := parseRouteQuery(r.URL.Query())
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	api.handleRoute(w, r, request)
}

// computeRoutePost. same as computeRoute, but accepts an inline vehicle_spec in a json body.
func (api *routingAPI) computeRoutePost(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request routeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	api.handleRoute(w, r, request)
}

func (api *routingAPI) handleRoute(w http.ResponseWriter, r *http.Request, request routeRequest) {
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	summary, err := api.routingService.ComputeRoute(request.toParams())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(summary, request.Format)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

//	@Summary		routes for all four optimization modes
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			vehicle			query	string	true	"catalog vehicle name"
//	@Param			time_of_day		query	string	false	"peak | offpeak"
//	@Produce		application/json
//	@Router			/compareRoutes [get]
func (api *routingAPI) compareRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := parseRouteQuery(r.URL.Query())
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Mode = ""
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	summaries, err := api.routingService.CompareRoutes(r.Context(), request.toParams())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCompareRoutesResponse(summaries, request.Format)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

//	@Summary		independent route queries in one request
//	@Tags			routing
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/batchRoutes [post]
func (api *routingAPI) batchRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	params := make([]usecases.RouteParams, 0, len(request.Requests))
	for _, req := range request.Requests {
		params = append(params, req.toParams())
	}

	results := api.routingService.BatchRoutes(params)
	items := make([]batchRouteItem, len(results))
	for i, res := range results {
		if res.Err != nil {
			body := newErrorBody(statusOf(res.Err), res.Err)
			items[i].Error = &body
			continue
		}
		route := NewRouteResponse(res.Summary, request.Requests[i].Format)
		items[i].Route = &route
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": items}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

//	@Summary		built-in vehicle catalog with derived slope thresholds
//	@Tags			vehicles
//	@Produce		application/json
//	@Router			/vehicles [get]
func (api *routingAPI) vehicles(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	specs := api.routingService.Vehicles()
	resp := make([]vehicleResponse, 0, len(specs))
	for _, spec := range specs {
		resp = append(resp, NewVehicleResponse(spec))
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
