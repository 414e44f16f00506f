package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/engine"
	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	helper "github.com/lintang-b-s/Slopex/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/Slopex/pkg/http/usecases"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoutingService struct {
	lastParams usecases.RouteParams
	err        error
}

func testSummary(mode pkg.OptimizationMode) *routing.RouteSummary {
	return &routing.RouteSummary{
		Path: []string{"a", "b", "c"},
		Coordinates: []geo.Coordinate{
			geo.NewCoordinate(38.4237, 27.1428),
			geo.NewCoordinate(38.4327, 27.1428),
			geo.NewCoordinate(38.4417, 27.1428),
		},
		Segments: []routing.Segment{
			{From: "a", To: "b", Distance: 1000, SlopePercent: 3, Category: pkg.GENTLE, Passable: true},
			{From: "b", To: "c", Distance: 1000, SlopePercent: 6, Category: pkg.MODERATE, Passable: true},
		},
		TotalDistance: 2000,
		Feasible:      true,
		Mode:          mode,
	}
}

func (f *fakeRoutingService) ComputeRoute(params usecases.RouteParams) (*routing.RouteSummary, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return testSummary(pkg.BALANCED), nil
}

func (f *fakeRoutingService) CompareRoutes(ctx context.Context, params usecases.RouteParams) ([]*routing.RouteSummary, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	summaries := make([]*routing.RouteSummary, 0, len(pkg.AllOptimizationModes))
	for _, mode := range pkg.AllOptimizationModes {
		summaries = append(summaries, testSummary(mode))
	}
	return summaries, nil
}

func (f *fakeRoutingService) BatchRoutes(params []usecases.RouteParams) []usecases.BatchItem {
	items := make([]usecases.BatchItem, len(params))
	for i, p := range params {
		if p.Vehicle == "unknown" {
			items[i].Err = util.WrapErrorf(engine.ErrUnknownVehicle, util.ErrBadParamInput, "%q", p.Vehicle)
			continue
		}
		items[i].Summary = testSummary(pkg.BALANCED)
	}
	return items
}

func (f *fakeRoutingService) Vehicles() []vehicle.Spec {
	return vehicle.CatalogSpecs()
}

func newTestRouter(svc RoutingService) *httprouter.Router {
	router := httprouter.New()
	New(svc, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

const routeQuery = "origin_lat=38.4237&origin_lon=27.1428&destination_lat=38.4417&destination_lon=27.1428"

func do(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestComputeRoute(t *testing.T) {
	svc := &fakeRoutingService{}
	router := newTestRouter(svc)

	rec, resp := do(t, router, http.MethodGet,
		"/api/computeRoutes?"+routeQuery+"&vehicle=Fiat+Egea+1.3+Multijet&mode=fuel_saver&time_of_day=peak&fuel_price=45.5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Fiat Egea 1.3 Multijet", svc.lastParams.Vehicle)
	assert.Equal(t, "fuel_saver", svc.lastParams.Mode)
	assert.Equal(t, "peak", svc.lastParams.TimeOfDay)
	assert.InDelta(t, 45.5, svc.lastParams.FuelPricePerLiter, 1e-9)
	assert.InDelta(t, 38.4417, svc.lastParams.DestinationLat, 1e-9)

	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["path"])
	assert.Nil(t, data["geojson"])
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, "balanced", summary["mode"])
	assert.InDelta(t, 2000, summary["total_distance"].(float64), 1e-9)

	coords, err := geo.CoordsFromPolyline(data["path"].(string))
	require.NoError(t, err)
	assert.Len(t, coords, 3)
}

func TestComputeRouteGeoJSON(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	rec, resp := do(t, router, http.MethodGet, "/api/computeRoutes?"+routeQuery+"&vehicle=Fiat+Egea+1.3+Multijet&format=geojson", "")
	require.Equal(t, http.StatusOK, rec.Code)

	fc := resp["data"].(map[string]interface{})["geojson"].(map[string]interface{})
	assert.Equal(t, "FeatureCollection", fc["type"])
	// whole route + one feature per segment
	assert.Len(t, fc["features"], 3)
}

func TestComputeRouteBadRequest(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	tests := []struct {
		name  string
		query string
	}{
		{"missing origin", "destination_lat=1&destination_lon=1&origin_lon=1&vehicle=x"},
		{"latitude not a number", "origin_lat=abc&origin_lon=1&destination_lat=1&destination_lon=1&vehicle=x"},
		{"latitude out of range", "origin_lat=91&origin_lon=1&destination_lat=1&destination_lon=1&vehicle=x"},
		{"no vehicle", routeQuery},
		{"unknown mode", routeQuery + "&vehicle=x&mode=scenic"},
		{"unknown time of day", routeQuery + "&vehicle=x&time_of_day=night"},
		{"negative fuel price", routeQuery + "&vehicle=x&fuel_price=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, router, http.MethodGet, "/api/computeRoutes?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotNil(t, resp["error"])
		})
	}
}

func TestComputeRouteServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid vehicle", util.WrapErrorf(engine.ErrInvalidVehicle, util.ErrBadParamInput, "vehicle"), http.StatusBadRequest},
		{"locate failure", util.WrapErrorf(engine.ErrLocateFailure, util.ErrNotFound, "origin"), http.StatusNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeRoutingService{err: tt.err})
			rec, resp := do(t, router, http.MethodGet, "/api/computeRoutes?"+routeQuery+"&vehicle=x", "")
			assert.Equal(t, tt.status, rec.Code)

			body := resp["error"].(map[string]interface{})
			assert.Equal(t, http.StatusText(tt.status), body["code"])
			if tt.status == http.StatusInternalServerError {
				assert.Equal(t, util.MessageInternalServerError, body["message"])
			}
		})
	}
}

func TestComputeRoutePostInlineSpec(t *testing.T) {
	svc := &fakeRoutingService{}
	router := newTestRouter(svc)

	body := `{"origin_lat":38.4237,"origin_lon":27.1428,"destination_lat":38.4417,"destination_lon":27.1428,
		"vehicle_spec":{"name":"custom","hp":95,"torque_nm":200,"weight_kg":1200,"fuel_consumption_city":6.5,"fuel_type":"diesel"},
		"mode":"power_optimized"}`
	rec, _ := do(t, router, http.MethodPost, "/api/computeRoutes", body)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.lastParams.VehicleSpec)
	assert.Equal(t, "custom", svc.lastParams.VehicleSpec.Name)
	assert.Equal(t, "power_optimized", svc.lastParams.Mode)

	t.Run("invalid inline spec", func(t *testing.T) {
		body := `{"origin_lat":1,"origin_lon":1,"destination_lat":1,"destination_lon":1,
			"vehicle_spec":{"hp":95,"weight_kg":1200,"fuel_consumption_city":6.5,"fuel_type":"diesel"}}`
		rec, _ := do(t, router, http.MethodPost, "/api/computeRoutes", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCompareRoutes(t *testing.T) {
	svc := &fakeRoutingService{}
	router := newTestRouter(svc)

	rec, resp := do(t, router, http.MethodGet, "/api/compareRoutes?"+routeQuery+"&vehicle=x&mode=fuel_saver", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.lastParams.Mode)

	routes := resp["data"].(map[string]interface{})["routes"].([]interface{})
	require.Len(t, routes, 4)
	for i, mode := range pkg.AllOptimizationModes {
		summary := routes[i].(map[string]interface{})["summary"].(map[string]interface{})
		assert.Equal(t, mode.String(), summary["mode"])
	}
}

func TestBatchRoutes(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	body := `{"requests":[
		{"origin_lat":38.4237,"origin_lon":27.1428,"destination_lat":38.4417,"destination_lon":27.1428,"vehicle":"x"},
		{"origin_lat":38.4237,"origin_lon":27.1428,"destination_lat":38.4417,"destination_lon":27.1428,"vehicle":"unknown"}]}`
	rec, resp := do(t, router, http.MethodPost, "/api/batchRoutes", body)
	require.Equal(t, http.StatusOK, rec.Code)

	items := resp["data"].([]interface{})
	require.Len(t, items, 2)
	assert.NotNil(t, items[0].(map[string]interface{})["route"])
	errBody := items[1].(map[string]interface{})["error"].(map[string]interface{})
	assert.Equal(t, http.StatusText(http.StatusBadRequest), errBody["code"])

	t.Run("empty batch", func(t *testing.T) {
		rec, _ := do(t, router, http.MethodPost, "/api/batchRoutes", `{"requests":[]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVehicles(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	rec, resp := do(t, router, http.MethodGet, "/api/vehicles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := resp["data"].([]interface{})
	assert.Len(t, list, len(vehicle.CatalogSpecs()))
	first := list[0].(map[string]interface{})
	assert.NotNil(t, first["spec"])
	assert.NotNil(t, first["capability"])
}
