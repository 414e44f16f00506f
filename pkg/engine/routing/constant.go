package routing

const (
	DEFAULT_MAX_ITERATIONS        = 50000
	DEFAULT_BACKWARD_RELAX_FACTOR = 1.4
	DEFAULT_DESTINATION_PENALTY   = 3.0

	// haversine meters are divided by this to get the heuristic estimate of both search directions
	HEURISTIC_DIVISOR = 100.0
)

// error markers of a RouteSummary
const (
	ERR_ROUTE_NOT_FOUND = "route_not_found"
	ERR_PATH_TOO_SHORT  = "path_too_short"
	ERR_MISSING_EDGE    = "missing_edge"
)
