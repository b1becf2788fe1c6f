package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidFeature = New(
		"INVALID_FEATURE",
		"Feature geometry or metadata is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level",
		http.StatusBadRequest,
	)

	ErrUnknownBasemap = New(
		"UNKNOWN_BASEMAP",
		"Unknown basemap",
		http.StatusBadRequest,
	)

	ErrNotAPoint = New(
		"NOT_A_POINT",
		"Analysis requires a point feature",
		http.StatusUnprocessableEntity,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found",
		http.StatusNotFound,
	)

	ErrFeatureNotFound = New(
		"FEATURE_NOT_FOUND",
		"Feature not found",
		http.StatusNotFound,
	)

	ErrDraftNotFound = New(
		"DRAFT_NOT_FOUND",
		"Draft not found",
		http.StatusNotFound,
	)

	ErrDraftClosed = New(
		"DRAFT_CLOSED",
		"Draft already saved or discarded",
		http.StatusConflict,
	)

	ErrLocationUnavailable = New(
		"LOCATION_UNAVAILABLE",
		"Geolocation tidak tersedia",
		http.StatusUnprocessableEntity,
	)

	ErrLocationFailed = New(
		"LOCATION_FAILED",
		"Gagal mendapatkan lokasi",
		http.StatusGatewayTimeout,
	)

	ErrRouteFailed = New(
		"ROUTE_FAILED",
		"Gagal menghitung rute",
		http.StatusBadGateway,
	)

	ErrRouteInFlight = New(
		"ROUTE_IN_FLIGHT",
		"Route request already in progress",
		http.StatusConflict,
	)

	ErrLayoutNotFound = New(
		"LAYOUT_NOT_FOUND",
		"Layout has not been exported yet",
		http.StatusNotFound,
	)

	ErrStorageError = New(
		"STORAGE_ERROR",
		"Session storage operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
