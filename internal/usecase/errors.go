package usecase

import (
	stderrors "errors"

	"github.com/map-layout-service/internal/analysis"
	"github.com/map-layout-service/internal/geometry"
	"github.com/map-layout-service/internal/layout"
	"github.com/map-layout-service/internal/location"
	"github.com/map-layout-service/internal/mapview"
	"github.com/map-layout-service/internal/pkg/errors"
	"github.com/map-layout-service/internal/session"
)

// domainErrors - соответствие ошибок доменных пакетов ошибкам API
var domainErrors = []struct {
	err    error
	appErr *errors.AppError
}{
	{session.ErrSessionNotFound, errors.ErrSessionNotFound},
	{geometry.ErrInvalidFeature, errors.ErrInvalidFeature},
	{geometry.ErrDraftNotFound, errors.ErrDraftNotFound},
	{geometry.ErrDraftClosed, errors.ErrDraftClosed},
	{mapview.ErrInvalidCoordinates, errors.ErrInvalidCoordinates},
	{mapview.ErrInvalidZoom, errors.ErrInvalidZoom},
	{mapview.ErrUnknownBasemap, errors.ErrUnknownBasemap},
	{location.ErrInvalidPosition, errors.ErrInvalidCoordinates},
	{analysis.ErrInvalidRadius, errors.ErrInvalidRadius},
	{analysis.ErrNotAPoint, errors.ErrNotAPoint},
	{analysis.ErrRouteInFlight, errors.ErrRouteInFlight},
	{analysis.ErrLocationUnavailable, errors.ErrLocationUnavailable},
	{analysis.ErrLocationFailed, errors.ErrLocationFailed},
	{analysis.ErrRouteFailed, errors.ErrRouteFailed},
	{layout.ErrLayoutNotFound, errors.ErrLayoutNotFound},
}

// mapError переводит ошибку доменного пакета в AppError.
// Ошибки с подробностями сохраняют текст причины в details.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	for _, m := range domainErrors {
		if stderrors.Is(err, m.err) {
			if err.Error() != m.err.Error() {
				return m.appErr.WithDetails(map[string]interface{}{"reason": err.Error()})
			}
			return m.appErr
		}
	}
	return errors.ErrInternalServer
}
