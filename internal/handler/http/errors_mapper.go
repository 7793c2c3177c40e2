package http

import (
	"errors"
	"net/http"

	"github.com/zerovault/zerovault/internal/service"
	"github.com/zerovault/zerovault/internal/session"
	"github.com/zerovault/zerovault/internal/store"
)

// errorStatusMap translates service and store sentinels into HTTP statuses at
// the transport edge. Anything unmapped is an internal error and surfaces
// generically, never with storage detail.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidKDFParams:    http.StatusBadRequest,
	service.ErrInvalidBlobName:     http.StatusBadRequest,
	service.ErrInvalidVersion:      http.StatusBadRequest,
	service.ErrPageLimitOutOfRange: http.StatusBadRequest,

	service.ErrUnauthorized:    http.StatusUnauthorized,
	session.ErrInvalidSession:  http.StatusUnauthorized,
	store.ErrNoAccountWasFound: http.StatusUnauthorized,

	store.ErrIdentifierAlreadyExists: http.StatusConflict,
	store.ErrBlobNotFound:            http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
