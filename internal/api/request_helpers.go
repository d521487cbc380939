package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/api/shared"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrInvalidID, paramName)
	}
	return id, nil
}

// parseListFilter reads page, limit, and search query parameters.
// Malformed numbers fall through to the store defaults via Normalize.
func parseListFilter(r *http.Request) store.ListFilter {
	q := r.URL.Query()

	filter := store.ListFilter{Search: q.Get("search")}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	return filter
}

// parsePackageFilter reads the package list's query parameters on top of
// the common pagination ones.
func parsePackageFilter(r *http.Request) (store.PackageFilter, error) {
	q := r.URL.Query()
	filter := store.PackageFilter{ListFilter: parseListFilter(r)}

	if raw := q.Get("status"); raw != "" {
		status := domain.PackageStatus(raw)
		if !status.Valid() {
			return filter, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, raw)
		}
		filter.Status = &status
	}
	if raw := q.Get("merchant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: merchant_id", domain.ErrInvalidID)
		}
		filter.MerchantID = &id
	}
	if raw := q.Get("driver_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: driver_id", domain.ErrInvalidID)
		}
		filter.DriverID = &id
	}
	if raw := q.Get("has_issue"); raw != "" {
		hasIssue, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: has_issue must be a boolean", domain.ErrValidation)
		}
		filter.HasIssue = &hasIssue
	}
	return filter, nil
}

// HandleServiceError maps a service-layer error onto the standard error
// response, logging the original error in redacted form.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
