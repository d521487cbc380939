package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/parceldesk/parceldesk-api/internal/api/shared"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/service"
)

// PackageHandler handles package lifecycle API requests.
type PackageHandler struct {
	packageService *service.PackageService
}

// NewPackageHandler creates a PackageHandler.
func NewPackageHandler(packageService *service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// toCreateInput converts a validated request row; the uuid tag has
// already guaranteed MerchantID parses.
func toCreateInput(req CreatePackageRequest) service.CreatePackageInput {
	merchantID, _ := uuid.Parse(req.MerchantID)
	return service.CreatePackageInput{
		MerchantID:      merchantID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CODAmount:       req.CODAmount,
		DeliveryFee:     req.DeliveryFee,
	}
}

// Create handles POST /api/packages.
func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePackageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	pkg, err := h.packageService.Create(r.Context(), toCreateInput(req))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, pkg)
}

// BulkCreate handles POST /api/packages/bulk. The batch is atomic.
func (h *PackageHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req BulkCreatePackagesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	inputs := make([]service.CreatePackageInput, len(req.Packages))
	for i, row := range req.Packages {
		inputs[i] = toCreateInput(row)
	}

	pkgs, err := h.packageService.BulkCreate(r.Context(), inputs)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, pkgs)
}

// List handles GET /api/packages with status, merchant, driver,
// has_issue, and search filters.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePackageFilter(r)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	page, err := h.packageService.List(r.Context(), filter)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /api/packages/{id}.
func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	pkg, err := h.packageService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pkg)
}

// GetByNumber handles GET /api/packages/number/{number}, the lookup
// used when scanning a printed label.
func (h *PackageHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		HandleServiceError(w, r, fmt.Errorf("%w: number is required", domain.ErrValidation))
		return
	}

	pkg, err := h.packageService.GetByNumber(r.Context(), number)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pkg)
}

// Update handles PATCH /api/packages/{id}.
func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdatePackageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	pkg, err := h.packageService.Update(r.Context(), id, service.UpdatePackageInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CODAmount:       req.CODAmount,
		DeliveryFee:     req.DeliveryFee,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pkg)
}

// UpdateStatus handles PUT /api/packages/{id}/status.
func (h *PackageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdatePackageStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	pkg, err := h.packageService.UpdateStatus(r.Context(), id, domain.PackageStatus(req.Status))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pkg)
}

// AssignDriver handles PUT /api/packages/{id}/driver.
func (h *PackageHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req AssignDriverRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	driverID, _ := uuid.Parse(req.DriverID)
	pkg, err := h.packageService.AssignDriver(r.Context(), id, driverID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pkg)
}

// UnassignDriver handles DELETE /api/packages/{id}/driver.
func (h *PackageHandler) UnassignDriver(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	pkg, err := h.packageService.UnassignDriver(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pkg)
}

// FlagIssue handles PUT /api/packages/{id}/issue.
func (h *PackageHandler) FlagIssue(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req FlagIssueRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	pkg, err := h.packageService.FlagIssue(r.Context(), id, req.Note, req.ExtraFee)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pkg)
}

// Delete handles DELETE /api/packages/{id}.
func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.packageService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
