package api

import (
	"net/http"

	"github.com/parceldesk/parceldesk-api/internal/api/shared"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/service"
)

// DriverHandler handles driver management API requests.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// Create handles POST /api/drivers.
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDriverRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	driver, err := h.driverService.Create(r.Context(), service.CreateDriverInput{
		Email:             req.Email,
		Name:              req.Name,
		Phone:             req.Phone,
		DeliverFee:        req.DeliverFee,
		DriverStatus:      domain.DriverStatus(req.DriverStatus),
		Bank:              req.Bank,
		BankAccountName:   req.BankAccountName,
		BankAccountNumber: req.BankAccountNumber,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, driver)
}

// List handles GET /api/drivers.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.driverService.List(r.Context(), parseListFilter(r))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /api/drivers/{id}. The response includes the packages
// currently referencing the driver.
func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	detail, err := h.driverService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

// Update handles PATCH /api/drivers/{id}.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdateDriverRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	input := service.UpdateDriverInput{
		Email:             req.Email,
		Name:              req.Name,
		Phone:             req.Phone,
		DeliverFee:        req.DeliverFee,
		Bank:              req.Bank,
		BankAccountName:   req.BankAccountName,
		BankAccountNumber: req.BankAccountNumber,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
	}
	if req.DriverStatus != nil {
		driverStatus := domain.DriverStatus(*req.DriverStatus)
		input.DriverStatus = &driverStatus
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		input.Status = &status
	}

	driver, err := h.driverService.Update(r.Context(), id, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, driver)
}

// Delete handles DELETE /api/drivers/{id}.
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.driverService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
