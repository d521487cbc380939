package api

import (
	"net/http"

	"github.com/parceldesk/parceldesk-api/internal/api/shared"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/service"
)

// MerchantHandler handles merchant management API requests.
type MerchantHandler struct {
	merchantService *service.MerchantService
}

// NewMerchantHandler creates a MerchantHandler.
func NewMerchantHandler(merchantService *service.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

// Create handles POST /api/merchants.
func (h *MerchantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMerchantRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	merchant, err := h.merchantService.Create(r.Context(), service.CreateMerchantInput{
		Email:             req.Email,
		Name:              req.Name,
		Phone:             req.Phone,
		DeliverFee:        req.DeliverFee,
		Bank:              req.Bank,
		BankAccountName:   req.BankAccountName,
		BankAccountNumber: req.BankAccountNumber,
		Address:           req.Address,
		MapURL:            req.MapURL,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, merchant)
}

// List handles GET /api/merchants.
func (h *MerchantHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.merchantService.List(r.Context(), parseListFilter(r))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /api/merchants/{id}. The response includes the
// merchant's packages.
func (h *MerchantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	detail, err := h.merchantService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

// Update handles PATCH /api/merchants/{id}.
func (h *MerchantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdateMerchantRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	input := service.UpdateMerchantInput{
		Email:             req.Email,
		Name:              req.Name,
		Phone:             req.Phone,
		DeliverFee:        req.DeliverFee,
		Bank:              req.Bank,
		BankAccountName:   req.BankAccountName,
		BankAccountNumber: req.BankAccountNumber,
		Address:           req.Address,
		MapURL:            req.MapURL,
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		input.Status = &status
	}

	merchant, err := h.merchantService.Update(r.Context(), id, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, merchant)
}

// Delete handles DELETE /api/merchants/{id}.
func (h *MerchantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.merchantService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
