package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parceldesk/parceldesk-api/internal/api/shared"
	"github.com/parceldesk/parceldesk-api/internal/service"
)

// SettingsHandler handles application settings API requests.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Create handles POST /api/settings.
func (h *SettingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSettingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	setting, err := h.settingsService.Create(r.Context(), service.CreateSettingInput{
		Key:         req.Key,
		Value:       req.Value,
		Category:    req.Category,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, setting)
}

// List handles GET /api/settings. With ?category= it narrows to one
// category; with ?format=object it returns the flattened key-value map.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("format") == "object" {
		obj, err := h.settingsService.GetAllAsObject(r.Context())
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, obj)
		return
	}

	if category := q.Get("category"); category != "" {
		settings, err := h.settingsService.GetByCategory(r.Context(), category)
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, settings)
		return
	}

	settings, err := h.settingsService.GetAll(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// Public handles GET /api/settings/public, the unauthenticated surface
// serving only public settings as a key-value map.
func (h *SettingsHandler) Public(w http.ResponseWriter, r *http.Request) {
	obj, err := h.settingsService.GetPublicAsObject(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, obj)
}

// Get handles GET /api/settings/{key}.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	setting, err := h.settingsService.GetByKey(r.Context(), key)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, setting)
}

// Update handles PATCH /api/settings/{key}.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req UpdateSettingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	setting, err := h.settingsService.Update(r.Context(), key, service.UpdateSettingInput{
		Value:       req.Value,
		Category:    req.Category,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, setting)
}

// Upsert handles PUT /api/settings.
func (h *SettingsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req CreateSettingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	setting, err := h.settingsService.Upsert(r.Context(), service.CreateSettingInput{
		Key:         req.Key,
		Value:       req.Value,
		Category:    req.Category,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, setting)
}

// Delete handles DELETE /api/settings/{key}.
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.settingsService.Delete(r.Context(), key); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
