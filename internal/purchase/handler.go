package purchase

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/thescrapshop/backend/internal/notify"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// HandleReport accepts a manual purchase report and forwards it to the
// webhook notifier.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string      `json:"username"`
		Item     string      `json:"item"`
		Price    interface{} `json:"price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.service.Record(r.Context(), req.Username, req.Item, req.Price)
	if err != nil {
		if IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		switch {
		case errors.Is(err, notify.ErrNotConfigured):
			log.Println("Discord webhook URL not configured")
			h.respondError(w, http.StatusInternalServerError, "Discord webhook not configured")
		case errors.Is(err, notify.ErrTimeout):
			log.Println("Discord webhook request timed out")
			h.respondError(w, http.StatusInternalServerError, "Discord notification timeout")
		default:
			log.Printf("Discord webhook request failed: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to send Discord notification")
		}
		return
	}

	log.Printf("Purchase notification sent successfully for %s - %s - $%s",
		report.Username, report.Item, report.Price.StringFixed(2))
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Purchase recorded and Discord notification sent!",
		"data":    report,
	})
}
