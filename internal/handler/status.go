package handler

import "net/http"

// StatusInfo describes the relay's configuration, never its secrets
type StatusInfo struct {
	Configured          bool   `json:"configured"`
	Sender              string `json:"sender,omitempty"`
	DefaultRecipientSet bool   `json:"default_recipient_set"`
	Subscribers         int    `json:"subscribers"`
}

// StatusHandler serves GET /status
type StatusHandler struct {
	info StatusInfo
	hub  *WebSocketHub
}

// NewStatusHandler creates a new StatusHandler. hub may be nil.
func NewStatusHandler(info StatusInfo, hub *WebSocketHub) *StatusHandler {
	return &StatusHandler{info: info, hub: hub}
}

// Status reports configuration state and live subscriber count
// @Summary Relay status
// @Tags health
// @Produce json
// @Success 200 {object} StatusInfo
// @Router /status [get]
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	info := h.info
	if h.hub != nil {
		info.Subscribers = h.hub.GetClientCount()
	}
	JSON(w, http.StatusOK, info)
}
