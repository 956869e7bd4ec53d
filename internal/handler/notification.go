package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/global-express/whatsapp-notifier/internal/domain"
	"github.com/global-express/whatsapp-notifier/internal/middleware"
)

// Notifier renders and dispatches notifications
type Notifier interface {
	SendMessage(ctx context.Context, req domain.MessageRequest) (*domain.DispatchResult, error)
	NotifyAppointment(ctx context.Context, appt domain.Appointment) (*domain.DispatchResult, error)
	NotifyDelivery(ctx context.Context, req domain.DeliveryRequest) (*domain.DispatchResult, error)
}

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notifier Notifier
	validate *validator.Validate
	logger   *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler. A nil notifier
// means the provider is not configured: every notification request is then
// refused with a configuration error.
func NewNotificationHandler(notifier Notifier, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
	}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/send-whatsapp", h.SendMessage)
	r.Post("/notify-appointment", h.NotifyAppointment)
	r.Post("/notify-delivery", h.NotifyDelivery)
}

// MessageSentResponse is returned when a generic message was accepted
type MessageSentResponse struct {
	Status     string `json:"status" example:"success"`
	MessageSID string `json:"message_sid" example:"SM123"`
}

// MessageFailedResponse is returned when a generic message could not be sent
type MessageFailedResponse struct {
	Status       string `json:"status" example:"error"`
	ErrorMessage string `json:"error_message"`
}

// BadRequestResponse is returned for an invalid generic message request
type BadRequestResponse struct {
	Error string `json:"error"`
}

// NotificationResponse is returned by the appointment and delivery endpoints
type NotificationResponse struct {
	Status    string `json:"status" example:"success"`
	Message   string `json:"message"`
	TwilioSID string `json:"twilio_sid,omitempty" example:"SM123"`
	SentTo    string `json:"sent_to,omitempty" example:"whatsapp:+237650892780"`
	CommandID string `json:"command_id,omitempty" example:"CMD-TEST-001"`
}

// SendMessage forwards a free-form message
// @Summary Send WhatsApp message
// @Description Forward a free-form text to the configured WhatsApp number
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body domain.MessageRequest true "Message"
// @Success 200 {object} MessageSentResponse
// @Failure 400 {object} BadRequestResponse
// @Failure 500 {object} MessageFailedResponse
// @Router /send-whatsapp [post]
func (h *NotificationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	if h.notifier == nil {
		JSON(w, http.StatusInternalServerError, MessageFailedResponse{Status: statusError, ErrorMessage: configErrorMessage})
		return
	}

	var req domain.MessageRequest
	if err := h.decode(r, &req); err != nil {
		JSON(w, http.StatusBadRequest, BadRequestResponse{Error: clientErrorMessage(err)})
		return
	}

	result, err := h.notifier.SendMessage(r.Context(), req)
	if err != nil {
		JSON(w, http.StatusInternalServerError, MessageFailedResponse{Status: statusError, ErrorMessage: h.failureMessage(r, err)})
		return
	}

	JSON(w, http.StatusOK, MessageSentResponse{Status: statusSuccess, MessageSID: result.ProviderMessageID})
}

// NotifyAppointment sends an appointment update summary
// @Summary Notify appointment update
// @Description Send an appointment summary; absent fields are defaulted
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body domain.AppointmentRequest true "Appointment"
// @Success 200 {object} NotificationResponse
// @Failure 400 {object} NotificationResponse
// @Failure 500 {object} NotificationResponse
// @Router /notify-appointment [post]
func (h *NotificationHandler) NotifyAppointment(w http.ResponseWriter, r *http.Request) {
	if h.notifier == nil {
		JSON(w, http.StatusInternalServerError, NotificationResponse{Status: statusError, Message: configErrorMessage})
		return
	}

	var req domain.AppointmentRequest
	if err := h.decode(r, &req); err != nil {
		JSON(w, http.StatusBadRequest, NotificationResponse{Status: statusError, Message: clientErrorMessage(err)})
		return
	}

	result, err := h.notifier.NotifyAppointment(r.Context(), req.Resolve())
	if err != nil {
		JSON(w, http.StatusInternalServerError, NotificationResponse{Status: statusError, Message: h.failureMessage(r, err)})
		return
	}

	JSON(w, http.StatusOK, NotificationResponse{
		Status:    statusSuccess,
		Message:   "Notification de rendez-vous envoyée avec succès.",
		TwilioSID: result.ProviderMessageID,
	})
}

// NotifyDelivery sends a delivery tracking link to the customer
// @Summary Notify delivery
// @Description Send a tracking link for a command to the customer's WhatsApp number
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body domain.DeliveryRequest true "Delivery"
// @Success 200 {object} NotificationResponse
// @Failure 400 {object} NotificationResponse
// @Failure 500 {object} NotificationResponse
// @Router /notify-delivery [post]
func (h *NotificationHandler) NotifyDelivery(w http.ResponseWriter, r *http.Request) {
	if h.notifier == nil {
		JSON(w, http.StatusInternalServerError, NotificationResponse{Status: statusError, Message: configErrorMessage})
		return
	}

	var req domain.DeliveryRequest
	if err := h.decode(r, &req); err != nil {
		JSON(w, http.StatusBadRequest, NotificationResponse{Status: statusError, Message: clientErrorMessage(err)})
		return
	}

	result, err := h.notifier.NotifyDelivery(r.Context(), req)
	if err != nil {
		JSON(w, http.StatusInternalServerError, NotificationResponse{Status: statusError, Message: h.failureMessage(r, err)})
		return
	}

	JSON(w, http.StatusOK, NotificationResponse{
		Status:    statusSuccess,
		Message:   "Notification de livraison envoyée avec succès.",
		TwilioSID: result.ProviderMessageID,
		SentTo:    result.To,
		CommandID: req.CommandID,
	})
}

func (h *NotificationHandler) decode(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return validateStruct(h.validate, v)
}

// failureMessage maps a dispatch error to caller-safe text
func (h *NotificationHandler) failureMessage(r *http.Request, err error) string {
	var providerErr domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return configErrorMessage
	case errors.As(err, &providerErr):
		return providerErr.Message
	default:
		h.logger.Error("notification request failed",
			"path", r.URL.Path,
			"error", err,
			"correlation_id", middleware.GetCorrelationID(r.Context()),
		)
		return internalErrorMessage
	}
}
