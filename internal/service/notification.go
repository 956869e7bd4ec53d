package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/global-express/whatsapp-notifier/internal/domain"
	"github.com/global-express/whatsapp-notifier/internal/middleware"
)

// Options holds the immutable addressing used for every dispatch
type Options struct {
	// From is the provider-side sender address
	From string
	// DefaultRecipient receives generic and appointment notifications
	DefaultRecipient string
	// TrackingBaseURL prefixes delivery tracking links
	TrackingBaseURL string
}

// DispatchRecorder records dispatch outcomes
type DispatchRecorder interface {
	RecordDispatch(kind domain.Kind, status domain.DispatchStatus, duration time.Duration)
}

// NotificationService renders notifications and hands them to the sender
type NotificationService struct {
	sender            domain.Sender
	opts              Options
	logger            *slog.Logger
	metrics           DispatchRecorder
	tracer            trace.Tracer
	dispatchBroadcast func(event domain.DispatchEvent)
}

// NewNotificationService creates a new NotificationService. metrics may be nil.
func NewNotificationService(
	sender domain.Sender,
	opts Options,
	logger *slog.Logger,
	metrics DispatchRecorder,
) *NotificationService {
	return &NotificationService{
		sender:  sender,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("whatsapp-notifier/service"),
	}
}

// SetDispatchBroadcast sets the function to publish dispatch outcomes
func (s *NotificationService) SetDispatchBroadcast(fn func(event domain.DispatchEvent)) {
	s.dispatchBroadcast = fn
}

// SendMessage forwards a generic message to the default recipient
func (s *NotificationService) SendMessage(ctx context.Context, req domain.MessageRequest) (*domain.DispatchResult, error) {
	to, err := s.defaultRecipient()
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, domain.KindMessage, to, req.Render())
}

// NotifyAppointment sends an appointment summary to the default recipient
func (s *NotificationService) NotifyAppointment(ctx context.Context, appt domain.Appointment) (*domain.DispatchResult, error) {
	to, err := s.defaultRecipient()
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, domain.KindAppointment, to, appt.Render())
}

// NotifyDelivery sends a tracking message to the customer's number
func (s *NotificationService) NotifyDelivery(ctx context.Context, req domain.DeliveryRequest) (*domain.DispatchResult, error) {
	return s.dispatch(ctx, domain.KindDelivery, req.Recipient(), req.Render(s.opts.TrackingBaseURL))
}

func (s *NotificationService) defaultRecipient() (string, error) {
	if s.opts.DefaultRecipient == "" {
		return "", domain.ErrNotConfigured
	}
	return domain.WhatsAppAddress(s.opts.DefaultRecipient), nil
}

// dispatch makes the single provider call. Failures are returned
// unclassified; the HTTP layer owns the caller-facing text.
func (s *NotificationService) dispatch(ctx context.Context, kind domain.Kind, to, body string) (*domain.DispatchResult, error) {
	if s.opts.From == "" {
		return nil, domain.ErrNotConfigured
	}

	// The inbound request may go away; the provider timeout bounds the send.
	ctx = context.WithoutCancel(ctx)
	ctx, span := s.tracer.Start(ctx, "notification.dispatch",
		trace.WithAttributes(attribute.String("notification.kind", string(kind))),
	)
	defer span.End()

	logger := s.logger.With(
		"kind", kind,
		"to", to,
		"correlation_id", middleware.GetCorrelationID(ctx),
	)

	start := time.Now()

	receipt, err := s.sender.Send(ctx, &domain.OutboundMessage{
		From: domain.WhatsAppAddress(s.opts.From),
		To:   to,
		Body: body,
	})
	duration := time.Since(start)

	if err != nil {
		var providerErr domain.ProviderError
		if errors.As(err, &providerErr) {
			logger.Error("provider rejected message",
				"provider_status", providerErr.StatusCode,
				"provider_code", providerErr.Code,
				"error", providerErr.Message,
			)
		} else {
			logger.Error("unexpected dispatch failure", "error", err)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		s.record(kind, domain.DispatchFailed, duration)
		s.broadcast(domain.DispatchEvent{Kind: kind, To: to, Status: domain.DispatchFailed, Error: err.Error()})
		return nil, err
	}

	logger.Info("message sent",
		"message_sid", receipt.SID,
		"provider_status", receipt.Status,
		"duration_ms", duration.Milliseconds(),
	)

	s.record(kind, domain.DispatchSent, duration)
	s.broadcast(domain.DispatchEvent{Kind: kind, To: to, Status: domain.DispatchSent, MessageSID: receipt.SID})
	return &domain.DispatchResult{ProviderMessageID: receipt.SID, To: to}, nil
}

func (s *NotificationService) record(kind domain.Kind, status domain.DispatchStatus, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordDispatch(kind, status, d)
	}
}

func (s *NotificationService) broadcast(event domain.DispatchEvent) {
	if s.dispatchBroadcast == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.dispatchBroadcast(event)
}
