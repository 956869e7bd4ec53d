package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/global-express/whatsapp-notifier/internal/config"
	"github.com/global-express/whatsapp-notifier/internal/domain"
)

// DefaultBaseURL is the public Twilio REST endpoint
const DefaultBaseURL = "https://api.twilio.com"

// messageCreator is the slice of the Twilio API the relay uses
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioClient implements domain.Sender using the Twilio Messages API
type TwilioClient struct {
	api    messageCreator
	tracer trace.Tracer
}

// NewTwilioClient creates a new TwilioClient. It refuses to build a client
// without credentials.
func NewTwilioClient(cfg config.TwilioConfig) (*TwilioClient, error) {
	if !cfg.Configured() {
		return nil, domain.ErrNotConfigured
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" && base != DefaultBaseURL {
		target, err := url.Parse(base)
		if err != nil || target.Host == "" {
			return nil, fmt.Errorf("invalid twilio api url %q", cfg.BaseURL)
		}
		httpClient.Transport = &baseURLTransport{target: target, next: http.DefaultTransport}
	}

	restClient := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(cfg.AccountSID, cfg.AuthToken),
		HTTPClient:  httpClient,
	}
	restClient.SetAccountSid(cfg.AccountSID)

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{Client: restClient})

	return &TwilioClient{
		api:    rest.Api,
		tracer: otel.Tracer("whatsapp-notifier/provider"),
	}, nil
}

// Send creates one outbound message. There is no retry.
func (c *TwilioClient) Send(ctx context.Context, msg *domain.OutboundMessage) (*domain.SendReceipt, error) {
	_, span := c.tracer.Start(ctx, "twilio.send")
	defer span.End()
	span.SetAttributes(attribute.String("messaging.destination", msg.To))

	receipt, err := c.send(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("messaging.message_id", receipt.SID))
	return receipt, nil
}

func (c *TwilioClient) send(msg *domain.OutboundMessage) (*domain.SendReceipt, error) {
	params := &openapi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(msg.From)
	params.SetBody(msg.Body)

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			return nil, providerError(restErr)
		}
		return nil, fmt.Errorf("twilio request: %w", err)
	}

	if resp == nil || resp.Sid == nil || *resp.Sid == "" {
		return nil, fmt.Errorf("twilio response missing message sid")
	}

	receipt := &domain.SendReceipt{SID: *resp.Sid}
	if resp.Status != nil {
		receipt.Status = *resp.Status
	}
	return receipt, nil
}

func providerError(e *twilioclient.TwilioRestError) domain.ProviderError {
	msg := e.Message
	if strings.TrimSpace(msg) == "" {
		msg = http.StatusText(e.Status)
	}
	if strings.TrimSpace(msg) == "" {
		msg = fmt.Sprintf("twilio error %d", e.Code)
	}
	return domain.NewProviderError(e.Status, e.Code, msg)
}

// baseURLTransport sends every request to target instead of the public API
// host. The path built by the SDK is kept.
type baseURLTransport struct {
	target *url.URL
	next   http.RoundTripper
}

func (t *baseURLTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host
	return t.next.RoundTrip(out)
}
