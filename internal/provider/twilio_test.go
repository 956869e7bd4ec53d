package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-express/whatsapp-notifier/internal/config"
	"github.com/global-express/whatsapp-notifier/internal/domain"
)

func testConfig(baseURL string) config.TwilioConfig {
	return config.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
	}
}

func testMessage() *domain.OutboundMessage {
	return &domain.OutboundMessage{
		From: "whatsapp:+14155238886",
		To:   "whatsapp:+237650892780",
		Body: "Bonjour",
	}
}

func TestNewTwilioClient_Unconfigured(t *testing.T) {
	client, err := NewTwilioClient(config.TwilioConfig{AccountSID: "AC123"})

	assert.Nil(t, client)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestTwilioClient_SendSuccess(t *testing.T) {
	var gotPath, gotUser, gotPass, gotTo, gotFrom, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		assert.NoError(t, r.ParseForm())
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123","status":"queued"}`))
	}))
	defer server.Close()

	client, err := NewTwilioClient(testConfig(server.URL + "/"))
	require.NoError(t, err)

	receipt, err := client.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, "SM123", receipt.SID)
	assert.Equal(t, "queued", receipt.Status)
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "whatsapp:+237650892780", gotTo)
	assert.Equal(t, "whatsapp:+14155238886", gotFrom)
	assert.Equal(t, "Bonjour", gotBody)
}

func TestTwilioClient_SendProviderError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{
			name:       "twilio error document",
			status:     http.StatusBadRequest,
			body:       `{"code":21211,"message":"invalid number","more_info":"https://www.twilio.com/docs/errors/21211","status":400}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   21211,
			wantMsg:    "invalid number",
		},
		{
			name:       "document without message falls back to status text",
			status:     http.StatusUnauthorized,
			body:       `{"code":20003,"status":401}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   20003,
			wantMsg:    "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewTwilioClient(testConfig(server.URL))
			require.NoError(t, err)

			receipt, err := client.Send(context.Background(), testMessage())
			assert.Nil(t, receipt)

			var pe domain.ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantStatus, pe.StatusCode)
			assert.Equal(t, tt.wantCode, pe.Code)
			assert.Equal(t, tt.wantMsg, pe.Message)
		})
	}
}

func TestTwilioClient_SendUndecodableError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client, err := NewTwilioClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Send(context.Background(), testMessage())
	require.Error(t, err)

	var pe domain.ProviderError
	assert.False(t, errors.As(err, &pe), "a body that is not a twilio error document is unexpected")
}

func TestNewTwilioClient_InvalidBaseURL(t *testing.T) {
	client, err := NewTwilioClient(testConfig("not a url"))

	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestBaseURLTransport(t *testing.T) {
	var gotHost, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Host
		gotPath = r.URL.Path
	}))
	defer server.Close()

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	httpClient := &http.Client{Transport: &baseURLTransport{target: target, next: http.DefaultTransport}}
	resp, err := httpClient.Get(DefaultBaseURL + "/2010-04-01/Accounts/AC123/Messages.json")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, target.Host, gotHost)
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
}

func TestTwilioClient_SendNetworkError(t *testing.T) {
	client, err := NewTwilioClient(testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)

	_, err = client.Send(context.Background(), testMessage())
	require.Error(t, err)

	var pe domain.ProviderError
	assert.False(t, errors.As(err, &pe), "transport failures are not provider errors")
}

func TestTwilioClient_SendMalformedSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"queued"}`))
	}))
	defer server.Close()

	client, err := NewTwilioClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing message sid")
}

func TestTwilioClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Timeout = 20 * time.Millisecond
	client, err := NewTwilioClient(cfg)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), testMessage())
	assert.Error(t, err)
}
