package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestWhatsAppAddress(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare number gets prefix", "+237650892780", "whatsapp:+237650892780"},
		{"prefixed number unchanged", "whatsapp:+237650892780", "whatsapp:+237650892780"},
		{"surrounding spaces trimmed", "  +33612345678 ", "whatsapp:+33612345678"},
		{"prefixed with spaces", " whatsapp:+33612345678", "whatsapp:+33612345678"},
		{"capitalised prefix", "WhatsApp:+237650892780", "whatsapp:+237650892780"},
		{"upper case prefix", "WHATSAPP:+237650892780", "whatsapp:+237650892780"},
		{"space after prefix", "whatsapp: +237650892780", "whatsapp:+237650892780"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WhatsAppAddress(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, strings.Count(strings.ToLower(got), WhatsAppPrefix))
		})
	}
}

func TestWhatsAppAddress_Idempotent(t *testing.T) {
	once := WhatsAppAddress("+237650892780")
	assert.Equal(t, once, WhatsAppAddress(once))
}

func TestAppointmentRequest_Resolve(t *testing.T) {
	t.Run("all fields absent use defaults", func(t *testing.T) {
		a := AppointmentRequest{}.Resolve()

		assert.Equal(t, "N/A", a.AppointmentID)
		assert.Equal(t, "Inconnu", a.CustomerName)
		assert.Equal(t, "Non spécifiée", a.Date)
		assert.Equal(t, "Non spécifiée", a.Time)
		assert.Equal(t, "Pas de motif", a.Reason)
		assert.Equal(t, "pending", a.Status)
	})

	t.Run("provided fields are kept verbatim", func(t *testing.T) {
		a := AppointmentRequest{
			AppointmentID: strPtr("RDV-42"),
			CustomerName:  strPtr("Awa"),
			Date:          strPtr("2025-06-12"),
			Time:          strPtr("14:30"),
			Reason:        strPtr("Contrôle"),
			Status:        strPtr("confirmed"),
		}.Resolve()

		assert.Equal(t, Appointment{
			AppointmentID: "RDV-42",
			CustomerName:  "Awa",
			Date:          "2025-06-12",
			Time:          "14:30",
			Reason:        "Contrôle",
			Status:        "confirmed",
		}, a)
	})

	t.Run("empty string is not absent", func(t *testing.T) {
		a := AppointmentRequest{Reason: strPtr("")}.Resolve()
		assert.Equal(t, "", a.Reason)
		assert.Equal(t, "Inconnu", a.CustomerName)
	})
}

func TestAppointment_Render(t *testing.T) {
	t.Run("defaults appear in text", func(t *testing.T) {
		text := AppointmentRequest{}.Resolve().Render()

		for _, want := range []string{"N/A", "Inconnu", "Non spécifiée à Non spécifiée", "Pas de motif", "pending"} {
			assert.Contains(t, text, want)
		}
		assert.Greater(t, strings.Count(text, "\n"), 3)
	})

	t.Run("values are not re-parsed", func(t *testing.T) {
		text := AppointmentRequest{CustomerName: strPtr("%s {{name}}")}.Resolve().Render()
		assert.Contains(t, text, "Client : %s {{name}}")
	})
}

func TestDeliveryRequest(t *testing.T) {
	req := DeliveryRequest{PhoneNumber: "+237650892780", CommandID: "CMD-TEST-001"}

	assert.Equal(t, "whatsapp:+237650892780", req.Recipient())
	assert.Equal(t, "https://client-global-express.web.app/CMD-TEST-001/",
		req.TrackingURL("https://client-global-express.web.app/"))

	text := req.Render("https://client-global-express.web.app")
	assert.Contains(t, text, "https://client-global-express.web.app/CMD-TEST-001/")
	assert.Contains(t, text, "Bonjour +237650892780")
	assert.Contains(t, text, "Global Express")
}

func TestDeliveryRequest_GreetsBareNumber(t *testing.T) {
	for _, phone := range []string{"+237650892780", "whatsapp:+237650892780", "WhatsApp:+237650892780"} {
		text := DeliveryRequest{PhoneNumber: phone, CommandID: "CMD-1"}.Render("https://client-global-express.web.app")
		assert.True(t, strings.HasPrefix(text, "Bonjour +237650892780,\n"), text)
		assert.NotContains(t, strings.ToLower(text), "bonjour whatsapp:")
	}
}

func TestBareNumber(t *testing.T) {
	assert.Equal(t, "+237650892780", BareNumber(" WhatsApp:+237650892780 "))
	assert.Equal(t, "+237650892780", BareNumber("+237650892780"))
	assert.Equal(t, "", BareNumber("whatsapp:"))
}

func TestMessageRequest_Render(t *testing.T) {
	assert.Equal(t, "hello\nworld", MessageRequest{Message: strPtr("hello\nworld")}.Render())
	assert.Equal(t, "", MessageRequest{Message: strPtr("")}.Render())
	assert.Equal(t, "", MessageRequest{}.Render())
}
