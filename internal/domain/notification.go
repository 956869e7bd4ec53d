package domain

import (
	"fmt"
	"strings"
)

// Kind identifies which endpoint variant produced a notification
type Kind string

const (
	KindMessage     Kind = "message"
	KindAppointment Kind = "appointment"
	KindDelivery    Kind = "delivery"
)

// WhatsAppPrefix is the provider's addressing tag for WhatsApp recipients.
const WhatsAppPrefix = "whatsapp:"

// WhatsAppAddress normalizes a raw phone number into the provider's
// addressing scheme. The prefix is present exactly once in the result,
// whatever case the caller used for it.
func WhatsAppAddress(raw string) string {
	return WhatsAppPrefix + BareNumber(raw)
}

// BareNumber returns raw without surrounding spaces or the WhatsApp prefix.
func BareNumber(raw string) string {
	addr := strings.TrimSpace(raw)
	if len(addr) >= len(WhatsAppPrefix) && strings.EqualFold(addr[:len(WhatsAppPrefix)], WhatsAppPrefix) {
		addr = strings.TrimSpace(addr[len(WhatsAppPrefix):])
	}
	return addr
}

// MessageRequest is the generic passthrough payload. Only the key is
// required: an empty message is forwarded as is.
type MessageRequest struct {
	Message *string `json:"message" validate:"required"`
}

// Render returns the message text unchanged.
func (r MessageRequest) Render() string {
	if r.Message == nil {
		return ""
	}
	return *r.Message
}

// Appointment defaults, applied when a field is absent from the payload.
const (
	DefaultAppointmentID   = "N/A"
	DefaultCustomerName    = "Inconnu"
	DefaultDate            = "Non spécifiée"
	DefaultTime            = "Non spécifiée"
	DefaultReason          = "Pas de motif"
	DefaultAppointmentStat = "pending"
)

// AppointmentRequest is the appointment update payload. Every field is
// optional; Resolve fills absent ones from the defaults table.
type AppointmentRequest struct {
	AppointmentID *string `json:"appointmentId,omitempty" example:"RDV-42"`
	CustomerName  *string `json:"customerName,omitempty" example:"Awa Ndiaye"`
	Date          *string `json:"date,omitempty" example:"2025-06-12"`
	Time          *string `json:"time,omitempty" example:"14:30"`
	Reason        *string `json:"reason,omitempty" example:"Consultation"`
	Status        *string `json:"status,omitempty" example:"confirmed"`
}

// Appointment is a fully populated appointment update
type Appointment struct {
	AppointmentID string `json:"appointmentId"`
	CustomerName  string `json:"customerName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
}

// Resolve substitutes defaults for absent fields.
func (r AppointmentRequest) Resolve() Appointment {
	return Appointment{
		AppointmentID: valueOr(r.AppointmentID, DefaultAppointmentID),
		CustomerName:  valueOr(r.CustomerName, DefaultCustomerName),
		Date:          valueOr(r.Date, DefaultDate),
		Time:          valueOr(r.Time, DefaultTime),
		Reason:        valueOr(r.Reason, DefaultReason),
		Status:        valueOr(r.Status, DefaultAppointmentStat),
	}
}

func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

const appointmentTemplate = `📅 Mise à jour de votre rendez-vous

Statut : %s
Client : %s
Date : %s à %s
Motif : %s
Référence : %s`

// Render builds the appointment summary text.
func (a Appointment) Render() string {
	return fmt.Sprintf(appointmentTemplate,
		a.Status,
		a.CustomerName,
		a.Date,
		a.Time,
		a.Reason,
		a.AppointmentID,
	)
}

// DeliveryRequest is the delivery tracking payload
type DeliveryRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required" example:"+237650892780"`
	CommandID   string `json:"commandId" validate:"required" example:"CMD-TEST-001"`
}

// Recipient returns the normalized WhatsApp address for the delivery.
func (r DeliveryRequest) Recipient() string {
	return WhatsAppAddress(r.PhoneNumber)
}

// TrackingURL builds the public tracking link for the command.
func (r DeliveryRequest) TrackingURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + r.CommandID + "/"
}

const deliveryTemplate = `Bonjour %s,
votre commande est en cours de livraison.
Vous pouvez la suivre ici : %s
Merci de faire confiance à Global Express!`

// Render builds the delivery tracking text.
func (r DeliveryRequest) Render(trackingBaseURL string) string {
	return fmt.Sprintf(deliveryTemplate, BareNumber(r.PhoneNumber), r.TrackingURL(trackingBaseURL))
}

// DispatchResult is the outcome of a successful remote send
type DispatchResult struct {
	ProviderMessageID string `json:"provider_message_id"`
	To                string `json:"to"`
}
