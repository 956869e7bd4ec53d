package domain

import (
	"context"
	"time"
)

// OutboundMessage represents a request to the external messaging provider
type OutboundMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// SendReceipt represents a response from the external messaging provider
type SendReceipt struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Sender defines the interface for sending messages through the provider
type Sender interface {
	// Send makes exactly one attempt and blocks until the provider answers
	Send(ctx context.Context, msg *OutboundMessage) (*SendReceipt, error)
}

// DispatchStatus is the outcome label of a dispatch attempt
type DispatchStatus string

const (
	DispatchSent   DispatchStatus = "sent"
	DispatchFailed DispatchStatus = "failed"
)

// DispatchEvent is published once per dispatch attempt for live observers
type DispatchEvent struct {
	Kind       Kind           `json:"kind"`
	To         string         `json:"to"`
	Status     DispatchStatus `json:"status"`
	MessageSID string         `json:"message_sid,omitempty"`
	Error      string         `json:"error,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
