package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Relay defaults applied when the client leaves fields empty
const (
	DefaultFromName = "App Security Cam"
	DefaultSubject  = "Nova captura do App Security Cam"
)

// Recipients accepts either a single address or a list on the wire
type Recipients []string

func (r *Recipients) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Recipients{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("to must be an email or a list of emails")
	}
	*r = many
	return nil
}

// ParseRecipients splits a comma separated list of addresses
func ParseRecipients(value string) Recipients {
	var out Recipients
	for _, part := range strings.Split(value, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Location is an optional capture position. When present both
// coordinates are required; an empty object is not a position.
type Location struct {
	Lat      *float64 `json:"lat" validate:"required"`
	Lon      *float64 `json:"lon" validate:"required"`
	Accuracy *float64 `json:"accuracy,omitempty"`
}

// NewLocation builds a Location from a coordinate pair
func NewLocation(lat, lon float64) *Location {
	return &Location{Lat: &lat, Lon: &lon}
}

// CapturePayload is the JSON body accepted by the relay
type CapturePayload struct {
	To          Recipients `json:"to" validate:"required,min=1,dive,email"`
	FromName    string     `json:"fromName,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	CreatedAt   string     `json:"createdAt,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Path        string     `json:"path,omitempty"`
	Location    *Location  `json:"location,omitempty"`
	ImageBase64 string     `json:"imageBase64" validate:"required,min=10"`
	Filename    string     `json:"filename,omitempty"`
	Token       string     `json:"token" validate:"required,min=10"`
}

// ApplyDefaults fills optional fields the way the relay documents them
func (p *CapturePayload) ApplyDefaults(now time.Time) {
	if strings.TrimSpace(p.FromName) == "" {
		p.FromName = DefaultFromName
	}
	if strings.TrimSpace(p.Subject) == "" {
		p.Subject = DefaultSubject
	}
	if strings.TrimSpace(p.Filename) == "" {
		p.Filename = fmt.Sprintf("capture_%d.jpg", now.UnixMilli())
	}
}

// Attachment is a file carried by an Email
type Attachment struct {
	Filename string
	Content  []byte
}

// Email is what the relay hands to the provider
type Email struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// DeliveryStatus is the outcome of a relay attempt
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// Delivery is one row of the relay delivery log
type Delivery struct {
	ID         string         `json:"id"`
	Recipients []string       `json:"recipients"`
	Subject    string         `json:"subject"`
	Filename   string         `json:"filename"`
	MessageID  string         `json:"messageId,omitempty"`
	Status     DeliveryStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
