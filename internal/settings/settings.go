// Package settings resolves tenant-level configuration the checkout flow
// needs at runtime, such as the restaurant's WhatsApp number.
package settings

import (
	"context"
	"errors"

	apperrors "github.com/jalmosquera/digitalletter/pkg/errors"
)

// Provider resolves runtime settings for the restaurant.
type Provider interface {
	// WhatsAppPhone returns the restaurant's WhatsApp number in E.164 form.
	WhatsAppPhone(ctx context.Context) (string, error)
}

// Static serves settings fixed at startup from configuration.
type Static struct {
	whatsAppPhone string
}

// NewStatic creates a provider that always returns the configured values.
func NewStatic(whatsAppPhone string) *Static {
	return &Static{whatsAppPhone: whatsAppPhone}
}

// WhatsAppPhone returns the configured WhatsApp number.
func (s *Static) WhatsAppPhone(ctx context.Context) (string, error) {
	if s.whatsAppPhone == "" {
		return "", apperrors.Internal(errors.New("whatsapp phone is not configured"))
	}
	return s.whatsAppPhone, nil
}
