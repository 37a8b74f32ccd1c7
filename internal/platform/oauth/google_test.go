package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGoogleProvider(t *testing.T) {
	p := NewGoogleProvider("client-id", "client-secret", "https://app.example.com/oauth/callback")

	assert.Equal(t, "google", p.Name())
	assert.Equal(t, "client-id", p.config.ClientID)
	assert.Equal(t, "https://app.example.com/oauth/callback", p.config.RedirectURL)
	assert.Contains(t, p.config.Scopes, "email")
}

func TestAuthURL(t *testing.T) {
	p := NewGoogleProvider("client-id", "client-secret", "https://app.example.com/oauth/callback")

	url := p.AuthURL("random-state")
	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "state=random-state")
	assert.Contains(t, url, "client_id=client-id")
}
