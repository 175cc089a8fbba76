package handler

import (
	"chatwire/backend/internal/auth"
	"chatwire/backend/internal/gateway"
	"chatwire/backend/internal/storage"
)

// Handler carries the dependencies every HTTP endpoint needs.
type Handler struct {
	Gateway  *gateway.Gateway
	Storage  storage.Storage
	Issuer   *auth.Issuer
	Verifier *auth.Verifier

	// ClientURL is the single origin allowed to open websocket
	// connections and receive CORS headers.
	ClientURL string
}

func NewHandler(g *gateway.Gateway, s storage.Storage, issuer *auth.Issuer, verifier *auth.Verifier, clientURL string) *Handler {
	return &Handler{
		Gateway:   g,
		Storage:   s,
		Issuer:    issuer,
		Verifier:  verifier,
		ClientURL: clientURL,
	}
}
