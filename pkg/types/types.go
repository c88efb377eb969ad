package types

import (
	"github.com/ethereum/go-ethereum/common"
)

// InteractionClaim is an inbound claim that a user completed an interaction.
// The signed message is never transmitted; it is recomputed from Timestamp
// using the canonical template in pkg/signature.
type InteractionClaim struct {
	UserAddress string `json:"userAddress"`
	Signature   string `json:"signature"` // hex-encoded 65-byte ECDSA signature
	Timestamp   int64  `json:"timestamp"`
}

// NotificationContent is the content record handed to the notification
// dispatcher. DisclosureSegments are appended to the magic-link base as URL
// path segments: a single attestation UID for the interaction flow, or the
// url-safe ciphertext plus data-key hash for the disclosure flow.
// Constructed fresh per request, never stored.
type NotificationContent struct {
	ServiceID          string
	RecipientAddress   common.Address
	DisclosureSegments []string
}

// DisclosureRequest is the inbound body for the attestation disclosure flow.
type DisclosureRequest struct {
	AttestationUID string `json:"attestationUid"`
}

// AckResponse is the acknowledgment body returned by both endpoints.
type AckResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body returned by both endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
