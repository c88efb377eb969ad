package contractCaller

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrAttestationNotFound is returned when the registry holds no record for
// a UID. It is authoritative; callers must not retry.
var ErrAttestationNotFound = errors.New("attestation not found")

// Attestation is the service's read reference to a chain-owned attestation
// record. The registry is the source of truth; this is never persisted.
type Attestation struct {
	UID       [32]byte
	Attester  common.Address
	Recipient common.Address
	ServiceID *big.Int
	IssuedAt  uint64
}

// UIDHex renders the attestation identifier as a 0x-prefixed hex string.
func (a *Attestation) UIDHex() string {
	return "0x" + common.Bytes2Hex(a.UID[:])
}

// IContractCaller is the attestation registry surface the orchestrators use.
type IContractCaller interface {
	// AttestInteraction records an interaction attestation for user on chain
	// and returns the new attestation's UID, resolved from the confirmed
	// transaction's own event log.
	AttestInteraction(ctx context.Context, user common.Address, serviceID *big.Int) ([32]byte, error)

	// GetAttestation fetches an attestation record by UID. Returns
	// ErrAttestationNotFound for an empty/zero registry record.
	GetAttestation(ctx context.Context, uid [32]byte) (*Attestation, error)
}
