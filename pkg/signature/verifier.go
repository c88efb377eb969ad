package signature

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MessageTemplate is the canonical interaction-claim message. The client
// signs exactly this string (EIP-191 personal message); the server rebuilds
// it from the claim's timestamp and never transports it.
const MessageTemplate = "Completing quiz interaction at timestamp: %d"

// CanonicalMessage rebuilds the signed message for a given claim timestamp.
func CanonicalMessage(timestamp int64) string {
	return fmt.Sprintf(MessageTemplate, timestamp)
}

// RecoverSigner recovers the signing address from an EIP-191 personal
// message signature. Accepts both 0/1 and 27/28 recovery ids.
func RecoverSigner(message string, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length: expected %d bytes, got %d", crypto.SignatureLength, len(sig))
	}

	s := make([]byte, len(sig))
	copy(s, sig)
	if s[crypto.RecoveryIDOffset] >= 27 {
		s[crypto.RecoveryIDOffset] -= 27
	}
	if s[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id: %d", s[crypto.RecoveryIDOffset])
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), s)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// Verify reports whether sig over the canonical message for timestamp was
// produced by claimedAddress. Both sides go through common.HexToAddress so
// checksum/case differences cannot cause a false rejection. Fails closed on
// any malformed input. No freshness check is applied to timestamp.
func Verify(claimedAddress string, sig []byte, timestamp int64) bool {
	if !common.IsHexAddress(claimedAddress) {
		return false
	}

	recovered, err := RecoverSigner(CanonicalMessage(timestamp), sig)
	if err != nil {
		return false
	}

	return recovered == common.HexToAddress(claimedAddress)
}
