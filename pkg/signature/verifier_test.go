package signature

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func signClaim(t *testing.T, timestamp int64) (address string, sig []byte) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	msg := CanonicalMessage(timestamp)
	sig, err = crypto.Sign(accounts.TextHash([]byte(msg)), key)
	require.NoError(t, err)

	return crypto.PubkeyToAddress(key.PublicKey).Hex(), sig
}

func TestVerify_ValidSignature(t *testing.T) {
	ts := time.Now().Unix()
	addr, sig := signClaim(t, ts)

	require.True(t, Verify(addr, sig, ts))
}

func TestVerify_EthereumStyleRecoveryID(t *testing.T) {
	// Wallets commonly emit v as 27/28 rather than 0/1
	ts := time.Now().Unix()
	addr, sig := signClaim(t, ts)

	shifted := make([]byte, len(sig))
	copy(shifted, sig)
	shifted[64] += 27

	require.True(t, Verify(addr, shifted, ts))
}

func TestVerify_CaseInsensitiveAddress(t *testing.T) {
	ts := time.Now().Unix()
	addr, sig := signClaim(t, ts)

	require.True(t, Verify(strings.ToLower(addr), sig, ts))
	require.True(t, Verify(strings.ToUpper(addr[:2])+strings.ToUpper(addr[2:]), sig, ts))
}

func TestVerify_MutatedSignature(t *testing.T) {
	ts := time.Now().Unix()
	addr, sig := signClaim(t, ts)

	// Flipping any single bit in the recoverable part must fail closed
	for _, i := range []int{0, 13, 31, 40, 63} {
		mutated := make([]byte, len(sig))
		copy(mutated, sig)
		mutated[i] ^= 0x01
		require.False(t, Verify(addr, mutated, ts), "bit flip at byte %d accepted", i)
	}
}

func TestVerify_WrongClaimedAddress(t *testing.T) {
	ts := time.Now().Unix()
	_, sig := signClaim(t, ts)
	other, _ := signClaim(t, ts)

	require.False(t, Verify(other, sig, ts))
}

func TestVerify_WrongTimestamp(t *testing.T) {
	ts := time.Now().Unix()
	addr, sig := signClaim(t, ts)

	require.False(t, Verify(addr, sig, ts+1))
}

func TestVerify_MalformedInputs(t *testing.T) {
	ts := time.Now().Unix()
	addr, sig := signClaim(t, ts)

	require.False(t, Verify(addr, nil, ts))
	require.False(t, Verify(addr, sig[:64], ts))
	require.False(t, Verify(addr, append(sig, 0x00), ts))
	require.False(t, Verify("not-an-address", sig, ts))

	badRecovery := make([]byte, len(sig))
	copy(badRecovery, sig)
	badRecovery[64] = 5
	require.False(t, Verify(addr, badRecovery, ts))
}

func TestCanonicalMessage(t *testing.T) {
	require.Equal(t, "Completing quiz interaction at timestamp: 1700000000", CanonicalMessage(1700000000))
}
