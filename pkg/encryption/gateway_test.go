package encryption

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testParticipant = common.HexToAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")

func testMasterSecret(t *testing.T) *fr.Element {
	t.Helper()
	secret := new(fr.Element).SetUint64(424242)
	return secret
}

func TestConditionsForAddress(t *testing.T) {
	conditions := ConditionsForAddress("baseSepolia", testParticipant)
	require.Len(t, conditions, 1)

	cond := conditions[0]
	require.Equal(t, "baseSepolia", cond.Chain)
	require.Equal(t, []string{":userAddress"}, cond.Parameters)
	require.Equal(t, "=", cond.ReturnValueTest.Comparator)
	require.Equal(t, testParticipant.Hex(), cond.ReturnValueTest.Value)
	require.Empty(t, cond.ContractAddress)
	require.Empty(t, cond.StandardContractType)
	require.Empty(t, cond.Method)
}

func TestIdentityHash(t *testing.T) {
	t.Run("deterministic for the same policy", func(t *testing.T) {
		a, err := IdentityHash(ConditionsForAddress("base", testParticipant))
		require.NoError(t, err)
		b, err := IdentityHash(ConditionsForAddress("base", testParticipant))
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("differs per participant", func(t *testing.T) {
		a, err := IdentityHash(ConditionsForAddress("base", testParticipant))
		require.NoError(t, err)
		other := common.HexToAddress("0x1111111111111111111111111111111111111111")
		b, err := IdentityHash(ConditionsForAddress("base", other))
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("differs per chain", func(t *testing.T) {
		a, err := IdentityHash(ConditionsForAddress("base", testParticipant))
		require.NoError(t, err)
		b, err := IdentityHash(ConditionsForAddress("baseSepolia", testParticipant))
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("empty policy rejected", func(t *testing.T) {
		_, err := IdentityHash(nil)
		require.Error(t, err)
	})
}

func TestGatewayEncryptDecrypt(t *testing.T) {
	secret := testMasterSecret(t)
	gateway, err := NewGatewayWithMasterKey(zap.NewNop(), "baseSepolia", MasterPublicKeyFromSecret(secret))
	require.NoError(t, err)
	require.True(t, gateway.Ready())

	plaintext := []byte(`{"interaction":"quiz","rating":5}`)
	envelope, err := gateway.Encrypt(context.Background(), testParticipant, plaintext)
	require.NoError(t, err)

	digest := sha256.Sum256(plaintext)
	require.Equal(t, hex.EncodeToString(digest[:]), envelope.DataKeyHash)
	require.Equal(t, ConditionsForAddress("baseSepolia", testParticipant), envelope.Conditions)
	require.True(t, len(envelope.Ciphertext) > len(plaintext)+headerSize+c1Size+nonceSize)
	require.Equal(t, []byte(ciphertextMagic), envelope.Ciphertext[:3])
	require.Equal(t, ciphertextVersion, envelope.Ciphertext[3])

	identity, err := IdentityHash(envelope.Conditions)
	require.NoError(t, err)
	identityKey, err := DeriveIdentityKey(secret, identity)
	require.NoError(t, err)

	decrypted, err := gateway.Decrypt(identityKey, envelope)
	require.NoError(t, err)
	require.True(t, bytes.Equal(plaintext, decrypted))
}

func TestGatewayDecryptWrongParticipantKey(t *testing.T) {
	secret := testMasterSecret(t)
	gateway, err := NewGatewayWithMasterKey(zap.NewNop(), "baseSepolia", MasterPublicKeyFromSecret(secret))
	require.NoError(t, err)

	envelope, err := gateway.Encrypt(context.Background(), testParticipant, []byte("gated payload"))
	require.NoError(t, err)

	// A key released for a different wallet's policy must not open the box.
	other := common.HexToAddress("0x2222222222222222222222222222222222222222")
	wrongIdentity, err := IdentityHash(ConditionsForAddress("baseSepolia", other))
	require.NoError(t, err)
	wrongKey, err := DeriveIdentityKey(secret, wrongIdentity)
	require.NoError(t, err)

	_, err = ibeDecrypt(&wrongKey, wrongIdentity, envelope.Ciphertext)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decrypt")
}

func TestGatewayDecryptTamperedCommitment(t *testing.T) {
	secret := testMasterSecret(t)
	gateway, err := NewGatewayWithMasterKey(zap.NewNop(), "baseSepolia", MasterPublicKeyFromSecret(secret))
	require.NoError(t, err)

	envelope, err := gateway.Encrypt(context.Background(), testParticipant, []byte("gated payload"))
	require.NoError(t, err)
	envelope.DataKeyHash = hex.EncodeToString(make([]byte, 32))

	identity, err := IdentityHash(envelope.Conditions)
	require.NoError(t, err)
	identityKey, err := DeriveIdentityKey(secret, identity)
	require.NoError(t, err)

	_, err = gateway.Decrypt(identityKey, envelope)
	require.Error(t, err)
	require.Contains(t, err.Error(), "commitment")
}

func TestGatewayEncryptRequiresConnection(t *testing.T) {
	gateway, err := NewGateway(zap.NewNop(), "baseSepolia", []string{"http://127.0.0.1:1"}, 1)
	require.NoError(t, err)
	require.False(t, gateway.Ready())

	_, err = gateway.Encrypt(context.Background(), testParticipant, []byte("payload"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not connected")
}

func TestGatewayEncryptEmptyPlaintext(t *testing.T) {
	secret := testMasterSecret(t)
	gateway, err := NewGatewayWithMasterKey(zap.NewNop(), "baseSepolia", MasterPublicKeyFromSecret(secret))
	require.NoError(t, err)

	_, err = gateway.Encrypt(context.Background(), testParticipant, nil)
	require.Error(t, err)
}

func newKeyServer(t *testing.T, keyHex string, active bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pubkey", r.URL.Path)
		_ = json.NewEncoder(w).Encode(nodeKeyResponse{
			NetworkPublicKey: keyHex,
			IsActive:         active,
		})
	}))
}

func TestGatewayConnect(t *testing.T) {
	masterKey := MasterPublicKeyFromSecret(testMasterSecret(t))
	keyBytes := masterKey.Bytes()
	keyHex := hex.EncodeToString(keyBytes[:])

	t.Run("reaches quorum", func(t *testing.T) {
		node1 := newKeyServer(t, keyHex, true)
		defer node1.Close()
		node2 := newKeyServer(t, keyHex, true)
		defer node2.Close()
		node3 := newKeyServer(t, keyHex, true)
		defer node3.Close()

		gateway, err := NewGateway(zap.NewNop(), "baseSepolia", []string{node1.URL, node2.URL, node3.URL}, 2)
		require.NoError(t, err)
		require.NoError(t, gateway.Connect(context.Background()))
		require.True(t, gateway.Ready())

		envelope, err := gateway.Encrypt(context.Background(), testParticipant, []byte("payload"))
		require.NoError(t, err)
		require.NotEmpty(t, envelope.Ciphertext)
	})

	t.Run("tolerates an unreachable node", func(t *testing.T) {
		node1 := newKeyServer(t, keyHex, true)
		defer node1.Close()
		node2 := newKeyServer(t, keyHex, true)
		defer node2.Close()

		gateway, err := NewGateway(zap.NewNop(), "baseSepolia",
			[]string{node1.URL, node2.URL, "http://127.0.0.1:1"}, 2)
		require.NoError(t, err)
		require.NoError(t, gateway.Connect(context.Background()))
		require.True(t, gateway.Ready())
	})

	t.Run("insufficient responses", func(t *testing.T) {
		node1 := newKeyServer(t, keyHex, true)
		defer node1.Close()

		gateway, err := NewGateway(zap.NewNop(), "baseSepolia",
			[]string{node1.URL, "http://127.0.0.1:1", "http://127.0.0.1:1"}, 2)
		require.NoError(t, err)
		require.Error(t, gateway.Connect(context.Background()))
		require.False(t, gateway.Ready())
	})

	t.Run("inactive nodes do not count", func(t *testing.T) {
		node1 := newKeyServer(t, keyHex, true)
		defer node1.Close()
		node2 := newKeyServer(t, keyHex, false)
		defer node2.Close()

		gateway, err := NewGateway(zap.NewNop(), "baseSepolia", []string{node1.URL, node2.URL}, 2)
		require.NoError(t, err)
		require.Error(t, gateway.Connect(context.Background()))
	})

	t.Run("disagreeing nodes never reach quorum", func(t *testing.T) {
		otherKey := MasterPublicKeyFromSecret(new(fr.Element).SetUint64(999))
		otherBytes := otherKey.Bytes()

		node1 := newKeyServer(t, keyHex, true)
		defer node1.Close()
		node2 := newKeyServer(t, hex.EncodeToString(otherBytes[:]), true)
		defer node2.Close()

		gateway, err := NewGateway(zap.NewNop(), "baseSepolia", []string{node1.URL, node2.URL}, 2)
		require.NoError(t, err)
		require.Error(t, gateway.Connect(context.Background()))
	})
}

func TestNewGatewayValidation(t *testing.T) {
	_, err := NewGateway(nil, "base", []string{"http://x"}, 1)
	require.Error(t, err)

	_, err = NewGateway(zap.NewNop(), "", []string{"http://x"}, 1)
	require.Error(t, err)

	_, err = NewGateway(zap.NewNop(), "base", nil, 1)
	require.Error(t, err)

	_, err = NewGateway(zap.NewNop(), "base", []string{"http://x"}, 2)
	require.Error(t, err)
}
