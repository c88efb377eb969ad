package mail

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Demigod345/privatefeedback-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testWallet = common.HexToAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")

func TestMessagingAddress(t *testing.T) {
	addr := MessagingAddress(testWallet)
	require.Equal(t, testWallet.Hex()+"@ethereum.mailchain.com", addr)

	// Checksum casing is part of the derived address.
	lower := common.HexToAddress(strings.ToLower(testWallet.Hex()))
	require.Equal(t, addr, MessagingAddress(lower))
}

func newTestDispatcher(t *testing.T, linkBase string, transport Transport) *Dispatcher {
	t.Helper()
	renderer, err := NewDefaultRenderer()
	require.NoError(t, err)
	dispatcher, err := NewDispatcher(zap.NewNop(), linkBase, renderer, transport)
	require.NoError(t, err)
	return dispatcher
}

func TestDispatcherMagicLink(t *testing.T) {
	dispatcher := newTestDispatcher(t, "https://example.org/feedback/", NewStubTransport())

	require.Equal(t, "https://example.org/feedback/0xabc",
		dispatcher.MagicLink([]string{"0xabc"}))
	require.Equal(t, "https://example.org/feedback/cipher/hash",
		dispatcher.MagicLink([]string{"cipher", "hash"}))
}

func TestDispatcherDispatch(t *testing.T) {
	stub := NewStubTransport()
	dispatcher := newTestDispatcher(t, "https://example.org/feedback", stub)

	content := types.NotificationContent{
		ServiceID:          "42",
		RecipientAddress:   testWallet,
		DisclosureSegments: []string{"0xdeadbeef"},
	}
	require.NoError(t, dispatcher.Dispatch(context.Background(), content))

	sent := stub.SentMail()
	require.Len(t, sent, 1)
	mail := sent[0]
	require.Equal(t, MessagingAddress(testWallet), mail.To)
	require.Equal(t, invitationSubject, mail.Subject)
	require.Equal(t, stub.SenderAddress(), mail.From)

	for _, body := range []string{mail.TextBody, mail.HTMLBody} {
		require.Contains(t, body, "https://example.org/feedback/0xdeadbeef")
		require.Contains(t, body, "42")
		require.Contains(t, body, testWallet.Hex())
	}
}

func TestDispatcherDispatchTransportFailure(t *testing.T) {
	stub := NewStubTransport()
	stub.Err = errors.New("connection refused")
	dispatcher := newTestDispatcher(t, "https://example.org/feedback", stub)

	err := dispatcher.Dispatch(context.Background(), types.NotificationContent{
		ServiceID:          "42",
		RecipientAddress:   testWallet,
		DisclosureSegments: []string{"0xdeadbeef"},
	})
	require.Error(t, err)
	require.Equal(t, types.KindDeliveryFailed, types.KindOf(err))
}

func TestDispatcherDispatchEmptyPayload(t *testing.T) {
	dispatcher := newTestDispatcher(t, "https://example.org/feedback", NewStubTransport())

	err := dispatcher.Dispatch(context.Background(), types.NotificationContent{
		ServiceID:        "42",
		RecipientAddress: testWallet,
	})
	require.Error(t, err)
	require.Equal(t, types.KindInvalidInput, types.KindOf(err))
}

func TestHTTPTransportSendMail(t *testing.T) {
	seed := []byte("test messaging account seed")

	var received signedMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	transport, err := NewHTTPTransport(zap.NewNop(), server.URL, seed)
	require.NoError(t, err)

	mail := &Mail{
		From:     transport.SenderAddress(),
		To:       MessagingAddress(testWallet),
		Subject:  invitationSubject,
		TextBody: "body",
	}
	require.NoError(t, transport.SendMail(context.Background(), mail))

	// The envelope must verify against the sender's public key.
	require.Equal(t, ethcrypto.Keccak256(received.Payload), received.Hash)
	senderKeyHex := strings.TrimSuffix(transport.SenderAddress(), "@mailchain.com")
	publicKey, err := hex.DecodeString(senderKeyHex)
	require.NoError(t, err)
	require.True(t, ed25519.Verify(publicKey, received.Hash, received.Signature))

	var delivered Mail
	require.NoError(t, json.Unmarshal(received.Payload, &delivered))
	require.Equal(t, mail.To, delivered.To)
	require.Equal(t, mail.Subject, delivered.Subject)
}

func TestHTTPTransportDeterministicSender(t *testing.T) {
	seed := []byte("test messaging account seed")

	first, err := NewHTTPTransport(zap.NewNop(), "http://localhost", seed)
	require.NoError(t, err)
	second, err := NewHTTPTransport(zap.NewNop(), "http://localhost", seed)
	require.NoError(t, err)
	require.Equal(t, first.SenderAddress(), second.SenderAddress())

	other, err := NewHTTPTransport(zap.NewNop(), "http://localhost", []byte("another seed"))
	require.NoError(t, err)
	require.NotEqual(t, first.SenderAddress(), other.SenderAddress())
}

func TestHTTPTransportServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rejected", http.StatusBadGateway)
	}))
	defer server.Close()

	transport, err := NewHTTPTransport(zap.NewNop(), server.URL, []byte("seed"))
	require.NoError(t, err)

	err = transport.SendMail(context.Background(), &Mail{To: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}
