package mail

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

// Mail is a single rendered message ready for delivery.
type Mail struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text"`
	HTMLBody string `json:"html"`
}

// Transport delivers rendered mail to the messaging network.
type Transport interface {
	SendMail(ctx context.Context, mail *Mail) error
	SenderAddress() string
}

// signedMessage is the authenticated envelope the messaging API accepts:
// the raw payload, its keccak256 hash, and an ed25519 signature over the hash.
type signedMessage struct {
	Payload   []byte `json:"payload"`
	Hash      []byte `json:"hash"`
	Signature []byte `json:"signature"`
}

// HTTPTransport sends signed mail requests to a messaging API. The ed25519
// messaging key is derived deterministically from the account seed, so the
// same seed always yields the same sender identity.
type HTTPTransport struct {
	logger     *zap.Logger
	apiURL     string
	client     *http.Client
	privateKey ed25519.PrivateKey
	sender     string
}

const messagingKeyInfo = "privatefeedback/messaging-key/v1"

// NewHTTPTransport derives the messaging identity from seed and returns a
// transport posting to apiURL. The seed is the only secret; it never leaves
// the process.
func NewHTTPTransport(logger *zap.Logger, apiURL string, seed []byte) (*HTTPTransport, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if apiURL == "" {
		return nil, errors.New("messaging API URL is required")
	}
	if len(seed) == 0 {
		return nil, errors.New("messaging account seed is required")
	}

	reader := hkdf.New(sha256.New, seed, nil, []byte(messagingKeyInfo))
	keySeed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(reader, keySeed); err != nil {
		return nil, errors.Wrap(err, "failed to derive messaging key")
	}
	privateKey := ed25519.NewKeyFromSeed(keySeed)
	publicKey := privateKey.Public().(ed25519.PublicKey)

	return &HTTPTransport{
		logger:     logger,
		apiURL:     apiURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		privateKey: privateKey,
		sender:     hex.EncodeToString(publicKey) + "@mailchain.com",
	}, nil
}

func (t *HTTPTransport) SenderAddress() string {
	return t.sender
}

// SendMail posts one signed message. Delivery is single-shot: the caller
// owns the decision of whether a failed notification matters.
func (t *HTTPTransport) SendMail(ctx context.Context, mail *Mail) error {
	payload, err := json.Marshal(mail)
	if err != nil {
		return errors.Wrap(err, "failed to marshal mail")
	}

	hash := ethcrypto.Keccak256(payload)
	msg := signedMessage{
		Payload:   payload,
		Hash:      hash,
		Signature: ed25519.Sign(t.privateKey, hash),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal signed message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build send request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to contact messaging API")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Errorf("messaging API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	t.logger.Sugar().Debugw("Delivered mail", "to", mail.To)
	return nil
}
