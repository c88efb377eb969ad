package encryption

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Envelope is the sealed output handed to the notification layer. DataKeyHash
// commits to the plaintext so a decryptor can verify what was released, and
// Conditions travel alongside the ciphertext because the identity the data is
// bound to is derived from them.
type Envelope struct {
	Ciphertext  []byte                   `json:"ciphertext"`
	DataKeyHash string                   `json:"dataToEncryptHash"`
	Conditions  []AccessControlCondition `json:"accessControlConditions"`
}

// Gateway encrypts interaction payloads against a threshold network's master
// public key. Connect must succeed before Encrypt; the master key never
// changes for the life of the process once fetched.
type Gateway struct {
	logger    *zap.Logger
	chain     string
	nodeURLs  []string
	threshold int
	client    *http.Client

	mu        sync.RWMutex
	masterKey *bls12381.G2Affine
}

// NewGateway builds a gateway that will fetch the master public key from the
// given node endpoints. threshold is the minimum number of agreeing nodes.
func NewGateway(logger *zap.Logger, chain string, nodeURLs []string, threshold int) (*Gateway, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if chain == "" {
		return nil, errors.New("chain name is required")
	}
	if len(nodeURLs) == 0 {
		return nil, errors.New("at least one node endpoint is required")
	}
	if threshold <= 0 || threshold > len(nodeURLs) {
		return nil, errors.Errorf("threshold %d out of range for %d nodes", threshold, len(nodeURLs))
	}

	return &Gateway{
		logger:    logger,
		chain:     chain,
		nodeURLs:  nodeURLs,
		threshold: threshold,
		client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// NewGatewayWithMasterKey builds an already connected gateway from a known
// master public key. Used for local deployments and tests.
func NewGatewayWithMasterKey(logger *zap.Logger, chain string, masterKey bls12381.G2Affine) (*Gateway, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if chain == "" {
		return nil, errors.New("chain name is required")
	}
	if masterKey.IsInfinity() {
		return nil, errors.New("master public key is a zero/infinity point")
	}
	return &Gateway{
		logger:    logger,
		chain:     chain,
		threshold: 1,
		masterKey: &masterKey,
	}, nil
}

type nodeKeyResponse struct {
	NetworkPublicKey string `json:"networkPublicKey"`
	IsActive         bool   `json:"isActive"`
}

// Connect fetches the network master public key from the configured nodes.
// At least threshold nodes must respond with the same active key.
func (g *Gateway) Connect(ctx context.Context) error {
	votes := make(map[string]int)
	successful := 0

	for i, nodeURL := range g.nodeURLs {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, nodeURL+"/pubkey", nil)
		if err != nil {
			return errors.Wrap(err, "failed to build node request")
		}

		resp, err := g.client.Do(req)
		if err != nil {
			g.logger.Sugar().Warnw("Failed to contact node",
				"node_index", i,
				"address", nodeURL,
				"error", err,
			)
			continue
		}

		var response nodeKeyResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&response)
		_ = resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			g.logger.Sugar().Warnw("Node returned error",
				"node_index", i,
				"status_code", resp.StatusCode,
			)
			continue
		}
		if decodeErr != nil {
			g.logger.Sugar().Warnw("Failed to decode response from node",
				"node_index", i,
				"error", decodeErr,
			)
			continue
		}
		if !response.IsActive {
			g.logger.Sugar().Warnw("Node does not have an active key", "node_index", i)
			continue
		}

		votes[response.NetworkPublicKey]++
		successful++
	}

	if successful < g.threshold {
		return errors.Errorf("insufficient node responses: got %d, need %d", successful, g.threshold)
	}

	for keyHex, count := range votes {
		if count < g.threshold {
			continue
		}
		keyBytes, err := hex.DecodeString(strings.TrimPrefix(keyHex, "0x"))
		if err != nil {
			return errors.Wrap(err, "failed to decode network public key")
		}
		var masterKey bls12381.G2Affine
		if _, err := masterKey.SetBytes(keyBytes); err != nil {
			return errors.Wrap(err, "invalid network public key")
		}
		if masterKey.IsInfinity() {
			return errors.New("network public key is a zero/infinity point")
		}

		g.mu.Lock()
		g.masterKey = &masterKey
		g.mu.Unlock()

		g.logger.Sugar().Infow("Connected to threshold network",
			"nodes", successful,
			"threshold", g.threshold,
		)
		return nil
	}

	return errors.Errorf("no network public key reached quorum of %d nodes", g.threshold)
}

// Ready reports whether the master public key has been fetched.
func (g *Gateway) Ready() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.masterKey != nil
}

// Encrypt seals plaintext so that only the given participant's wallet can
// satisfy the attached policy. The returned envelope carries everything a
// decryptor needs besides the key shares themselves.
func (g *Gateway) Encrypt(ctx context.Context, participant common.Address, plaintext []byte) (*Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(plaintext) == 0 {
		return nil, errors.New("plaintext cannot be empty")
	}

	g.mu.RLock()
	masterKey := g.masterKey
	g.mu.RUnlock()
	if masterKey == nil {
		return nil, errors.New("gateway is not connected to the threshold network")
	}

	conditions := ConditionsForAddress(g.chain, participant)
	identity, err := IdentityHash(conditions)
	if err != nil {
		return nil, err
	}

	ciphertext, err := ibeEncrypt(masterKey, identity, plaintext)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(plaintext)

	g.logger.Sugar().Debugw("Encrypted payload",
		"participant", participant.Hex(),
		"ciphertext_bytes", len(ciphertext),
	)

	return &Envelope{
		Ciphertext:  ciphertext,
		DataKeyHash: hex.EncodeToString(digest[:]),
		Conditions:  conditions,
	}, nil
}

// Decrypt opens an envelope with an identity private key obtained from the
// network after its policy check passed.
func (g *Gateway) Decrypt(identityPrivateKey bls12381.G1Affine, envelope *Envelope) ([]byte, error) {
	if envelope == nil {
		return nil, errors.New("envelope is required")
	}
	identity, err := IdentityHash(envelope.Conditions)
	if err != nil {
		return nil, err
	}
	plaintext, err := ibeDecrypt(&identityPrivateKey, identity, envelope.Ciphertext)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(plaintext)
	if hex.EncodeToString(digest[:]) != envelope.DataKeyHash {
		return nil, errors.New("plaintext digest does not match envelope commitment")
	}
	return plaintext, nil
}
