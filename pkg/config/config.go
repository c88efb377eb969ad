package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Environment variable names for the feedback server configuration
const (
	EnvFeedbackMailSeed            = "FEEDBACK_MAIL_SEED"
	EnvFeedbackServiceID           = "FEEDBACK_SERVICE_ID"
	EnvFeedbackPrivateKey          = "FEEDBACK_PRIVATE_KEY"
	EnvFeedbackRPCURL              = "FEEDBACK_RPC_URL"
	EnvFeedbackSchemaUID           = "FEEDBACK_SCHEMA_UID"
	EnvFeedbackRegistryAddress     = "FEEDBACK_REGISTRY_ADDRESS"
	EnvFeedbackPolicyChain         = "FEEDBACK_POLICY_CHAIN"
	EnvFeedbackPort                = "FEEDBACK_PORT"
	EnvFeedbackVerbose             = "FEEDBACK_VERBOSE"
	EnvFeedbackConfirmTimeout      = "FEEDBACK_CONFIRMATION_TIMEOUT"
	EnvFeedbackThresholdNodes      = "FEEDBACK_THRESHOLD_NODES"
	EnvFeedbackMailAPIURL          = "FEEDBACK_MAIL_API_URL"
	EnvFeedbackInteractionLinkBase = "FEEDBACK_INTERACTION_LINK_BASE"
	EnvFeedbackDisclosureLinkBase  = "FEEDBACK_DISCLOSURE_LINK_BASE"
	EnvFeedbackReplayWindow        = "FEEDBACK_REPLAY_WINDOW"
)

type ChainId uint

const (
	ChainId_BaseMainnet ChainId = 8453
	ChainId_BaseSepolia ChainId = 84532
	ChainId_BaseAnvil   ChainId = 31337
)

// ChainName is the name the access-policy network uses for a chain.
type ChainName string

const (
	ChainName_BaseMainnet ChainName = "base"
	ChainName_BaseSepolia ChainName = "baseSepolia"
	ChainName_BaseAnvil   ChainName = "baseAnvil"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_BaseMainnet: ChainName_BaseMainnet,
	ChainId_BaseSepolia: ChainName_BaseSepolia,
	ChainId_BaseAnvil:   ChainName_BaseAnvil,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_BaseMainnet: ChainId_BaseMainnet,
	ChainName_BaseSepolia: ChainId_BaseSepolia,
	ChainName_BaseAnvil:   ChainId_BaseAnvil,
}

// Defaults matching the Base Sepolia deployment
const (
	DefaultRegistryAddress = "0x4200000000000000000000000000000000000021"
	DefaultSchemaUID       = "0x0353438abb8fc94491aa6c3629823c9ddcd0d7b28df6aa9a5281bbb5ff3bb6bb"
	DefaultRPCURL          = "https://sepolia.base.org"
	DefaultMailAPIURL      = "https://api.mailchain.com"

	DefaultInteractionLinkBase = "https://core-two-smoky.vercel.app/feedback"
	DefaultDisclosureLinkBase  = "https://privacy-feedback.vercel.app/feedback"

	DefaultConfirmationTimeout = 2 * time.Minute
)

// ServerConfig is the complete configuration for the feedback server.
// All durable state lives on chain; nothing here points at local storage.
type ServerConfig struct {
	Port    int  `json:"port"`
	Verbose bool `json:"verbose"`

	// Messaging
	MailSeed   string `json:"-"` // messaging-account secret seed, never logged
	MailAPIURL string `json:"mail_api_url"`

	// Service identity
	ServiceID string `json:"service_id"` // decimal uint256

	// Chain write/read
	PrivateKey          string        `json:"-"` // chain-write credential, never logged
	RpcUrl              string        `json:"rpc_url"`
	SchemaUID           string        `json:"schema_uid"`
	RegistryAddress     string        `json:"registry_address"`
	ConfirmationTimeout time.Duration `json:"confirmation_timeout"`

	// Access policy / threshold-encryption network
	PolicyChain    ChainName `json:"policy_chain"`
	ThresholdNodes []string  `json:"threshold_nodes"`

	// Magic-link bases for the two disclosure flows
	InteractionLinkBase string `json:"interaction_link_base"`
	DisclosureLinkBase  string `json:"disclosure_link_base"`

	// Optional replay guard on interaction claims. Zero disables it,
	// preserving the original accept-any-timestamp behavior.
	ReplayWindow time.Duration `json:"replay_window"`
}

// ServiceIDBig parses the configured service identifier as a uint256.
func (c *ServerConfig) ServiceIDBig() (*big.Int, error) {
	id, ok := new(big.Int).SetString(c.ServiceID, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("service id must be a non-negative decimal integer, got %q", c.ServiceID)
	}
	return id, nil
}

// Validate checks the configuration and fails fast on anything absent or
// malformed. Called once at process start before any client is built.
func (c *ServerConfig) Validate() error {
	if c.MailSeed == "" {
		return fmt.Errorf("mail seed cannot be empty (set %s)", EnvFeedbackMailSeed)
	}

	if c.ServiceID == "" {
		return fmt.Errorf("service id cannot be empty (set %s)", EnvFeedbackServiceID)
	}
	if _, err := c.ServiceIDBig(); err != nil {
		return err
	}

	if c.PrivateKey == "" {
		return fmt.Errorf("chain private key cannot be empty (set %s)", EnvFeedbackPrivateKey)
	}
	key := strings.TrimPrefix(c.PrivateKey, "0x")
	if len(key) != 64 {
		return fmt.Errorf("chain private key must be 32 bytes (64 hex chars), got %d chars", len(key))
	}

	if c.RpcUrl == "" {
		return fmt.Errorf("rpc url cannot be empty (set %s)", EnvFeedbackRPCURL)
	}

	if !common.IsHexAddress(c.RegistryAddress) {
		return fmt.Errorf("invalid registry contract address: %q", c.RegistryAddress)
	}

	schema := strings.TrimPrefix(c.SchemaUID, "0x")
	if len(schema) != 64 {
		return fmt.Errorf("attestation schema uid must be 32 bytes (64 hex chars), got %d chars", len(schema))
	}

	if _, ok := ChainNameToId[c.PolicyChain]; !ok {
		return fmt.Errorf("unsupported access-policy chain %q, supported: %s, %s, %s",
			c.PolicyChain, ChainName_BaseMainnet, ChainName_BaseSepolia, ChainName_BaseAnvil)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1-65535, got %d", c.Port)
	}

	if c.ConfirmationTimeout <= 0 {
		return fmt.Errorf("confirmation timeout must be positive, got %s", c.ConfirmationTimeout)
	}

	if c.ReplayWindow < 0 {
		return fmt.Errorf("replay window cannot be negative, got %s", c.ReplayWindow)
	}

	return nil
}
