package service

import (
	"context"
	stderrors "errors"
	"math/big"
	"regexp"

	"github.com/Demigod345/privatefeedback-go/pkg/contractCaller"
	"github.com/Demigod345/privatefeedback-go/pkg/encryption"
	"github.com/Demigod345/privatefeedback-go/pkg/signature"
	"github.com/Demigod345/privatefeedback-go/pkg/types"
	"github.com/Demigod345/privatefeedback-go/pkg/util"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Encrypter seals a payload so only the participant's wallet can open it.
type Encrypter interface {
	Encrypt(ctx context.Context, participant common.Address, plaintext []byte) (*encryption.Envelope, error)
	Ready() bool
}

// Notifier delivers a notification for one flow's magic-link destination.
type Notifier interface {
	Dispatch(ctx context.Context, content types.NotificationContent) error
}

// FeedbackService runs the two request pipelines. Each call is a single-pass
// sequence; the first failing step aborts the run with its kind and nothing
// is rolled back. In particular an issued attestation survives a failed
// notification: the chain write is irreversible while delivery is
// best-effort, so the service accepts at-least-once issuance semantics.
type FeedbackService struct {
	logger              *zap.Logger
	serviceID           *big.Int
	registry            contractCaller.IContractCaller
	encrypter           Encrypter
	interactionNotifier Notifier
	disclosureNotifier  Notifier
	replayGuard         *ReplayGuard
}

// ServiceParams wires the collaborators. All are required except
// ReplayGuard, which is an opt-in freshness check.
type ServiceParams struct {
	Logger              *zap.Logger
	ServiceID           *big.Int
	Registry            contractCaller.IContractCaller
	Encrypter           Encrypter
	InteractionNotifier Notifier
	DisclosureNotifier  Notifier
	ReplayGuard         *ReplayGuard
}

func NewFeedbackService(params *ServiceParams) (*FeedbackService, error) {
	if params == nil {
		return nil, errors.New("params cannot be nil")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.ServiceID == nil || params.ServiceID.Sign() <= 0 {
		return nil, errors.New("positive service id is required")
	}
	if params.Registry == nil {
		return nil, errors.New("attestation registry is required")
	}
	if params.Encrypter == nil {
		return nil, errors.New("encrypter is required")
	}
	if params.InteractionNotifier == nil || params.DisclosureNotifier == nil {
		return nil, errors.New("both notifiers are required")
	}

	return &FeedbackService{
		logger:              params.Logger,
		serviceID:           params.ServiceID,
		registry:            params.Registry,
		encrypter:           params.Encrypter,
		interactionNotifier: params.InteractionNotifier,
		disclosureNotifier:  params.DisclosureNotifier,
		replayGuard:         params.ReplayGuard,
	}, nil
}

// Ready reports whether all collaborators can serve requests.
func (s *FeedbackService) Ready() bool {
	return s.encrypter.Ready()
}

// SubmitInteraction verifies an interaction claim, issues an attestation for
// its subject and notifies the subject with the plaintext attestation UID.
func (s *FeedbackService) SubmitInteraction(ctx context.Context, requestID string, claim *types.InteractionClaim) error {
	log := s.logger.Sugar().With("request_id", requestID)
	log.Infow("Interaction claim received", "user", claim.UserAddress, "timestamp", claim.Timestamp)

	if claim.UserAddress == "" || claim.Signature == "" || claim.Timestamp == 0 {
		return types.PipelineErrorf(types.KindInvalidInput, "userAddress, signature and timestamp are required")
	}
	if !common.IsHexAddress(claim.UserAddress) {
		return types.PipelineErrorf(types.KindInvalidInput, "malformed user address %q", claim.UserAddress)
	}
	user := common.HexToAddress(claim.UserAddress)

	if s.replayGuard != nil {
		if err := s.replayGuard.Observe(user, claim.Timestamp); err != nil {
			return types.NewPipelineError(types.KindInvalidInput, err, "claim rejected by replay guard")
		}
	}

	sig := common.FromHex(claim.Signature)
	if len(sig) != ethcrypto.SignatureLength {
		return types.PipelineErrorf(types.KindInvalidInput, "malformed signature, want %d bytes", ethcrypto.SignatureLength)
	}
	if !signature.Verify(claim.UserAddress, sig, claim.Timestamp) {
		return types.PipelineErrorf(types.KindSignatureMismatch,
			"signature was not produced by %s over the canonical message", user.Hex())
	}
	log.Infow("Claim verified", "state", "verified", "user", user.Hex())

	uid, err := s.registry.AttestInteraction(ctx, user, s.serviceID)
	if err != nil {
		return types.NewPipelineError(types.KindChainWriteFailed, err, "failed to issue attestation")
	}
	uidHex := common.BytesToHash(uid[:]).Hex()
	log.Infow("Attestation issued", "state", "issued", "uid", uidHex)

	content := types.NotificationContent{
		ServiceID:          s.serviceID.String(),
		RecipientAddress:   user,
		DisclosureSegments: []string{uidHex},
	}
	if err := s.interactionNotifier.Dispatch(ctx, content); err != nil {
		// The attestation above is already on chain and stays there.
		return err
	}
	log.Infow("Notification dispatched", "state", "done", "uid", uidHex)
	return nil
}

var uidPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// RequestDisclosure reads an attestation, seals its UID to the attester's
// wallet and notifies the attester with the encoded envelope.
func (s *FeedbackService) RequestDisclosure(ctx context.Context, requestID string, uidHex string) error {
	log := s.logger.Sugar().With("request_id", requestID)
	log.Infow("Disclosure request received", "uid", uidHex)

	if uidHex == "" {
		return types.PipelineErrorf(types.KindInvalidInput, "attestation uid is required")
	}
	if !uidPattern.MatchString(uidHex) {
		return types.PipelineErrorf(types.KindInvalidInput, "malformed attestation uid %q", uidHex)
	}
	uid := [32]byte(common.HexToHash(uidHex))

	attestation, err := s.registry.GetAttestation(ctx, uid)
	if err != nil {
		if stderrors.Is(err, contractCaller.ErrAttestationNotFound) {
			return types.NewPipelineError(types.KindNotFound, err, "attestation lookup")
		}
		return types.NewPipelineError(types.KindChainReadFailed, err, "failed to read attestation")
	}
	log.Infow("Attestation resolved", "state", "resolved", "attester", attestation.Attester.Hex())

	envelope, err := s.encrypter.Encrypt(ctx, attestation.Attester, []byte(attestation.UIDHex()))
	if err != nil {
		return types.NewPipelineError(types.KindEncryptionFailed, err, "failed to encrypt disclosure")
	}
	log.Infow("Disclosure encrypted", "state", "encrypted", "ciphertext_bytes", len(envelope.Ciphertext))

	content := types.NotificationContent{
		ServiceID:        s.serviceID.String(),
		RecipientAddress: attestation.Attester,
		DisclosureSegments: []string{
			util.EncodeURLSafe(envelope.Ciphertext),
			envelope.DataKeyHash,
		},
	}
	if err := s.disclosureNotifier.Dispatch(ctx, content); err != nil {
		return err
	}
	log.Infow("Notification dispatched", "state", "done")
	return nil
}
