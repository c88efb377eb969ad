package caller

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Demigod345/privatefeedback-go/pkg/bindings/IInteractionRegistry"
	"github.com/Demigod345/privatefeedback-go/pkg/contractCaller"
	"github.com/Demigod345/privatefeedback-go/pkg/transactionSigner"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ContractCaller issues and reads interaction attestations against the
// on-chain registry. The registry exposes a getLastAttestation() view, but
// UID resolution here always comes from the confirmed transaction's own
// InteractionAttested event: a global "latest" query races with concurrent
// issuances and can hand back another request's UID.
type ContractCaller struct {
	ethclient       *ethclient.Client
	signer          transactionSigner.ITransactionSigner
	logger          *zap.Logger
	registryAddress common.Address

	registry *IInteractionRegistry.IInteractionRegistry
}

func NewContractCaller(
	ethclient *ethclient.Client,
	signer transactionSigner.ITransactionSigner,
	registryAddress common.Address,
	logger *zap.Logger,
) (*ContractCaller, error) {
	registry, err := IInteractionRegistry.NewIInteractionRegistry(registryAddress, ethclient)
	if err != nil {
		return nil, fmt.Errorf("failed to create interaction registry contract instance: %w", err)
	}

	return &ContractCaller{
		ethclient:       ethclient,
		signer:          signer,
		logger:          logger,
		registryAddress: registryAddress,
		registry:        registry,
	}, nil
}

// AttestInteraction submits the registry write, waits for confirmation and
// extracts the new attestation UID from the receipt's event log.
func (cc *ContractCaller) AttestInteraction(ctx context.Context, user common.Address, serviceID *big.Int) ([32]byte, error) {
	opts, err := cc.signer.GetTransactOpts(ctx)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "failed to build transaction opts")
	}

	tx, err := cc.registry.AttestInteraction(opts, user, serviceID)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "failed to build attestInteraction transaction")
	}

	receipt, err := cc.signAndSendTransaction(ctx, tx, "attestInteraction")
	if err != nil {
		return [32]byte{}, err
	}

	uid, err := cc.extractAttestationUID(receipt, user)
	if err != nil {
		return [32]byte{}, err
	}

	cc.logger.Sugar().Infow("Attestation issued",
		zap.String("uid", "0x"+common.Bytes2Hex(uid[:])),
		zap.String("user", user.Hex()),
		zap.String("service_id", serviceID.String()),
		zap.String("tx_hash", receipt.TxHash.Hex()),
	)

	return uid, nil
}

// extractAttestationUID finds this transaction's own InteractionAttested
// event in the receipt logs. Resolution never consults registry state that
// other in-flight issuances can move.
func (cc *ContractCaller) extractAttestationUID(receipt *ethereumTypes.Receipt, user common.Address) ([32]byte, error) {
	for _, log := range receipt.Logs {
		if log.Address != cc.registryAddress {
			continue
		}
		parsed, err := cc.registry.ParseInteractionAttested(*log)
		if err != nil {
			continue // unrelated registry event
		}
		if parsed.User != user {
			return [32]byte{}, errors.Errorf("attestation event user mismatch: expected %s, got %s", user.Hex(), parsed.User.Hex())
		}
		return parsed.Uid, nil
	}
	return [32]byte{}, errors.Errorf("no InteractionAttested event in receipt for tx %s", receipt.TxHash.Hex())
}

// GetAttestation performs a read-only registry query for a UID.
func (cc *ContractCaller) GetAttestation(ctx context.Context, uid [32]byte) (*contractCaller.Attestation, error) {
	record, err := cc.registry.GetAttestation(&bind.CallOpts{Context: ctx}, uid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query attestation")
	}

	// An absent UID yields a zeroed record
	if record.Uid == [32]byte{} {
		return nil, contractCaller.ErrAttestationNotFound
	}

	return &contractCaller.Attestation{
		UID:       record.Uid,
		Attester:  record.Attester,
		Recipient: record.Recipient,
		ServiceID: record.ServiceId,
		IssuedAt:  record.IssuedAt,
	}, nil
}
