package transactionSigner

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// FallbackGasTipCap is used when the RPC backend does not support
// eth_maxPriorityFeePerGas. 0.001 gwei is plenty for Base.
var FallbackGasTipCap = big.NewInt(1000000)

const baseFeeMultiplier = 2

// PrivateKeySigner implements ITransactionSigner with a local hex private key
type PrivateKeySigner struct {
	ethClient           *ethclient.Client
	logger              *zap.Logger
	chainID             *big.Int
	privateKey          *ecdsa.PrivateKey
	fromAddress         common.Address
	confirmationTimeout time.Duration
}

// NewPrivateKeySigner creates a signer from a hex-encoded secp256k1 key
func NewPrivateKeySigner(cfg *SignerConfig, ethClient *ethclient.Client, logger *zap.Logger) (*PrivateKeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// Get chain ID during initialization
	chainID, err := ethClient.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	timeout := cfg.ConfirmationTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &PrivateKeySigner{
		ethClient:           ethClient,
		logger:              logger,
		chainID:             chainID,
		privateKey:          key,
		fromAddress:         crypto.PubkeyToAddress(key.PublicKey),
		confirmationTimeout: timeout,
	}, nil
}

// GetTransactOpts returns transaction options for creating unsigned transactions
func (s *PrivateKeySigner) GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	// We only want the binding to build the calldata; gas, nonce and the
	// real signature are applied in SignAndSendTransaction
	opts := &bind.TransactOpts{
		From:    s.fromAddress,
		Context: ctx,
		NoSend:  true,
		Signer: func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
			return tx, nil
		},
	}
	return opts, nil
}

// SignAndSendTransaction signs a transaction, sends it to the network and
// waits for it to be mined. The wait is bounded by the configured
// confirmation timeout so a dropped transaction fails instead of hanging.
func (s *PrivateKeySigner) SignAndSendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	// Estimate gas tip cap (priority fee)
	gasTipCap, err := s.ethClient.SuggestGasTipCap(ctx)
	if err != nil {
		s.logger.Sugar().Warnw("SignAndSendTransaction: cannot get gasTipCap, using fallback",
			zap.Error(err),
		)
		gasTipCap = FallbackGasTipCap
	}

	// Latest block header for base fee calculation
	header, err := s.ethClient.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block header: %w", err)
	}

	// Max fee per gas: basefee * multiplier + tip, buffered for fee spikes
	maxFeePerGas := new(big.Int).Add(
		new(big.Int).Mul(header.BaseFee, big.NewInt(baseFeeMultiplier)),
		gasTipCap,
	)

	gasLimit, err := s.ethClient.EstimateGas(ctx, ethereum.CallMsg{
		From:      s.fromAddress,
		To:        tx.To(),
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Value:     tx.Value(),
		Data:      tx.Data(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	// Always fetch the nonce from the network since the incoming tx.Nonce()
	// may be 0, which is a valid nonce value
	nonce, err := s.ethClient.PendingNonceAt(ctx, s.fromAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	unsigned := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Gas:       addGasBuffer(gasLimit),
		To:        tx.To(),
		Value:     tx.Value(),
		Data:      tx.Data(),
	})

	signedTx, err := types.SignTx(unsigned, types.LatestSignerForChainID(s.chainID), s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	s.logger.Info("SignAndSendTransaction: sending transaction",
		zap.String("to", signedTx.To().Hex()),
		zap.String("maxPriorityFeePerGas", gasTipCap.String()),
		zap.String("maxFeePerGas", maxFeePerGas.String()),
		zap.Uint64("gasLimit", signedTx.Gas()),
		zap.Uint64("nonce", nonce),
	)

	if err := s.ethClient.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	// Wait for receipt within the confirmation timeout; a transaction that
	// never confirms must fail, not hang
	waitCtx, cancel := context.WithTimeout(ctx, s.confirmationTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, s.ethClient, signedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		s.logger.Error("SignAndSendTransaction: transaction reverted",
			zap.String("txHash", receipt.TxHash.Hex()),
			zap.Uint64("status", receipt.Status),
			zap.Uint64("gasUsed", receipt.GasUsed),
		)
		return nil, fmt.Errorf("transaction reverted with status %d", receipt.Status)
	}

	s.logger.Info("SignAndSendTransaction: transaction succeeded",
		zap.String("txHash", receipt.TxHash.Hex()),
		zap.Uint64("gasUsed", receipt.GasUsed),
		zap.Uint64("blockNumber", receipt.BlockNumber.Uint64()),
	)

	return receipt, nil
}

// GetFromAddress returns the address that will be used for signing
func (s *PrivateKeySigner) GetFromAddress() common.Address {
	return s.fromAddress
}

// addGasBuffer adds a 20% buffer on top of the estimated gas limit
func addGasBuffer(gasLimit uint64) uint64 {
	return gasLimit * 120 / 100
}
