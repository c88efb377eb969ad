package caller

import (
	"math/big"
	"sync"
	"testing"

	"github.com/Demigod345/privatefeedback-go/pkg/bindings/IInteractionRegistry"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testRegistryAddress = common.HexToAddress("0x4200000000000000000000000000000000000021")

func newTestCaller(t *testing.T) *ContractCaller {
	t.Helper()

	registry, err := IInteractionRegistry.NewIInteractionRegistry(testRegistryAddress, nil)
	require.NoError(t, err)

	return &ContractCaller{
		logger:          zap.NewNop(),
		registryAddress: testRegistryAddress,
		registry:        registry,
	}
}

// attestedLog builds the log the registry emits for an issuance, exactly as
// it appears in a confirmed transaction's receipt.
func attestedLog(t *testing.T, emitter common.Address, uid [32]byte, user common.Address, serviceID *big.Int) *ethereumTypes.Log {
	t.Helper()

	parsed, err := IInteractionRegistry.IInteractionRegistryMetaData.GetAbi()
	require.NoError(t, err)

	eventID := parsed.Events["InteractionAttested"].ID
	data, err := parsed.Events["InteractionAttested"].Inputs.NonIndexed().Pack(serviceID)
	require.NoError(t, err)

	return &ethereumTypes.Log{
		Address: emitter,
		Topics: []common.Hash{
			eventID,
			common.BytesToHash(uid[:]),
			common.BytesToHash(common.LeftPadBytes(user.Bytes(), 32)),
		},
		Data: data,
	}
}

func TestExtractAttestationUID(t *testing.T) {
	cc := newTestCaller(t)
	user := common.HexToAddress("0x1111111111111111111111111111111111111111")
	uid := [32]byte{0xaa, 0xbb, 0xcc}

	t.Run("resolves uid from the receipt's own event", func(t *testing.T) {
		receipt := &ethereumTypes.Receipt{
			TxHash: common.HexToHash("0x01"),
			Logs:   []*ethereumTypes.Log{attestedLog(t, testRegistryAddress, uid, user, big.NewInt(7))},
		}

		got, err := cc.extractAttestationUID(receipt, user)
		require.NoError(t, err)
		require.Equal(t, uid, got)
	})

	t.Run("ignores events from other contracts", func(t *testing.T) {
		other := common.HexToAddress("0x2222222222222222222222222222222222222222")
		receipt := &ethereumTypes.Receipt{
			TxHash: common.HexToHash("0x02"),
			Logs:   []*ethereumTypes.Log{attestedLog(t, other, uid, user, big.NewInt(7))},
		}

		_, err := cc.extractAttestationUID(receipt, user)
		require.Error(t, err)
	})

	t.Run("rejects an event naming a different user", func(t *testing.T) {
		stranger := common.HexToAddress("0x3333333333333333333333333333333333333333")
		receipt := &ethereumTypes.Receipt{
			TxHash: common.HexToHash("0x03"),
			Logs:   []*ethereumTypes.Log{attestedLog(t, testRegistryAddress, uid, stranger, big.NewInt(7))},
		}

		_, err := cc.extractAttestationUID(receipt, user)
		require.Error(t, err)
		require.Contains(t, err.Error(), "user mismatch")
	})

	t.Run("empty receipt fails", func(t *testing.T) {
		receipt := &ethereumTypes.Receipt{TxHash: common.HexToHash("0x04")}

		_, err := cc.extractAttestationUID(receipt, user)
		require.Error(t, err)
	})
}

// Two issuances racing must each resolve the UID from their own receipt,
// never from shared registry state. Any "latest attestation" resolution
// strategy would make one of the goroutines observe the other's UID.
func TestExtractAttestationUID_ConcurrentIssuances(t *testing.T) {
	cc := newTestCaller(t)

	const n = 8
	users := make([]common.Address, n)
	uids := make([][32]byte, n)
	receipts := make([]*ethereumTypes.Receipt, n)
	for i := 0; i < n; i++ {
		users[i] = common.BigToAddress(big.NewInt(int64(i + 1)))
		uids[i][0] = byte(i + 1)
		receipts[i] = &ethereumTypes.Receipt{
			TxHash: common.BigToHash(big.NewInt(int64(i + 1))),
			Logs:   []*ethereumTypes.Log{attestedLog(t, testRegistryAddress, uids[i], users[i], big.NewInt(42))},
		}
	}

	var wg sync.WaitGroup
	results := make([][32]byte, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cc.extractAttestationUID(receipts[i], users[i])
		}(i)
	}
	wg.Wait()

	seen := make(map[[32]byte]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, uids[i], results[i], "issuance %d resolved a foreign uid", i)
		require.False(t, seen[results[i]], "duplicate uid across concurrent issuances")
		seen[results[i]] = true
	}
}
