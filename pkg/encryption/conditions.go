package encryption

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// ReturnValueTest compares the result of an on-chain method call against a
// fixed value. The threshold network evaluates it before releasing key shares.
type ReturnValueTest struct {
	Comparator string `json:"comparator"`
	Value      string `json:"value"`
}

// AccessControlCondition is one clause of a disclosure policy. The conditions
// attached to a ciphertext are structural: they name the chain, the method to
// evaluate and the expected result, never a shared secret.
type AccessControlCondition struct {
	ContractAddress      string          `json:"contractAddress"`
	StandardContractType string          `json:"standardContractType"`
	Chain                string          `json:"chain"`
	Method               string          `json:"method"`
	Parameters           []string        `json:"parameters"`
	ReturnValueTest      ReturnValueTest `json:"returnValueTest"`
}

// ConditionsForAddress builds the policy that gates a ciphertext to a single
// wallet: the requesting address must equal the interaction participant.
func ConditionsForAddress(chain string, participant common.Address) []AccessControlCondition {
	return []AccessControlCondition{
		{
			ContractAddress:      "",
			StandardContractType: "",
			Chain:                chain,
			Method:               "",
			Parameters:           []string{":userAddress"},
			ReturnValueTest: ReturnValueTest{
				Comparator: "=",
				Value:      participant.Hex(),
			},
		},
	}
}

// CanonicalJSON serializes conditions in the byte-stable form used to derive
// the ciphertext identity. Struct field order makes the encoding deterministic.
func CanonicalJSON(conditions []AccessControlCondition) ([]byte, error) {
	if len(conditions) == 0 {
		return nil, errors.New("access control conditions cannot be empty")
	}
	encoded, err := json.Marshal(conditions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize access control conditions")
	}
	return encoded, nil
}

// IdentityHash derives the IBE identity a ciphertext is bound to. Two
// ciphertexts share an identity iff their policies are byte-identical, so the
// network can only ever release a key for the exact policy the issuer wrote.
func IdentityHash(conditions []AccessControlCondition) ([32]byte, error) {
	encoded, err := CanonicalJSON(conditions)
	if err != nil {
		return [32]byte{}, err
	}
	return [32]byte(ethcrypto.Keccak256Hash(encoded)), nil
}
