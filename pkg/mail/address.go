package mail

import (
	"github.com/ethereum/go-ethereum/common"
)

// messagingDomain is the fixed suffix of the wallet-derived mail network.
const messagingDomain = "@ethereum.mailchain.com"

// MessagingAddress derives the deliverable address for a wallet. The mapping
// is deterministic and never stored; it is recomputed on every send.
func MessagingAddress(wallet common.Address) string {
	return wallet.Hex() + messagingDomain
}
