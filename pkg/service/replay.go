package service

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ReplayGuard is an opt-in, in-memory freshness check on interaction claims.
// A claim's timestamp must fall inside the configured window around the
// current time and must not have been seen before for the same wallet.
// The verifier itself stays pure; this guard sits in front of it in the
// orchestrator and is disabled unless configured.
type ReplayGuard struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[seenKey]time.Time
}

type seenKey struct {
	wallet    common.Address
	timestamp int64
}

func NewReplayGuard(window time.Duration) *ReplayGuard {
	return &ReplayGuard{
		window: window,
		now:    time.Now,
		seen:   make(map[seenKey]time.Time),
	}
}

// Observe records the (wallet, timestamp) pair, rejecting stale and repeated
// claims. Expired entries are pruned on each call; the map stays bounded by
// the claim rate within one window.
func (g *ReplayGuard) Observe(wallet common.Address, timestamp int64) error {
	now := g.now()
	claimed := time.Unix(timestamp, 0)
	if claimed.Before(now.Add(-g.window)) || claimed.After(now.Add(g.window)) {
		return errors.Errorf("timestamp %d outside freshness window of %s", timestamp, g.window)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := now.Add(-g.window)
	for key, at := range g.seen {
		if at.Before(cutoff) {
			delete(g.seen, key)
		}
	}

	key := seenKey{wallet: wallet, timestamp: timestamp}
	if _, ok := g.seen[key]; ok {
		return errors.Errorf("timestamp %d already used by %s", timestamp, wallet.Hex())
	}
	g.seen[key] = now
	return nil
}
