// Package launchpad implements the pricing, settlement and lifecycle engine
// of a bonding-curve token launchpad: tokens are sold from a launch reserve at
// a price that is a deterministic function of cumulative units sold, until the
// funding target is reached and the launch migrates to a liquidity pool.
package launchpad

import (
	"sync"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// TokenLedger is the fungible-token collaborator the engine settles against.
type TokenLedger interface {
	Mint(mint, to solanago.PublicKey, amount uint64) error
	Transfer(mint, from, to solanago.PublicKey, amount uint64) error
	Balance(mint, holder solanago.PublicKey) uint64
}

// NativeLedger is the lamport collaborator the engine settles against.
type NativeLedger interface {
	Transfer(from, to solanago.PublicKey, amount uint64) error
	Balance(addr solanago.PublicKey) uint64
}

// launchEntry pairs a launch record with the mutex that serializes every
// operation against it. Operations on different launches run independently.
type launchEntry struct {
	mu      sync.Mutex
	address solanago.PublicKey
	launch  *Launch
}

// Engine owns the launchpad records and drives all state transitions. Callers
// are assumed to be authenticated; identity arguments are the verified signer.
type Engine struct {
	logger *zap.Logger
	tokens TokenLedger
	sol    NativeLedger
	now    func() int64

	mu        sync.RWMutex
	config    *LaunchpadConfig
	launches  map[solanago.PublicKey]*launchEntry // keyed by mint
	positions map[solanago.PublicKey]*UserPosition
	referrals map[solanago.PublicKey]*Referral
}

type Option func(*Engine)

// WithLogger attaches a structured logger to the engine.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClock overrides the timestamp source.
func WithClock(now func() int64) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(tokens TokenLedger, sol NativeLedger, opts ...Option) *Engine {
	e := &Engine{
		logger:    zap.NewNop(),
		tokens:    tokens,
		sol:       sol,
		now:       func() int64 { return time.Now().Unix() },
		launches:  make(map[solanago.PublicKey]*launchEntry),
		positions: make(map[solanago.PublicKey]*UserPosition),
		referrals: make(map[solanago.PublicKey]*Referral),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) launchEntry(mint solanago.PublicKey) (*launchEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entry, ok := e.launches[mint]
	if !ok {
		return nil, ErrLaunchNotFound
	}
	return entry, nil
}

func (e *Engine) configSnapshot() (*LaunchpadConfig, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.config == nil {
		return nil, ErrNotInitialized
	}
	return e.config.clone(), nil
}

// GetConfig returns a copy of the global configuration.
func (e *Engine) GetConfig() (*LaunchpadConfig, error) {
	return e.configSnapshot()
}

// GetLaunch returns a copy of the launch record for a mint.
func (e *Engine) GetLaunch(mint solanago.PublicKey) (*Launch, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.launch.clone(), nil
}

// LaunchAccountData returns the launch record serialized as borsh account
// data, the form it takes at rest.
func (e *Engine) LaunchAccountData(mint solanago.PublicKey) ([]byte, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.launch.Serialize()
}

// GetPosition returns a copy of the (launch, user) position record. The
// launch lock is held while cloning; settlement mutates position fields under
// that lock.
func (e *Engine) GetPosition(mint, user solanago.PublicKey) (*UserPosition, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}
	addr := DerivePositionAddress(entry.address, user)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	e.mu.RLock()
	position, ok := e.positions[addr]
	e.mu.RUnlock()
	if !ok {
		return nil, ErrPositionNotFound
	}
	return position.clone(), nil
}

// GetReferral returns a copy of the (launch, referrer) referral record. The
// launch lock is held while cloning; attributed buys mutate referral fields
// under that lock.
func (e *Engine) GetReferral(mint, referrer solanago.PublicKey) (*Referral, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}
	addr := DeriveReferralAddress(entry.address, referrer)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	e.mu.RLock()
	referral, ok := e.referrals[addr]
	e.mu.RUnlock()
	if !ok {
		return nil, ErrReferralNotFound
	}
	return referral.clone(), nil
}

// ReserveBalances returns the launch reserve's current token and lamport
// balances.
func (e *Engine) ReserveBalances(mint solanago.PublicKey) (tokens uint64, lamports uint64, err error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return 0, 0, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return e.tokens.Balance(mint, entry.address), e.sol.Balance(entry.address), nil
}
