// Package ledger provides in-process implementations of the balance ledgers
// the launchpad engine settles against: a fungible-token ledger keyed by
// (mint, holder) and a native lamport ledger keyed by address.
package ledger

import (
	"errors"
	"math/bits"
	"sync"

	solanago "github.com/gagliardetto/solana-go"
)

var (
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	ErrBalanceOverflow   = errors.New("ledger: balance overflow")
)

// TokenLedger holds fungible token balances per (mint, holder).
type TokenLedger struct {
	mu       sync.RWMutex
	balances map[solanago.PublicKey]map[solanago.PublicKey]uint64
}

func NewTokenLedger() *TokenLedger {
	return &TokenLedger{balances: make(map[solanago.PublicKey]map[solanago.PublicKey]uint64)}
}

// Mint credits newly created supply to a holder.
func (t *TokenLedger) Mint(mint, to solanago.PublicKey, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	holders := t.balances[mint]
	if holders == nil {
		holders = make(map[solanago.PublicKey]uint64)
		t.balances[mint] = holders
	}
	sum, carry := bits.Add64(holders[to], amount, 0)
	if carry != 0 {
		return ErrBalanceOverflow
	}
	holders[to] = sum
	return nil
}

// Transfer moves tokens between holders of the same mint.
func (t *TokenLedger) Transfer(mint, from, to solanago.PublicKey, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	holders := t.balances[mint]
	if holders[from] < amount {
		return ErrInsufficientFunds
	}
	sum, carry := bits.Add64(holders[to], amount, 0)
	if carry != 0 {
		return ErrBalanceOverflow
	}
	holders[from] -= amount
	holders[to] = sum
	return nil
}

// Balance returns the holder's balance for a mint.
func (t *TokenLedger) Balance(mint, holder solanago.PublicKey) uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balances[mint][holder]
}

// NativeLedger holds lamport balances per address.
type NativeLedger struct {
	mu       sync.RWMutex
	balances map[solanago.PublicKey]uint64
}

func NewNativeLedger() *NativeLedger {
	return &NativeLedger{balances: make(map[solanago.PublicKey]uint64)}
}

// Credit adds lamports to an address, creating it if needed.
func (n *NativeLedger) Credit(to solanago.PublicKey, amount uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	sum, carry := bits.Add64(n.balances[to], amount, 0)
	if carry != 0 {
		return ErrBalanceOverflow
	}
	n.balances[to] = sum
	return nil
}

// Transfer moves lamports between addresses.
func (n *NativeLedger) Transfer(from, to solanago.PublicKey, amount uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.balances[from] < amount {
		return ErrInsufficientFunds
	}
	sum, carry := bits.Add64(n.balances[to], amount, 0)
	if carry != 0 {
		return ErrBalanceOverflow
	}
	n.balances[from] -= amount
	n.balances[to] = sum
	return nil
}

// Balance returns the lamport balance of an address.
func (n *NativeLedger) Balance(addr solanago.PublicKey) uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.balances[addr]
}
