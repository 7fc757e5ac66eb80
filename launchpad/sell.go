package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// SellTokens settles a sale back into the bonding curve at the current spot
// price. Sells carry no fee and require an existing position. All checks
// complete before the first transfer.
func (e *Engine) SellTokens(seller, mint solanago.PublicKey, tokenAmount, minSolOut uint64) (*SellResult, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	launch := entry.launch

	if launch.Status != LaunchStatusActive {
		return nil, ErrLaunchNotActive
	}
	if tokenAmount == 0 {
		return nil, ErrAmountTooSmall
	}

	positionAddr := DerivePositionAddress(entry.address, seller)
	e.mu.RLock()
	position := e.positions[positionAddr]
	e.mu.RUnlock()
	if position == nil {
		return nil, ErrPositionNotFound
	}

	solOut, err := launch.SolForTokens(tokenAmount)
	if err != nil {
		return nil, err
	}
	if solOut < minSolOut {
		return nil, ErrSlippageExceeded
	}
	if solOut > e.sol.Balance(entry.address) {
		return nil, ErrInsufficientSOL
	}
	if e.tokens.Balance(mint, seller) < tokenAmount {
		return nil, ErrInsufficientTokens
	}

	newTokensSold, err := CheckedSub(launch.TokensSold, tokenAmount)
	if err != nil {
		return nil, err
	}
	newSolRaised, err := CheckedSub(launch.SolRaised, solOut)
	if err != nil {
		return nil, err
	}
	newPositionSold, err := CheckedAdd(position.TokensSold, tokenAmount)
	if err != nil {
		return nil, err
	}
	newSolReceived, err := CheckedAdd(position.SolReceived, solOut)
	if err != nil {
		return nil, err
	}

	if err := e.tokens.Transfer(mint, seller, entry.address, tokenAmount); err != nil {
		return nil, err
	}
	if err := e.sol.Transfer(entry.address, seller, solOut); err != nil {
		return nil, err
	}

	launch.TokensSold = newTokensSold
	launch.SolRaised = newSolRaised
	position.TokensSold = newPositionSold
	position.SolReceived = newSolReceived

	e.logger.Info("tokens sold",
		zap.String("mint", mint.String()),
		zap.String("seller", seller.String()),
		zap.Uint64("tokens_in", tokenAmount),
		zap.Uint64("sol_out", solOut),
		zap.Uint64("progress_pct", launch.Progress()),
	)

	return &SellResult{SolOut: solOut}, nil
}
