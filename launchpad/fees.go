package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// ClaimCreatorFees releases the launch creator's accrued fee share from the
// launch reserve. Claiming is allowed in any lifecycle status.
func (e *Engine) ClaimCreatorFees(creator, mint solanago.PublicKey) (uint64, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return 0, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	launch := entry.launch

	if !launch.Creator.Equals(creator) {
		return 0, ErrInvalidAuthority
	}
	if launch.CreatorFeeEarned == 0 {
		return 0, ErrNoFeesToClaim
	}

	amount := launch.CreatorFeeEarned
	if e.sol.Balance(entry.address) < amount {
		return 0, ErrInsufficientSOL
	}
	if err := e.sol.Transfer(entry.address, creator, amount); err != nil {
		return 0, err
	}
	launch.CreatorFeeEarned = 0

	e.logger.Info("creator fees claimed",
		zap.String("mint", mint.String()),
		zap.String("creator", creator.String()),
		zap.Uint64("amount", amount),
	)
	return amount, nil
}
