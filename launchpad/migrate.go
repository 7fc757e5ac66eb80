package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Migrate transitions a launch whose funding goal is met from Active to
// Migrated and records the destination pool. The handoff of the remaining
// reserves into an actual liquidity pool happens outside the engine; the
// result reports the amounts that would move, keeping a small rent buffer
// behind. The transition is one-way.
func (e *Engine) Migrate(caller, mint, pool solanago.PublicKey) (*MigrateResult, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	launch := entry.launch

	if launch.Status != LaunchStatusActive {
		return nil, ErrAlreadyMigrated
	}
	if launch.SolRaised < launch.TotalFundRaising {
		return nil, ErrGoalNotReached
	}

	remainingTokens := e.tokens.Balance(mint, entry.address)
	solBalance := e.sol.Balance(entry.address)
	solToMigrate := solBalance
	if solToMigrate > MigrationRentBuffer {
		solToMigrate -= MigrationRentBuffer
	} else {
		solToMigrate = 0
	}

	launch.Status = LaunchStatusMigrated
	launch.MigrateTime = e.now()
	launch.PoolAddress = pool

	e.logger.Info("launch migrated",
		zap.String("mint", mint.String()),
		zap.String("caller", caller.String()),
		zap.String("pool", pool.String()),
		zap.String("migrate_type", launch.MigrateType.String()),
		zap.Uint64("tokens", remainingTokens),
		zap.Uint64("sol", solToMigrate),
	)

	return &MigrateResult{
		Pool:            pool,
		RemainingTokens: remainingTokens,
		SolToMigrate:    solToMigrate,
	}, nil
}
