package launchpad

import (
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Initialize creates the global configuration. The fee is capped at 10% and
// the referral rate is fixed at its default. Calling twice fails.
func (e *Engine) Initialize(authority, communityPool solanago.PublicKey, feeBasisPoints uint16) (*LaunchpadConfig, error) {
	if feeBasisPoints > MaxFeeBasisPoints {
		return nil, ErrInvalidFeePercentage
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.config != nil {
		return nil, ErrAlreadyInitialized
	}

	e.config = &LaunchpadConfig{
		Authority:              authority,
		FeeBasisPoints:         feeBasisPoints,
		CommunityPool:          communityPool,
		ReferralFeeBasisPoints: DefaultReferralFeeBasisPoints,
	}

	e.logger.Info("launchpad initialized",
		zap.String("authority", authority.String()),
		zap.Uint16("fee_bps", feeBasisPoints),
	)
	return e.config.clone(), nil
}

func validateCreateParams(params CreateLaunchParams) error {
	if len(params.Name) > MaxNameLen {
		return ErrNameTooLong
	}
	if len(params.Symbol) > MaxSymbolLen {
		return ErrSymbolTooLong
	}
	if len(params.URI) > MaxURILen {
		return ErrURITooLong
	}
	if params.TotalSupply == 0 {
		return ErrInvalidSupply
	}
	if params.CurveType > CurveTypeLogarithmic {
		return ErrInvalidCurveType
	}

	// Sell allocation must land in the 51%-80% band of total supply.
	supply := new(big.Int).SetUint64(params.TotalSupply)
	sellAmount := new(big.Int).SetUint64(params.TotalSellAmount)
	minSell, err := MulDiv(supply, big.NewInt(MinSellPercent), big.NewInt(100), RoundingDown)
	if err != nil {
		return err
	}
	maxSell, err := MulDiv(supply, big.NewInt(MaxSellPercent), big.NewInt(100), RoundingDown)
	if err != nil {
		return err
	}
	if sellAmount.Cmp(minSell) < 0 || sellAmount.Cmp(maxSell) > 0 {
		return ErrInvalidSellAmount
	}

	if params.TotalFundRaising < MinFundRaisingTarget {
		return ErrInvalidFundRaisingTarget
	}
	if params.CliffPeriod < 0 || params.UnlockPeriod < 0 {
		return ErrInvalidVestingPeriod
	}
	return nil
}

// CreateLaunch registers a new sale and mints the full supply to the launch
// reserve. The mint is derived from (creator, name); the launch address from
// the mint.
func (e *Engine) CreateLaunch(creator solanago.PublicKey, params CreateLaunchParams) (*Launch, error) {
	if err := validateCreateParams(params); err != nil {
		return nil, err
	}

	mint := DeriveMintAddress(creator, params.Name)
	launchAddress := DeriveLaunchAddress(mint)

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.launches[mint]; ok {
		return nil, ErrLaunchExists
	}

	launch := &Launch{
		Creator:          creator,
		Mint:             mint,
		Name:             params.Name,
		Symbol:           params.Symbol,
		URI:              params.URI,
		TotalSupply:      params.TotalSupply,
		TotalSellAmount:  params.TotalSellAmount,
		TotalFundRaising: params.TotalFundRaising,
		CurveType:        params.CurveType,
		MigrateType:      params.MigrateType,
		Status:           LaunchStatusActive,
		CliffPeriod:      params.CliffPeriod,
		UnlockPeriod:     params.UnlockPeriod,
		LaunchTime:       e.now(),
	}

	if err := e.tokens.Mint(mint, launchAddress, params.TotalSupply); err != nil {
		return nil, fmt.Errorf("mint supply: %w", err)
	}
	e.launches[mint] = &launchEntry{address: launchAddress, launch: launch}

	e.logger.Info("launch created",
		zap.String("name", launch.Name),
		zap.String("symbol", launch.Symbol),
		zap.String("mint", mint.String()),
		zap.Uint64("supply", launch.TotalSupply),
		zap.Uint64("sell_amount", launch.TotalSellAmount),
		zap.Uint64("fund_target", launch.TotalFundRaising),
		zap.String("curve", launch.CurveType.String()),
	)
	return launch.clone(), nil
}
