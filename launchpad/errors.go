package launchpad

import "errors"

// Failure conditions surfaced by engine operations. Every operation either
// completes fully or returns one of these with no state mutated.
var (
	// Validation.
	ErrInvalidFeePercentage     = errors.New("invalid fee percentage")
	ErrInvalidSupply            = errors.New("invalid supply amount")
	ErrInvalidSellAmount        = errors.New("invalid sell amount - must be between 51% and 80% of supply")
	ErrInvalidFundRaisingTarget = errors.New("invalid fund raising target")
	ErrInvalidVestingPeriod     = errors.New("invalid vesting period")
	ErrInvalidCurveType         = errors.New("invalid curve type")
	ErrNameTooLong              = errors.New("name too long")
	ErrSymbolTooLong            = errors.New("symbol too long")
	ErrURITooLong               = errors.New("uri too long")
	ErrAmountTooSmall           = errors.New("amount too small")

	// State.
	ErrNotInitialized     = errors.New("launchpad not initialized")
	ErrAlreadyInitialized = errors.New("launchpad already initialized")
	ErrLaunchNotFound     = errors.New("launch not found")
	ErrLaunchExists       = errors.New("launch already exists")
	ErrLaunchNotActive    = errors.New("launch is not active")
	ErrAlreadyMigrated    = errors.New("launch already migrated")
	ErrGoalNotReached     = errors.New("bonding curve goal not reached yet")
	ErrPositionNotFound   = errors.New("user position not found")
	ErrReferralNotFound   = errors.New("referral not found")
	ErrInvalidAuthority   = errors.New("invalid authority")

	// Economic.
	ErrSlippageExceeded   = errors.New("slippage tolerance exceeded")
	ErrInsufficientTokens = errors.New("insufficient tokens in bonding curve")
	ErrInsufficientSOL    = errors.New("insufficient SOL in bonding curve")
	ErrNoFeesToClaim      = errors.New("no fees to claim")
	ErrNoRewardsToClaim   = errors.New("no rewards to claim")

	// Arithmetic.
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")
)
