package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
)

const (
	// PriceScale is the fixed-point scale of curve prices (6 implied decimals).
	PriceScale = 1_000_000

	// MaxBasisPoint is the basis-point denominator for fee rates.
	MaxBasisPoint = 10_000

	// MaxFeeBasisPoints caps the protocol fee at 10%.
	MaxFeeBasisPoints = 1000

	// DefaultReferralFeeBasisPoints is the referral share accrued per attributed
	// trade, 0.1% of gross volume.
	DefaultReferralFeeBasisPoints = 10

	// MinFundRaisingTarget is the minimum raise target, 30 SOL in lamports.
	MinFundRaisingTarget = 30_000_000_000

	// MinSellPercent and MaxSellPercent bound the share of total supply that
	// must be allocated to the bonding curve.
	MinSellPercent = 51
	MaxSellPercent = 80

	// MigrationRentBuffer is the lamport balance left behind on migration.
	MigrationRentBuffer = 5000

	MaxNameLen   = 32
	MaxSymbolLen = 10
	MaxURILen    = 200
)

type CurveType uint8

const (
	CurveTypeLinear CurveType = iota
	CurveTypeExponential
	CurveTypeLogarithmic
)

func (c CurveType) String() string {
	switch c {
	case CurveTypeLinear:
		return "linear"
	case CurveTypeExponential:
		return "exponential"
	case CurveTypeLogarithmic:
		return "logarithmic"
	}
	return "unknown"
}

type MigrateType uint8

const (
	MigrateTypeCPMM MigrateType = iota
	MigrateTypeCLMM
)

func (m MigrateType) String() string {
	switch m {
	case MigrateTypeCPMM:
		return "cpmm"
	case MigrateTypeCLMM:
		return "clmm"
	}
	return "unknown"
}

type LaunchStatus uint8

const (
	LaunchStatusActive LaunchStatus = iota
	LaunchStatusMigrated
	LaunchStatusCancelled
)

func (s LaunchStatus) String() string {
	switch s {
	case LaunchStatusActive:
		return "active"
	case LaunchStatusMigrated:
		return "migrated"
	case LaunchStatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

type Rounding uint8

const (
	RoundingUp Rounding = iota
	RoundingDown
)

// CreateLaunchParams carries the immutable configuration of a new launch.
type CreateLaunchParams struct {
	Name             string
	Symbol           string
	URI              string
	TotalSupply      uint64
	TotalSellAmount  uint64
	TotalFundRaising uint64
	CurveType        CurveType
	MigrateType      MigrateType
	CliffPeriod      int64
	UnlockPeriod     int64
}

// BuyResult reports the settled amounts of a buy.
type BuyResult struct {
	TokensOut      uint64
	FeeAmount      uint64
	CreatorFee     uint64
	CommunityFee   uint64
	ReferralReward uint64
	NetSol         uint64
}

// SellResult reports the settled amounts of a sell.
type SellResult struct {
	SolOut uint64
}

// MigrateResult reports the amounts that would move into the destination pool.
// Pool construction itself happens outside the engine.
type MigrateResult struct {
	Pool            solanago.PublicKey
	RemainingTokens uint64
	SolToMigrate    uint64
}
