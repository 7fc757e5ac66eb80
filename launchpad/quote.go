package launchpad

import (
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// BuyQuote previews a buy without settling it.
type BuyQuote struct {
	// Price is the spot price in lamports per token unit.
	Price     decimal.Decimal
	PriceRaw  uint64
	TokensOut uint64
	FeeAmount uint64
	NetSol    uint64
}

// SellQuote previews a sell without settling it.
type SellQuote struct {
	Price    decimal.Decimal
	PriceRaw uint64
	SolOut   uint64
}

func priceDecimal(raw uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -6)
}

// QuoteBuy returns the tokens a buy of solAmount would settle at the current
// state, with the fee the configured rate would take. Quoting does not check
// remaining supply; settlement does.
func (e *Engine) QuoteBuy(mint solanago.PublicKey, solAmount uint64) (*BuyQuote, error) {
	config, err := e.configSnapshot()
	if err != nil {
		return nil, err
	}
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	launch := entry.launch

	price, err := launch.CalculatePrice(launch.TokensSold)
	if err != nil {
		return nil, err
	}
	tokensOut, err := launch.TokensForSol(solAmount)
	if err != nil {
		return nil, err
	}
	feeAmount, err := MulDivU64(solAmount, uint64(config.FeeBasisPoints), MaxBasisPoint)
	if err != nil {
		return nil, err
	}
	netSol, err := CheckedSub(solAmount, feeAmount)
	if err != nil {
		return nil, err
	}

	return &BuyQuote{
		Price:     priceDecimal(price),
		PriceRaw:  price,
		TokensOut: tokensOut,
		FeeAmount: feeAmount,
		NetSol:    netSol,
	}, nil
}

// QuoteSell returns the lamports a sell of tokenAmount would settle at the
// current state.
func (e *Engine) QuoteSell(mint solanago.PublicKey, tokenAmount uint64) (*SellQuote, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	launch := entry.launch

	price, err := launch.CalculatePrice(launch.TokensSold)
	if err != nil {
		return nil, err
	}
	solOut, err := launch.SolForTokens(tokenAmount)
	if err != nil {
		return nil, err
	}

	return &SellQuote{
		Price:    priceDecimal(price),
		PriceRaw: price,
		SolOut:   solOut,
	}, nil
}

// Progress returns the sold share of the sell allocation in whole percent.
func (e *Engine) Progress(mint solanago.PublicKey) (uint64, error) {
	launch, err := e.GetLaunch(mint)
	if err != nil {
		return 0, err
	}
	return launch.Progress(), nil
}

// ProgressDecimal returns the sold share of the sell allocation as an exact
// percentage.
func (e *Engine) ProgressDecimal(mint solanago.PublicKey) (decimal.Decimal, error) {
	launch, err := e.GetLaunch(mint)
	if err != nil {
		return decimal.Zero, err
	}
	if launch.TotalSellAmount == 0 {
		return decimal.Zero, nil
	}
	sold := decimal.NewFromBigInt(new(big.Int).SetUint64(launch.TokensSold), 2)
	total := decimal.NewFromBigInt(new(big.Int).SetUint64(launch.TotalSellAmount), 0)
	return sold.DivRound(total, 6), nil
}
