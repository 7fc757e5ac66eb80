package launchpad

import (
	"math/big"
)

var (
	priceScaleBig = big.NewInt(PriceScale)

	// Logarithmic curve breakpoint: below 10% progress the price grows at the
	// linear rate, above it the growth rate is halved.
	logBreakpoint = big.NewInt(100_000)
)

// CalculatePrice returns the spot unit price, scaled by PriceScale, for the
// given cumulative sold count. Whole trades are priced at this single spot
// value rather than an integral over the traded range, so a non-flat curve
// undercharges buyers and underpays sellers slightly relative to a true
// integral.
func CalculatePrice(curve CurveType, totalSellAmount, totalFundRaising, tokensSold uint64) (uint64, error) {
	if totalSellAmount == 0 {
		return 0, nil
	}

	sellAmount := new(big.Int).SetUint64(totalSellAmount)
	progress, err := MulDiv(new(big.Int).SetUint64(tokensSold), priceScaleBig, sellAmount, RoundingDown)
	if err != nil {
		return 0, err
	}
	basePrice, err := MulDiv(new(big.Int).SetUint64(totalFundRaising), priceScaleBig, sellAmount, RoundingDown)
	if err != nil {
		return 0, err
	}

	var price *big.Int
	switch curve {
	case CurveTypeLinear:
		// price = base_price * (1 + progress)
		scaled, err := MulDiv(basePrice, progress, priceScaleBig, RoundingDown)
		if err != nil {
			return 0, err
		}
		price = new(big.Int).Add(basePrice, scaled)
	case CurveTypeExponential:
		// price = base_price * ((1 + progress)^2)
		multiplier := new(big.Int).Add(priceScaleBig, progress)
		squared, err := MulDiv(multiplier, multiplier, priceScaleBig, RoundingDown)
		if err != nil {
			return 0, err
		}
		price, err = MulDiv(basePrice, squared, priceScaleBig, RoundingDown)
		if err != nil {
			return 0, err
		}
	case CurveTypeLogarithmic:
		logApprox := progress
		if progress.Cmp(logBreakpoint) >= 0 {
			over := new(big.Int).Sub(progress, logBreakpoint)
			logApprox = new(big.Int).Add(logBreakpoint, new(big.Int).Rsh(over, 1))
		}
		multiplier := new(big.Int).Add(priceScaleBig, logApprox)
		price, err = MulDiv(basePrice, multiplier, priceScaleBig, RoundingDown)
		if err != nil {
			return 0, err
		}
	default:
		// A corrupt curve byte must not silently price as linear.
		return 0, ErrInvalidCurveType
	}

	return ToUint64(price)
}

// TokensForSol converts a lamport amount into tokens at the current spot
// price. Returns 0 when the price is 0.
func TokensForSol(curve CurveType, totalSellAmount, totalFundRaising, tokensSold, solAmount uint64) (uint64, error) {
	price, err := CalculatePrice(curve, totalSellAmount, totalFundRaising, tokensSold)
	if err != nil {
		return 0, err
	}
	if price == 0 {
		return 0, nil
	}
	out, err := MulDiv(new(big.Int).SetUint64(solAmount), priceScaleBig, new(big.Int).SetUint64(price), RoundingDown)
	if err != nil {
		return 0, err
	}
	return ToUint64(out)
}

// SolForTokens converts a token amount into lamports at the current spot
// price.
func SolForTokens(curve CurveType, totalSellAmount, totalFundRaising, tokensSold, tokenAmount uint64) (uint64, error) {
	price, err := CalculatePrice(curve, totalSellAmount, totalFundRaising, tokensSold)
	if err != nil {
		return 0, err
	}
	out, err := MulDiv(new(big.Int).SetUint64(tokenAmount), new(big.Int).SetUint64(price), priceScaleBig, RoundingDown)
	if err != nil {
		return 0, err
	}
	return ToUint64(out)
}

// CalculatePrice returns the launch's spot price at the given sold count.
func (l *Launch) CalculatePrice(tokensSold uint64) (uint64, error) {
	return CalculatePrice(l.CurveType, l.TotalSellAmount, l.TotalFundRaising, tokensSold)
}

// TokensForSol quotes a buy at the launch's current sold count.
func (l *Launch) TokensForSol(solAmount uint64) (uint64, error) {
	return TokensForSol(l.CurveType, l.TotalSellAmount, l.TotalFundRaising, l.TokensSold, solAmount)
}

// SolForTokens quotes a sell at the launch's current sold count.
func (l *Launch) SolForTokens(tokenAmount uint64) (uint64, error) {
	return SolForTokens(l.CurveType, l.TotalSellAmount, l.TotalFundRaising, l.TokensSold, tokenAmount)
}

// Progress returns how much of the sell allocation has been sold, in whole
// percent.
func (l *Launch) Progress() uint64 {
	if l.TotalSellAmount == 0 {
		return 0
	}
	progress, err := MulDivU64(l.TokensSold, 100, l.TotalSellAmount)
	if err != nil {
		return 0
	}
	return progress
}
