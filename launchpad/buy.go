package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// BuyTokens settles a purchase against the bonding curve. The whole trade is
// quoted at the pre-trade spot price. The gross amount is fee'd in basis
// points; the creator half accrues on the launch, the community half moves to
// the community pool. A zero referrer means no attribution; a referrer with a
// registered referral record accrues volume and rewards out of the community
// share.
//
// Every check, including ledger solvency, completes before the first transfer
// so a failure leaves no partial state.
func (e *Engine) BuyTokens(buyer, mint solanago.PublicKey, solAmount, minTokensOut uint64, referrer solanago.PublicKey) (*BuyResult, error) {
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

	if launch.Status != LaunchStatusActive {
		return nil, ErrLaunchNotActive
	}
	if solAmount == 0 {
		return nil, ErrAmountTooSmall
	}

	tokensOut, err := launch.TokensForSol(solAmount)
	if err != nil {
		return nil, err
	}
	if tokensOut < minTokensOut {
		return nil, ErrSlippageExceeded
	}
	remaining, err := CheckedSub(launch.TotalSellAmount, launch.TokensSold)
	if err != nil {
		return nil, err
	}
	if tokensOut > remaining {
		return nil, ErrInsufficientTokens
	}

	feeAmount, err := MulDivU64(solAmount, uint64(config.FeeBasisPoints), MaxBasisPoint)
	if err != nil {
		return nil, err
	}
	creatorFee := feeAmount / 2
	communityFee := feeAmount - creatorFee
	netSol, err := CheckedSub(solAmount, feeAmount)
	if err != nil {
		return nil, err
	}

	// Referral attribution. The reward comes out of the community share and is
	// retained in the launch reserve until claimed.
	var referral *Referral
	var referralReward uint64
	if !referrer.IsZero() {
		e.mu.RLock()
		referral = e.referrals[DeriveReferralAddress(entry.address, referrer)]
		e.mu.RUnlock()
		if referral != nil {
			referralReward, err = MulDivU64(solAmount, uint64(config.ReferralFeeBasisPoints), MaxBasisPoint)
			if err != nil {
				return nil, err
			}
			if referralReward > communityFee {
				referralReward = communityFee
			}
		}
	}
	communityShare := communityFee - referralReward

	// Stage every counter update before touching the ledgers.
	newTokensSold, err := CheckedAdd(launch.TokensSold, tokensOut)
	if err != nil {
		return nil, err
	}
	newSolRaised, err := CheckedAdd(launch.SolRaised, netSol)
	if err != nil {
		return nil, err
	}
	newCreatorFee, err := CheckedAdd(launch.CreatorFeeEarned, creatorFee)
	if err != nil {
		return nil, err
	}

	positionAddr := DerivePositionAddress(entry.address, buyer)
	e.mu.RLock()
	position := e.positions[positionAddr]
	e.mu.RUnlock()
	if position == nil {
		position = &UserPosition{User: buyer, Launch: entry.address}
	}
	newTokensBought, err := CheckedAdd(position.TokensBought, tokensOut)
	if err != nil {
		return nil, err
	}
	newSolSpent, err := CheckedAdd(position.SolSpent, solAmount)
	if err != nil {
		return nil, err
	}

	var newVolume, newRewards uint64
	if referral != nil {
		if newVolume, err = CheckedAdd(referral.VolumeGenerated, solAmount); err != nil {
			return nil, err
		}
		if newRewards, err = CheckedAdd(referral.RewardsEarned, referralReward); err != nil {
			return nil, err
		}
	}

	// The buyer funds the net amount, the community share and the retained
	// referral reward; the creator half of the fee never leaves the buyer and
	// accrues as a claim on the reserve.
	totalDebit, err := CheckedSub(solAmount, creatorFee)
	if err != nil {
		return nil, err
	}
	if e.sol.Balance(buyer) < totalDebit {
		return nil, ErrInsufficientSOL
	}
	if e.tokens.Balance(mint, entry.address) < tokensOut {
		return nil, ErrInsufficientTokens
	}

	reserveCredit, err := CheckedAdd(netSol, referralReward)
	if err != nil {
		return nil, err
	}
	if err := e.sol.Transfer(buyer, entry.address, reserveCredit); err != nil {
		return nil, err
	}
	if communityShare > 0 {
		if err := e.sol.Transfer(buyer, config.CommunityPool, communityShare); err != nil {
			return nil, err
		}
	}
	if err := e.tokens.Transfer(mint, entry.address, buyer, tokensOut); err != nil {
		return nil, err
	}

	launch.TokensSold = newTokensSold
	launch.SolRaised = newSolRaised
	launch.CreatorFeeEarned = newCreatorFee

	position.TokensBought = newTokensBought
	position.SolSpent = newSolSpent
	e.mu.Lock()
	e.positions[positionAddr] = position
	e.mu.Unlock()

	if referral != nil {
		referral.VolumeGenerated = newVolume
		referral.RewardsEarned = newRewards
	}

	e.logger.Info("tokens bought",
		zap.String("mint", mint.String()),
		zap.String("buyer", buyer.String()),
		zap.Uint64("sol_in", solAmount),
		zap.Uint64("tokens_out", tokensOut),
		zap.Uint64("fee", feeAmount),
		zap.Uint64("progress_pct", launch.Progress()),
	)

	return &BuyResult{
		TokensOut:      tokensOut,
		FeeAmount:      feeAmount,
		CreatorFee:     creatorFee,
		CommunityFee:   communityFee,
		ReferralReward: referralReward,
		NetSol:         netSol,
	}, nil
}
