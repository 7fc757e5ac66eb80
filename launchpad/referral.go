package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// AddReferral registers a referrer for a launch. The record starts zeroed and
// accrues from attributed buys. Registering the same (launch, referrer) pair
// again returns the existing record untouched.
func (e *Engine) AddReferral(mint, referrer solanago.PublicKey) (*Referral, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return nil, err
	}
	addr := DeriveReferralAddress(entry.address, referrer)

	// Launch lock before registry lock, the order settlement uses. Cloning an
	// existing record needs the launch lock since attributed buys mutate it
	// under that lock.
	entry.mu.Lock()
	defer entry.mu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()
	if existing, ok := e.referrals[addr]; ok {
		return existing.clone(), nil
	}

	referral := &Referral{Referrer: referrer, Launch: entry.address}
	e.referrals[addr] = referral

	e.logger.Info("referral added",
		zap.String("mint", mint.String()),
		zap.String("referrer", referrer.String()),
	)
	return referral.clone(), nil
}

// ClaimReferralRewards pays the referrer's unclaimed rewards out of the launch
// reserve, where attributed buys retained them.
func (e *Engine) ClaimReferralRewards(referrer, mint solanago.PublicKey) (uint64, error) {
	entry, err := e.launchEntry(mint)
	if err != nil {
		return 0, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	addr := DeriveReferralAddress(entry.address, referrer)
	e.mu.RLock()
	referral := e.referrals[addr]
	e.mu.RUnlock()
	if referral == nil {
		return 0, ErrReferralNotFound
	}
	if !referral.Referrer.Equals(referrer) {
		return 0, ErrInvalidAuthority
	}

	unclaimed, err := CheckedSub(referral.RewardsEarned, referral.RewardsClaimed)
	if err != nil {
		return 0, err
	}
	if unclaimed == 0 {
		return 0, ErrNoRewardsToClaim
	}
	if e.sol.Balance(entry.address) < unclaimed {
		return 0, ErrInsufficientSOL
	}
	if err := e.sol.Transfer(entry.address, referrer, unclaimed); err != nil {
		return 0, err
	}
	referral.RewardsClaimed = referral.RewardsEarned

	e.logger.Info("referral rewards claimed",
		zap.String("mint", mint.String()),
		zap.String("referrer", referrer.String()),
		zap.Uint64("amount", unclaimed),
	)
	return unclaimed, nil
}
