package launchpad

import (
	"errors"
	"strings"
	"sync"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cryptoEnthu14/LaunchPad/ledger"
)

const testClock = int64(1_700_000_000)

type testEnv struct {
	engine        *Engine
	tokens        *ledger.TokenLedger
	sol           *ledger.NativeLedger
	authority     solanago.PublicKey
	communityPool solanago.PublicKey
}

func newTestEnv(t *testing.T, feeBasisPoints uint16) *testEnv {
	t.Helper()
	env := &testEnv{
		tokens:        ledger.NewTokenLedger(),
		sol:           ledger.NewNativeLedger(),
		authority:     solanago.NewWallet().PublicKey(),
		communityPool: solanago.NewWallet().PublicKey(),
	}
	env.engine = NewEngine(env.tokens, env.sol,
		WithLogger(zaptest.NewLogger(t)),
		WithClock(func() int64 { return testClock }),
	)
	_, err := env.engine.Initialize(env.authority, env.communityPool, feeBasisPoints)
	require.NoError(t, err)
	return env
}

func testLaunchParams() CreateLaunchParams {
	return CreateLaunchParams{
		Name:             "Test Token",
		Symbol:           "TEST",
		URI:              "https://example.com/meta.json",
		TotalSupply:      1_000_000_000,
		TotalSellAmount:  600_000_000, // 60%
		TotalFundRaising: 30_000_000_000,
		CurveType:        CurveTypeLinear,
		MigrateType:      MigrateTypeCPMM,
	}
}

func (env *testEnv) createLaunch(t *testing.T, creator solanago.PublicKey) *Launch {
	t.Helper()
	launch, err := env.engine.CreateLaunch(creator, testLaunchParams())
	require.NoError(t, err)
	return launch
}

func (env *testEnv) fund(t *testing.T, addr solanago.PublicKey, lamports uint64) {
	t.Helper()
	require.NoError(t, env.sol.Credit(addr, lamports))
}

func TestInitialize(t *testing.T) {
	env := newTestEnv(t, 100)

	config, err := env.engine.GetConfig()
	require.NoError(t, err)
	require.Equal(t, env.authority, config.Authority)
	require.Equal(t, uint16(100), config.FeeBasisPoints)
	require.Equal(t, uint16(DefaultReferralFeeBasisPoints), config.ReferralFeeBasisPoints)

	_, err = env.engine.Initialize(env.authority, env.communityPool, 100)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestInitializeFeeCap(t *testing.T) {
	engine := NewEngine(ledger.NewTokenLedger(), ledger.NewNativeLedger())
	_, err := engine.Initialize(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), MaxFeeBasisPoints+1)
	require.ErrorIs(t, err, ErrInvalidFeePercentage)

	_, err = engine.Initialize(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), MaxFeeBasisPoints)
	require.NoError(t, err)
}

func TestCreateLaunch(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()

	launch := env.createLaunch(t, creator)
	require.Equal(t, creator, launch.Creator)
	require.Equal(t, DeriveMintAddress(creator, "Test Token"), launch.Mint)
	require.Equal(t, LaunchStatusActive, launch.Status)
	require.Equal(t, testClock, launch.LaunchTime)
	require.Zero(t, launch.TokensSold)
	require.Zero(t, launch.SolRaised)

	// Full supply is minted into the launch reserve.
	reserveTokens, reserveSol, err := env.engine.ReserveBalances(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, launch.TotalSupply, reserveTokens)
	require.Zero(t, reserveSol)

	_, err = env.engine.CreateLaunch(creator, testLaunchParams())
	require.ErrorIs(t, err, ErrLaunchExists)
}

func TestCreateLaunchValidation(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()

	cases := []struct {
		name   string
		mutate func(*CreateLaunchParams)
		err    error
	}{
		{"name too long", func(p *CreateLaunchParams) { p.Name = strings.Repeat("x", MaxNameLen+1) }, ErrNameTooLong},
		{"symbol too long", func(p *CreateLaunchParams) { p.Symbol = strings.Repeat("x", MaxSymbolLen+1) }, ErrSymbolTooLong},
		{"uri too long", func(p *CreateLaunchParams) { p.URI = strings.Repeat("x", MaxURILen+1) }, ErrURITooLong},
		{"zero supply", func(p *CreateLaunchParams) { p.TotalSupply = 0; p.TotalSellAmount = 0 }, ErrInvalidSupply},
		{"sell at 50%", func(p *CreateLaunchParams) { p.TotalSellAmount = 500_000_000 }, ErrInvalidSellAmount},
		{"sell above 80%", func(p *CreateLaunchParams) { p.TotalSellAmount = 800_000_001 }, ErrInvalidSellAmount},
		{"target below minimum", func(p *CreateLaunchParams) { p.TotalFundRaising = MinFundRaisingTarget - 1 }, ErrInvalidFundRaisingTarget},
		{"negative cliff", func(p *CreateLaunchParams) { p.CliffPeriod = -1 }, ErrInvalidVestingPeriod},
		{"unknown curve", func(p *CreateLaunchParams) { p.CurveType = CurveType(5) }, ErrInvalidCurveType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := testLaunchParams()
			tc.mutate(&params)
			_, err := env.engine.CreateLaunch(creator, params)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestCreateLaunchSellBandBoundaries(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()

	params := testLaunchParams()
	params.Name = "At 51"
	params.TotalSellAmount = 510_000_000 // exactly 51%
	_, err := env.engine.CreateLaunch(creator, params)
	require.NoError(t, err)

	params.Name = "At 80"
	params.TotalSellAmount = 800_000_000 // exactly 80%
	_, err = env.engine.CreateLaunch(creator, params)
	require.NoError(t, err)
}

func TestBuyTokens(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, buyer, 1_000_000_000)

	res, err := env.engine.BuyTokens(buyer, launch.Mint, 500_000_000, 10_000_000, solanago.PublicKey{})
	require.NoError(t, err)
	require.Equal(t, uint64(10_000_000), res.TokensOut)
	require.Equal(t, uint64(5_000_000), res.FeeAmount)
	require.Equal(t, uint64(2_500_000), res.CreatorFee)
	require.Equal(t, uint64(2_500_000), res.CommunityFee)
	require.Equal(t, uint64(495_000_000), res.NetSol)
	require.Zero(t, res.ReferralReward)

	updated, err := env.engine.GetLaunch(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000_000), updated.TokensSold)
	require.Equal(t, uint64(495_000_000), updated.SolRaised)
	require.Equal(t, uint64(2_500_000), updated.CreatorFeeEarned)

	// Buyer paid the net amount plus the community share; the creator half of
	// the fee accrues without moving.
	require.Equal(t, uint64(502_500_000), env.sol.Balance(buyer))
	require.Equal(t, uint64(10_000_000), env.tokens.Balance(launch.Mint, buyer))
	require.Equal(t, uint64(2_500_000), env.sol.Balance(env.communityPool))

	_, reserveSol, err := env.engine.ReserveBalances(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(495_000_000), reserveSol)

	// Position tracks gross spend.
	position, err := env.engine.GetPosition(launch.Mint, buyer)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000_000), position.TokensBought)
	require.Equal(t, uint64(500_000_000), position.SolSpent)

	progress, err := env.engine.Progress(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(1), progress)
}

func TestBuyTokensRejections(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)

	_, err := env.engine.BuyTokens(buyer, launch.Mint, 0, 0, solanago.PublicKey{})
	require.ErrorIs(t, err, ErrAmountTooSmall)

	// Quote is 10M tokens; demanding more trips the slippage floor.
	_, err = env.engine.BuyTokens(buyer, launch.Mint, 500_000_000, 10_000_001, solanago.PublicKey{})
	require.ErrorIs(t, err, ErrSlippageExceeded)

	// 50 SOL quotes 1B tokens against a 600M allocation.
	_, err = env.engine.BuyTokens(buyer, launch.Mint, 50_000_000_000, 0, solanago.PublicKey{})
	require.ErrorIs(t, err, ErrInsufficientTokens)

	// Unfunded buyer fails before any transfer.
	_, err = env.engine.BuyTokens(buyer, launch.Mint, 500_000_000, 0, solanago.PublicKey{})
	require.ErrorIs(t, err, ErrInsufficientSOL)
	launchAfter, err := env.engine.GetLaunch(launch.Mint)
	require.NoError(t, err)
	require.Zero(t, launchAfter.TokensSold)

	_, err = env.engine.BuyTokens(buyer, solanago.NewWallet().PublicKey(), 1, 0, solanago.PublicKey{})
	require.ErrorIs(t, err, ErrLaunchNotFound)
}

func TestBuyRequiresInitializedConfig(t *testing.T) {
	engine := NewEngine(ledger.NewTokenLedger(), ledger.NewNativeLedger())
	_, err := engine.BuyTokens(solanago.NewWallet().PublicKey(), solanago.NewWallet().PublicKey(), 1, 0, solanago.PublicKey{})
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestSellTokens(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	trader := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, trader, 1_000_000_000)

	_, err := env.engine.BuyTokens(trader, launch.Mint, 500_000_000, 0, solanago.PublicKey{})
	require.NoError(t, err)

	// Spot price after the buy: 50_833_300 per million units.
	res, err := env.engine.SellTokens(trader, launch.Mint, 1_000_000, 50_833_300)
	require.NoError(t, err)
	require.Equal(t, uint64(50_833_300), res.SolOut)

	updated, err := env.engine.GetLaunch(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(9_000_000), updated.TokensSold)
	require.Equal(t, uint64(444_166_700), updated.SolRaised)

	position, err := env.engine.GetPosition(launch.Mint, trader)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), position.TokensSold)
	require.Equal(t, uint64(50_833_300), position.SolReceived)
	require.Equal(t, uint64(9_000_000), env.tokens.Balance(launch.Mint, trader))
}

func TestSellTokensRejections(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	trader := solanago.NewWallet().PublicKey()
	stranger := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, trader, 1_000_000_000)

	// Sells require a prior position.
	_, err := env.engine.SellTokens(stranger, launch.Mint, 1, 0)
	require.ErrorIs(t, err, ErrPositionNotFound)

	_, err = env.engine.BuyTokens(trader, launch.Mint, 500_000_000, 0, solanago.PublicKey{})
	require.NoError(t, err)

	_, err = env.engine.SellTokens(trader, launch.Mint, 0, 0)
	require.ErrorIs(t, err, ErrAmountTooSmall)

	quote, err := env.engine.QuoteSell(launch.Mint, 1_000_000)
	require.NoError(t, err)
	_, err = env.engine.SellTokens(trader, launch.Mint, 1_000_000, quote.SolOut+1)
	require.ErrorIs(t, err, ErrSlippageExceeded)

	// Selling the full buy back at the higher post-buy spot price would drain
	// more than the reserve holds; the single-spot-price quote makes the
	// position worth more than the net raise, and the solvency check stops it.
	_, err = env.engine.SellTokens(trader, launch.Mint, 10_000_000, 0)
	require.ErrorIs(t, err, ErrInsufficientSOL)
}

func TestMigrateLifecycle(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	pool := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, buyer, 40_000_000_000)

	_, err := env.engine.Migrate(buyer, launch.Mint, pool)
	require.ErrorIs(t, err, ErrGoalNotReached)

	// Two buys push the net raise past the 30 SOL target.
	res1, err := env.engine.BuyTokens(buyer, launch.Mint, 15_000_000_000, 0, solanago.PublicKey{})
	require.NoError(t, err)
	require.Equal(t, uint64(300_000_000), res1.TokensOut)

	res2, err := env.engine.BuyTokens(buyer, launch.Mint, 15_400_000_000, 0, solanago.PublicKey{})
	require.NoError(t, err)
	require.Equal(t, uint64(205_333_333), res2.TokensOut)

	updated, err := env.engine.GetLaunch(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(30_096_000_000), updated.SolRaised)

	res, err := env.engine.Migrate(buyer, launch.Mint, pool)
	require.NoError(t, err)
	require.Equal(t, pool, res.Pool)
	require.Equal(t, uint64(1_000_000_000-505_333_333), res.RemainingTokens)
	require.Equal(t, uint64(30_096_000_000-MigrationRentBuffer), res.SolToMigrate)

	migrated, err := env.engine.GetLaunch(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, LaunchStatusMigrated, migrated.Status)
	require.Equal(t, testClock, migrated.MigrateTime)
	require.Equal(t, pool, migrated.PoolAddress)

	// The transition is one-way and freezes trading.
	_, err = env.engine.Migrate(buyer, launch.Mint, pool)
	require.ErrorIs(t, err, ErrAlreadyMigrated)
	_, err = env.engine.BuyTokens(buyer, launch.Mint, 1_000_000, 0, solanago.PublicKey{})
	require.ErrorIs(t, err, ErrLaunchNotActive)
	_, err = env.engine.SellTokens(buyer, launch.Mint, 1, 0)
	require.ErrorIs(t, err, ErrLaunchNotActive)

	// Creator fees stay claimable after migration.
	claimed, err := env.engine.ClaimCreatorFees(creator, launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(152_000_000), claimed)
}

func TestMigrateGoalBoundary(t *testing.T) {
	env := newTestEnv(t, 0)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	pool := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, buyer, 31_000_000_000)

	// One lamport short of the target.
	_, err := env.engine.BuyTokens(buyer, launch.Mint, 29_999_999_999, 0, solanago.PublicKey{})
	require.NoError(t, err)
	updated, err := env.engine.GetLaunch(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(29_999_999_999), updated.SolRaised)

	_, err = env.engine.Migrate(buyer, launch.Mint, pool)
	require.ErrorIs(t, err, ErrGoalNotReached)

	_, err = env.engine.BuyTokens(buyer, launch.Mint, 1, 0, solanago.PublicKey{})
	require.NoError(t, err)

	_, err = env.engine.Migrate(buyer, launch.Mint, pool)
	require.NoError(t, err)
	_, err = env.engine.Migrate(buyer, launch.Mint, pool)
	require.ErrorIs(t, err, ErrAlreadyMigrated)
}

func TestClaimCreatorFees(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, buyer, 1_000_000_000)

	_, err := env.engine.ClaimCreatorFees(creator, launch.Mint)
	require.ErrorIs(t, err, ErrNoFeesToClaim)

	_, err = env.engine.BuyTokens(buyer, launch.Mint, 500_000_000, 0, solanago.PublicKey{})
	require.NoError(t, err)

	_, err = env.engine.ClaimCreatorFees(buyer, launch.Mint)
	require.ErrorIs(t, err, ErrInvalidAuthority)

	claimed, err := env.engine.ClaimCreatorFees(creator, launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(2_500_000), claimed)
	require.Equal(t, uint64(2_500_000), env.sol.Balance(creator))

	updated, err := env.engine.GetLaunch(launch.Mint)
	require.NoError(t, err)
	require.Zero(t, updated.CreatorFeeEarned)

	_, err = env.engine.ClaimCreatorFees(creator, launch.Mint)
	require.ErrorIs(t, err, ErrNoFeesToClaim)
}

func TestReferralAccrualAndClaim(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	referrer := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, buyer, 2_000_000_000)

	_, err := env.engine.ClaimReferralRewards(referrer, launch.Mint)
	require.ErrorIs(t, err, ErrReferralNotFound)

	referral, err := env.engine.AddReferral(launch.Mint, referrer)
	require.NoError(t, err)
	require.Zero(t, referral.VolumeGenerated)
	require.Zero(t, referral.RewardsEarned)

	// 1 SOL gross: fee 10M, community half 5M, referral share 0.1% = 1M.
	res, err := env.engine.BuyTokens(buyer, launch.Mint, 1_000_000_000, 0, referrer)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), res.ReferralReward)
	require.Equal(t, uint64(4_000_000), env.sol.Balance(env.communityPool))

	referral, err = env.engine.GetReferral(launch.Mint, referrer)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000_000), referral.VolumeGenerated)
	require.Equal(t, uint64(1_000_000), referral.RewardsEarned)
	require.Zero(t, referral.RewardsClaimed)

	// Re-registering never resets an accruing record.
	referral, err = env.engine.AddReferral(launch.Mint, referrer)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000_000), referral.VolumeGenerated)

	claimed, err := env.engine.ClaimReferralRewards(referrer, launch.Mint)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), claimed)
	require.Equal(t, uint64(1_000_000), env.sol.Balance(referrer))

	_, err = env.engine.ClaimReferralRewards(referrer, launch.Mint)
	require.ErrorIs(t, err, ErrNoRewardsToClaim)
}

func TestBuyWithUnregisteredReferrer(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, buyer, 2_000_000_000)

	// No referral record: the whole community half reaches the pool.
	res, err := env.engine.BuyTokens(buyer, launch.Mint, 1_000_000_000, 0, solanago.NewWallet().PublicKey())
	require.NoError(t, err)
	require.Zero(t, res.ReferralReward)
	require.Equal(t, uint64(5_000_000), env.sol.Balance(env.communityPool))
}

func TestQuotes(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)

	buyQuote, err := env.engine.QuoteBuy(launch.Mint, 500_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(50_000_000), buyQuote.PriceRaw)
	require.Equal(t, "50", buyQuote.Price.String())
	require.Equal(t, uint64(10_000_000), buyQuote.TokensOut)
	require.Equal(t, uint64(5_000_000), buyQuote.FeeAmount)
	require.Equal(t, uint64(495_000_000), buyQuote.NetSol)

	sellQuote, err := env.engine.QuoteSell(launch.Mint, 10_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(500_000_000), sellQuote.SolOut)
}

func TestProgressDecimal(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, buyer, 1_000_000_000)

	progress, err := env.engine.ProgressDecimal(launch.Mint)
	require.NoError(t, err)
	require.True(t, progress.IsZero())

	_, err = env.engine.BuyTokens(buyer, launch.Mint, 500_000_000, 0, solanago.PublicKey{})
	require.NoError(t, err)

	// 10M of 600M sold.
	progress, err = env.engine.ProgressDecimal(launch.Mint)
	require.NoError(t, err)
	require.Equal(t, "1.666667", progress.String())
}

func TestLaunchAccountData(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)

	data, err := env.engine.LaunchAccountData(launch.Mint)
	require.NoError(t, err)
	parsed, err := ParseLaunch(data)
	require.NoError(t, err)
	require.Equal(t, launch, parsed)
}

func TestConcurrentTradesAndReads(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	buyer := solanago.NewWallet().PublicKey()
	referrer := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, buyer, 10_000_000_000)

	_, err := env.engine.AddReferral(launch.Mint, referrer)
	require.NoError(t, err)

	const buys = 50
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < buys; i++ {
			if _, err := env.engine.BuyTokens(buyer, launch.Mint, 1_000_000, 0, referrer); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	// Reads of the same position and referral records must see consistent
	// snapshots while settlement mutates them.
	go func() {
		defer wg.Done()
		for i := 0; i < buys; i++ {
			if _, err := env.engine.GetPosition(launch.Mint, buyer); err != nil && !errors.Is(err, ErrPositionNotFound) {
				t.Error(err)
				return
			}
			referral, err := env.engine.GetReferral(launch.Mint, referrer)
			if err != nil {
				t.Error(err)
				return
			}
			if referral.RewardsEarned%1_000 != 0 {
				t.Errorf("torn referral read: rewards %d", referral.RewardsEarned)
				return
			}
			if _, err := env.engine.AddReferral(launch.Mint, referrer); err != nil {
				t.Error(err)
				return
			}
			if _, err := env.engine.GetLaunch(launch.Mint); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	wg.Wait()

	position, err := env.engine.GetPosition(launch.Mint, buyer)
	require.NoError(t, err)
	require.Equal(t, uint64(buys*1_000_000), position.SolSpent)

	// Each attributed 1_000_000-lamport buy accrues a 1_000-lamport reward.
	referral, err := env.engine.GetReferral(launch.Mint, referrer)
	require.NoError(t, err)
	require.Equal(t, uint64(buys*1_000_000), referral.VolumeGenerated)
	require.Equal(t, uint64(buys*1_000), referral.RewardsEarned)
}

func TestTradeInvariants(t *testing.T) {
	env := newTestEnv(t, 100)
	creator := solanago.NewWallet().PublicKey()
	trader := solanago.NewWallet().PublicKey()
	launch := env.createLaunch(t, creator)
	env.fund(t, trader, 10_000_000_000)

	buys := []uint64{500_000_000, 1_000_000_000, 250_000_000}
	sells := []uint64{1_000_000, 3_000_000, 500_000}

	for i := range buys {
		_, err := env.engine.BuyTokens(trader, launch.Mint, buys[i], 0, solanago.PublicKey{})
		require.NoError(t, err)
		_, err = env.engine.SellTokens(trader, launch.Mint, sells[i], 0)
		require.NoError(t, err)

		state, err := env.engine.GetLaunch(launch.Mint)
		require.NoError(t, err)
		require.LessOrEqual(t, state.TokensSold, state.TotalSellAmount)

		// With no referral retention and no claims, the reserve holds exactly
		// the net raise.
		_, reserveSol, err := env.engine.ReserveBalances(launch.Mint)
		require.NoError(t, err)
		require.Equal(t, state.SolRaised, reserveSol)
	}

	// Position counters never decrease.
	position, err := env.engine.GetPosition(launch.Mint, trader)
	require.NoError(t, err)
	require.Equal(t, uint64(1_750_000_000), position.SolSpent)
	require.Equal(t, uint64(4_500_000), position.TokensSold)
}
