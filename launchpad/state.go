package launchpad

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// Account discriminators, first 8 bytes of sha256("account:<Name>").
var (
	LaunchpadConfigDiscriminator = [8]byte{205, 61, 113, 174, 159, 51, 248, 24}
	LaunchDiscriminator          = [8]byte{144, 51, 51, 163, 206, 85, 213, 38}
	UserPositionDiscriminator    = [8]byte{251, 248, 209, 245, 83, 234, 17, 27}
	ReferralDiscriminator        = [8]byte{30, 235, 136, 224, 106, 107, 49, 64}
)

// LaunchpadConfig is the global fee configuration, created once by the
// protocol authority and read by every buy.
type LaunchpadConfig struct {
	Authority              solanago.PublicKey
	FeeBasisPoints         uint16
	CommunityPool          solanago.PublicKey
	ReferralFeeBasisPoints uint16
}

// Launch is the canonical state of one bonding-curve sale.
type Launch struct {
	Creator          solanago.PublicKey
	Mint             solanago.PublicKey
	Name             string
	Symbol           string
	URI              string
	TotalSupply      uint64
	TotalSellAmount  uint64
	TotalFundRaising uint64
	TokensSold       uint64
	SolRaised        uint64
	CurveType        CurveType
	MigrateType      MigrateType
	Status           LaunchStatus
	CreatorFeeEarned uint64
	CliffPeriod      int64
	UnlockPeriod     int64
	LaunchTime       int64
	MigrateTime      int64
	PoolAddress      solanago.PublicKey
}

// UserPosition is a per-(launch, user) audit trail of cumulative trade volume.
// It is not a spendable balance; custody lives in the external ledgers.
type UserPosition struct {
	User         solanago.PublicKey
	Launch       solanago.PublicKey
	TokensBought uint64
	TokensSold   uint64
	SolSpent     uint64
	SolReceived  uint64
}

// Referral tracks volume and rewards attributed to one referrer within one
// launch.
type Referral struct {
	Referrer        solanago.PublicKey
	Launch          solanago.PublicKey
	VolumeGenerated uint64
	RewardsEarned   uint64
	RewardsClaimed  uint64
}

func serializeAccount(discriminator [8]byte, v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseAccount(discriminator [8]byte, data []byte, v interface{}) error {
	if len(data) < 8 {
		return fmt.Errorf("account data too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:8], discriminator[:]) {
		return fmt.Errorf("unexpected account discriminator %x", data[:8])
	}
	return bin.NewBorshDecoder(data[8:]).Decode(v)
}

// Serialize encodes the config as borsh account data.
func (c *LaunchpadConfig) Serialize() ([]byte, error) {
	return serializeAccount(LaunchpadConfigDiscriminator, c)
}

func ParseLaunchpadConfig(data []byte) (*LaunchpadConfig, error) {
	c := new(LaunchpadConfig)
	if err := parseAccount(LaunchpadConfigDiscriminator, data, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Serialize encodes the launch as borsh account data.
func (l *Launch) Serialize() ([]byte, error) {
	return serializeAccount(LaunchDiscriminator, l)
}

func ParseLaunch(data []byte) (*Launch, error) {
	l := new(Launch)
	if err := parseAccount(LaunchDiscriminator, data, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Serialize encodes the position as borsh account data.
func (p *UserPosition) Serialize() ([]byte, error) {
	return serializeAccount(UserPositionDiscriminator, p)
}

func ParseUserPosition(data []byte) (*UserPosition, error) {
	p := new(UserPosition)
	if err := parseAccount(UserPositionDiscriminator, data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Serialize encodes the referral as borsh account data.
func (r *Referral) Serialize() ([]byte, error) {
	return serializeAccount(ReferralDiscriminator, r)
}

func ParseReferral(data []byte) (*Referral, error) {
	r := new(Referral)
	if err := parseAccount(ReferralDiscriminator, data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *LaunchpadConfig) clone() *LaunchpadConfig {
	cp := *c
	return &cp
}

func (l *Launch) clone() *Launch {
	cp := *l
	return &cp
}

func (p *UserPosition) clone() *UserPosition {
	cp := *p
	return &cp
}

func (r *Referral) clone() *Referral {
	cp := *r
	return &cp
}
