package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
)

// ProgramID anchors all derived addresses.
var ProgramID = solanago.MustPublicKeyFromBase58("DRay6fNdQ5J82H7xV6uq2aV3mNrUZ1J4PgSKsWgptcm6")

var seed = struct {
	Config   []byte
	Launch   []byte
	Mint     []byte
	Position []byte
	Referral []byte
}{
	Config:   []byte("config"),
	Launch:   []byte("launch"),
	Mint:     []byte("mint"),
	Position: []byte("position"),
	Referral: []byte("referral"),
}

// DeriveConfigAddress returns the singleton config address.
func DeriveConfigAddress() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Config}, ProgramID)
	return pub
}

// DeriveLaunchAddress returns the launch address for a mint. It doubles as the
// launch's reserve address on both ledgers.
func DeriveLaunchAddress(mint solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Launch, mint.Bytes()}, ProgramID)
	return pub
}

// DeriveMintAddress returns the token mint for a (creator, name) pair.
func DeriveMintAddress(creator solanago.PublicKey, name string) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Mint, creator.Bytes(), []byte(name)}, ProgramID)
	return pub
}

// DerivePositionAddress returns the position address for a (launch, user)
// pair.
func DerivePositionAddress(launch, user solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Position, launch.Bytes(), user.Bytes()}, ProgramID)
	return pub
}

// DeriveReferralAddress returns the referral address for a (launch, referrer)
// pair.
func DeriveReferralAddress(launch, referrer solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{seed.Referral, launch.Bytes(), referrer.Bytes()}, ProgramID)
	return pub
}
