// SPDX-License-Identifier: BUSL-1.1
//
// Copyright (C) 2025, NASD Inc. All rights reserved.
// Use of this software is governed by the Business Source License included
// in the LICENSE file of this repository and at www.mariadb.com/bsl11.
//
// ANY USE OF THE LICENSED WORK IN VIOLATION OF THIS LICENSE WILL AUTOMATICALLY
// TERMINATE YOUR RIGHTS UNDER THIS LICENSE FOR THE CURRENT AND ALL OTHER
// VERSIONS OF THE LICENSED WORK.
//
// THIS LICENSE DOES NOT GRANT YOU ANY RIGHT IN ANY TRADEMARK OR LOGO OF
// LICENSOR OR ITS AFFILIATES (PROVIDED THAT YOU MAY USE A TRADEMARK OR LOGO OF
// LICENSOR AS EXPRESSLY REQUIRED BY THIS LICENSE).
//
// TO THE EXTENT PERMITTED BY APPLICABLE LAW, THE LICENSED WORK IS PROVIDED ON
// AN "AS IS" BASIS. LICENSOR HEREBY DISCLAIMS ALL WARRANTIES AND CONDITIONS,
// EXPRESS OR IMPLIED, INCLUDING (WITHOUT LIMITATION) WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, NON-INFRINGEMENT, AND
// TITLE.

package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/core/header"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tranche.dev/keeper"
	"tranche.dev/types/vault"
	"tranche.dev/utils"
	"tranche.dev/utils/mocks"
)

const ONE = 1_000_000

var (
	mintStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mintEnd   = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	maturity  = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

func bech(address sdk.AccAddress) string {
	bech32, _ := sdk.Bech32ifyAddressBytes("tranche", address)
	return bech32
}

// setupVaultTest creates a configured vault with the clock inside the mint
// window and a funded test account.
func setupVaultTest(t *testing.T) (*keeper.Keeper, vault.MsgServer, *mocks.BankKeeper, sdk.Context, utils.Account) {
	bank := mocks.BankKeeper{
		Balances: make(map[string]sdk.Coins),
		Supply:   make(map[string]sdkmath.Int),
	}

	k, _, ctx := mocks.TrancheKeeperWithKeepers(t, bank, mocks.AccountKeeper{})
	server := keeper.NewVaultMsgServer(k)
	bob := utils.TestAccount()

	ctx = ctx.WithHeaderInfo(header.Info{Time: mintStart.Add(24 * time.Hour)})

	_, err := server.CreateVault(ctx, &vault.MsgCreateVault{
		Signer:            mocks.Authority.Address,
		UnderlyingDenom:   "uusdc",
		PrincipalDenom:    "utprn",
		YieldDenom:        "utyld",
		YieldPaymentDenom: "uusde",
		MintWindowStart:   mintStart,
		MintWindowEnd:     mintEnd,
		Maturity:          maturity,
	})
	require.NoError(t, err)

	bank.Balances[bob.Address] = sdk.NewCoins(sdk.NewCoin("uusdc", sdkmath.NewInt(100*ONE)))

	return k, server, &bank, ctx, bob
}

func TestCreateVaultAuthority(t *testing.T) {
	bank := mocks.BankKeeper{
		Balances: make(map[string]sdk.Coins),
		Supply:   make(map[string]sdkmath.Int),
	}
	k, _, ctx := mocks.TrancheKeeperWithKeepers(t, bank, mocks.AccountKeeper{})
	server := keeper.NewVaultMsgServer(k)
	bob := utils.TestAccount()

	// ACT: Attempt to create a vault with a non-authority signer.
	_, err := server.CreateVault(ctx, &vault.MsgCreateVault{
		Signer:          bob.Address,
		UnderlyingDenom: "uusdc",
	})
	// ASSERT: Only the authority can create the vault.
	require.ErrorContains(t, err, "expected")

	// ACT: Create the vault with an invalid window ordering.
	_, err = server.CreateVault(ctx, &vault.MsgCreateVault{
		Signer:            mocks.Authority.Address,
		UnderlyingDenom:   "uusdc",
		PrincipalDenom:    "utprn",
		YieldDenom:        "utyld",
		YieldPaymentDenom: "uusde",
		MintWindowStart:   mintEnd,
		MintWindowEnd:     mintStart,
		Maturity:          maturity,
	})
	// ASSERT: The configuration is rejected.
	require.ErrorIs(t, err, vault.ErrInvalidConfig)
}

func TestCreateVaultOnce(t *testing.T) {
	_, server, _, ctx, _ := setupVaultTest(t)

	// ACT: Attempt to create the vault a second time.
	_, err := server.CreateVault(ctx, &vault.MsgCreateVault{
		Signer:            mocks.Authority.Address,
		UnderlyingDenom:   "uusdc",
		PrincipalDenom:    "utprn",
		YieldDenom:        "utyld",
		YieldPaymentDenom: "uusde",
		MintWindowStart:   mintStart,
		MintWindowEnd:     mintEnd,
		Maturity:          maturity,
	})
	// ASSERT: The vault configuration is written exactly once.
	require.ErrorIs(t, err, vault.ErrAlreadyConfigured)
}

func TestMintBasic(t *testing.T) {
	k, server, bank, ctx, bob := setupVaultTest(t)

	// ACT: Bob deposits exactly one unit of underlying.
	resp, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 1 * ONE})

	// ASSERT: The 50bps fee is deducted and the rest is tokenized.
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), resp.FeePaid)
	assert.Equal(t, uint64(995_000), resp.AmountMinted)

	// ASSERT: Bob paid the deposit and holds equal principal and yield.
	assert.Equal(t, sdkmath.NewInt(99*ONE), bank.Balances[bob.Address].AmountOf("uusdc"))
	assert.Equal(t, sdkmath.NewInt(995_000), bank.Balances[bob.Address].AmountOf("utprn"))
	assert.Equal(t, sdkmath.NewInt(995_000), bank.Balances[bob.Address].AmountOf("utyld"))

	// ASSERT: The fee landed with the collector and the reserve tracks the
	// post-fee deposit.
	assert.Equal(t, sdkmath.NewInt(5_000), bank.Balances[mocks.FeeCollector.Address].AmountOf("uusdc"))
	reserve, err := k.GetVaultReserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(995_000), reserve)

	// ASSERT: Stats reflect the mint.
	stats, err := k.GetVaultStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Mints)
	assert.Equal(t, uint64(1*ONE), stats.GrossDeposits)
	assert.Equal(t, uint64(5_000), stats.FeesCollected)
}

func TestMintFeeFloors(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ACT: Deposit an amount whose fee does not divide evenly.
	resp, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 1_000_500})

	// ASSERT: The fee rounds down in the depositor's favor.
	require.NoError(t, err)
	assert.Equal(t, uint64(5_002), resp.FeePaid)
	assert.Equal(t, uint64(995_498), resp.AmountMinted)
}

func TestMintMinimums(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ACT: Deposit below the gross minimum.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 999_999})
	// ASSERT: The deposit is rejected outright.
	require.ErrorIs(t, err, vault.ErrInvalidAmount)

	// ACT: Deposit above the gross minimum whose post-fee amount dips below it.
	_, err = server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 1_005_000})
	// ASSERT: The post-fee minimum also applies.
	require.ErrorIs(t, err, vault.ErrInvalidAmount)
}

func TestMintPhaseGates(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ACT: Mint before the window opens.
	early := ctx.WithHeaderInfo(header.Info{Time: mintStart.Add(-time.Hour)})
	_, err := server.Mint(early, &vault.MsgMint{Signer: bob.Address, Amount: 1 * ONE})
	// ASSERT: The vault is still pending.
	require.ErrorIs(t, err, vault.ErrInvalidPhase)

	// ACT: Mint on the closing boundary, which is inclusive.
	closing := ctx.WithHeaderInfo(header.Info{Time: mintEnd})
	_, err = server.Mint(closing, &vault.MsgMint{Signer: bob.Address, Amount: 1 * ONE})
	// ASSERT: The boundary mint is accepted.
	require.NoError(t, err)

	// ACT: Mint after the window closes.
	late := ctx.WithHeaderInfo(header.Info{Time: mintEnd.Add(time.Second)})
	_, err = server.Mint(late, &vault.MsgMint{Signer: bob.Address, Amount: 1 * ONE})
	// ASSERT: The vault is locked for new deposits.
	require.ErrorIs(t, err, vault.ErrInvalidPhase)
}

func TestMintPaused(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ARRANGE: The authority pauses the vault.
	_, err := server.SetPaused(ctx, &vault.MsgSetPaused{Signer: mocks.Authority.Address, Paused: true})
	require.NoError(t, err)

	// ACT: Bob attempts to mint.
	_, err = server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 1 * ONE})
	// ASSERT: Minting is halted.
	require.ErrorIs(t, err, vault.ErrPaused)

	// ARRANGE: The authority unpauses.
	_, err = server.SetPaused(ctx, &vault.MsgSetPaused{Signer: mocks.Authority.Address, Paused: false})
	require.NoError(t, err)

	// ACT: Bob mints again.
	_, err = server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 1 * ONE})
	// ASSERT: Minting resumes.
	require.NoError(t, err)
}

func TestSetPausedAuthority(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ACT: A regular account attempts to pause the vault.
	_, err := server.SetPaused(ctx, &vault.MsgSetPaused{Signer: bob.Address, Paused: true})
	// ASSERT: Only the authority can pause.
	require.ErrorContains(t, err, "expected")
}

func TestRedeemAtParInsideWindow(t *testing.T) {
	k, server, bank, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints two units.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 2 * ONE})
	require.NoError(t, err)

	// ACT: Bob redeems one unit while the window is still open.
	resp, err := server.Redeem(ctx, &vault.MsgRedeem{Signer: bob.Address, Amount: 1 * ONE})

	// ASSERT: The redemption unwinds at par.
	require.NoError(t, err)
	assert.Equal(t, uint64(0), resp.FeePaid)
	assert.Equal(t, uint64(1*ONE), resp.AmountReturned)

	// ASSERT: Bob surrendered both claim tokens and got the underlying back.
	assert.Equal(t, sdkmath.NewInt(990_000), bank.Balances[bob.Address].AmountOf("utprn"))
	assert.Equal(t, sdkmath.NewInt(990_000), bank.Balances[bob.Address].AmountOf("utyld"))
	assert.Equal(t, sdkmath.NewInt(99*ONE), bank.Balances[bob.Address].AmountOf("uusdc"))

	// ASSERT: The reserve shrank by the gross redemption.
	reserve, err := k.GetVaultReserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(990_000), reserve)
}

func TestRedeemFeeAfterWindow(t *testing.T) {
	_, server, bank, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints three units during the window.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 3 * ONE})
	require.NoError(t, err)

	// ACT: Bob redeems two units once the vault is locked.
	locked := ctx.WithHeaderInfo(header.Info{Time: mintEnd.Add(24 * time.Hour)})
	resp, err := server.Redeem(locked, &vault.MsgRedeem{Signer: bob.Address, Amount: 2 * ONE})

	// ASSERT: The 150bps early-exit fee applies.
	require.NoError(t, err)
	assert.Equal(t, uint64(30_000), resp.FeePaid)
	assert.Equal(t, uint64(1_970_000), resp.AmountReturned)
	assert.Equal(t, sdkmath.NewInt(30_000+15_000), bank.Balances[mocks.FeeCollector.Address].AmountOf("uusdc"))
}

func TestRedeemFeeMinimum(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints two units.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 2 * ONE})
	require.NoError(t, err)

	// ACT: Bob redeems the bare minimum after the window, where the fee
	// would push the net below the floor.
	locked := ctx.WithHeaderInfo(header.Info{Time: mintEnd.Add(24 * time.Hour)})
	_, err = server.Redeem(locked, &vault.MsgRedeem{Signer: bob.Address, Amount: 1 * ONE})

	// ASSERT: The post-fee minimum rejects the redemption.
	require.ErrorIs(t, err, vault.ErrInvalidAmount)
}

func TestRedeemPhaseGate(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints two units.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 2 * ONE})
	require.NoError(t, err)

	// ACT: Bob attempts an early redemption after maturity.
	matured := ctx.WithHeaderInfo(header.Info{Time: maturity.Add(time.Second)})
	_, err = server.Redeem(matured, &vault.MsgRedeem{Signer: bob.Address, Amount: 1 * ONE})
	// ASSERT: Early redemption is closed once matured.
	require.ErrorIs(t, err, vault.ErrInvalidPhase)
}

func TestRedeemMature(t *testing.T) {
	k, server, bank, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints two units during the window.
	mint, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 2 * ONE})
	require.NoError(t, err)

	// ACT: Bob redeems all principal after maturity.
	matured := ctx.WithHeaderInfo(header.Info{Time: maturity.Add(time.Second)})
	resp, err := server.RedeemMature(matured, &vault.MsgRedeemMature{Signer: bob.Address, Amount: mint.AmountMinted})

	// ASSERT: Principal redeems one-to-one with no fee.
	require.NoError(t, err)
	assert.Equal(t, mint.AmountMinted, resp.AmountReturned)
	assert.Equal(t, sdkmath.ZeroInt(), bank.Balances[bob.Address].AmountOf("utprn"))
	assert.Equal(t, sdkmath.NewInt(98*ONE).AddRaw(1_990_000), bank.Balances[bob.Address].AmountOf("uusdc"))

	// ASSERT: The reserve is emptied, and the yield tokens are untouched.
	reserve, err := k.GetVaultReserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reserve)
	assert.Equal(t, sdkmath.NewInt(1_990_000), bank.Balances[bob.Address].AmountOf("utyld"))

	// ACT: Bob tries to redeem mature before maturity.
	_, err = server.RedeemMature(ctx, &vault.MsgRedeemMature{Signer: bob.Address, Amount: 1})
	// ASSERT: The vault has not matured yet.
	require.ErrorIs(t, err, vault.ErrInvalidPhase)
}

func TestClaimYield(t *testing.T) {
	k, server, bank, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints two units, leaving 1,990,000 yield tokens in
	// circulation, and the escrow is funded with one unit of yield payment.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 2 * ONE})
	require.NoError(t, err)
	escrow := bech(k.GetEscrowAddress())
	bank.Balances[escrow] = bank.Balances[escrow].Add(sdk.NewCoin("uusde", sdkmath.NewInt(1*ONE)))

	matured := ctx.WithHeaderInfo(header.Info{Time: maturity.Add(time.Second)})

	// ACT: Bob claims half of his yield tokens.
	first, err := server.ClaimYield(matured, &vault.MsgClaimYield{Signer: bob.Address, Amount: 995_000})

	// ASSERT: Half the circulation earns half the pool.
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), first.ShareClaimed)
	assert.Equal(t, sdkmath.NewInt(500_000), bank.Balances[bob.Address].AmountOf("uusde"))

	// ACT: Bob claims the other half.
	second, err := server.ClaimYield(matured, &vault.MsgClaimYield{Signer: bob.Address, Amount: 995_000})

	// ASSERT: Retired tokens shrink the circulation, so the remaining half
	// collects the entire remaining pool with no dust stranded.
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), second.ShareClaimed)
	assert.Equal(t, sdkmath.NewInt(1*ONE), bank.Balances[bob.Address].AmountOf("uusde"))
	assert.Equal(t, sdkmath.ZeroInt(), bank.Balances[escrow].AmountOf("uusde"))

	// ASSERT: Stats account for both claims.
	stats, err := k.GetVaultStats(matured)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.YieldClaims)
	assert.Equal(t, uint64(1*ONE), stats.YieldPaidOut)
}

func TestClaimYieldZeroShare(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints but nobody funds the yield pool.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 2 * ONE})
	require.NoError(t, err)

	// ACT: Bob claims against an empty pool.
	matured := ctx.WithHeaderInfo(header.Info{Time: maturity.Add(time.Second)})
	_, err = server.ClaimYield(matured, &vault.MsgClaimYield{Signer: bob.Address, Amount: 995_000})

	// ASSERT: A zero share is rejected rather than silently burning tokens.
	require.ErrorIs(t, err, vault.ErrZeroYieldShare)
}

func TestClaimYieldPhaseGate(t *testing.T) {
	_, server, _, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints during the window.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 2 * ONE})
	require.NoError(t, err)

	// ACT: Bob claims yield before maturity.
	_, err = server.ClaimYield(ctx, &vault.MsgClaimYield{Signer: bob.Address, Amount: 995_000})
	// ASSERT: Yield claims open only at maturity.
	require.ErrorIs(t, err, vault.ErrInvalidPhase)
}

func TestSweep(t *testing.T) {
	k, server, bank, ctx, bob := setupVaultTest(t)

	// ARRANGE: Bob mints, leaving underlying stranded in escrow.
	_, err := server.Mint(ctx, &vault.MsgMint{Signer: bob.Address, Amount: 2 * ONE})
	require.NoError(t, err)

	// ACT: The authority sweeps before the delay has elapsed.
	matured := ctx.WithHeaderInfo(header.Info{Time: maturity.Add(time.Second)})
	_, err = server.Sweep(matured, &vault.MsgSweep{Signer: mocks.Authority.Address})
	// ASSERT: The sweep is still locked.
	require.ErrorIs(t, err, vault.ErrSweepLocked)

	// ACT: A regular account sweeps after the delay.
	unlocked := ctx.WithHeaderInfo(header.Info{Time: maturity.Add(vault.SweepDelay + time.Second)})
	_, err = server.Sweep(unlocked, &vault.MsgSweep{Signer: bob.Address})
	// ASSERT: Only the authority can sweep.
	require.ErrorContains(t, err, "expected")

	// ACT: The authority sweeps after the delay.
	resp, err := server.Sweep(unlocked, &vault.MsgSweep{Signer: mocks.Authority.Address})

	// ASSERT: The stranded escrow moved to the fee collector.
	require.NoError(t, err)
	assert.Equal(t, sdkmath.NewInt(1_990_000), resp.Swept.AmountOf("uusdc"))
	assert.Equal(t, sdkmath.NewInt(1_990_000+10_000), bank.Balances[mocks.FeeCollector.Address].AmountOf("uusdc"))
	escrow := bech(k.GetEscrowAddress())
	assert.Equal(t, sdkmath.ZeroInt(), bank.Balances[escrow].AmountOf("uusdc"))
}
