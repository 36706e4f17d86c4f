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

package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"tranche.dev/types"
	"tranche.dev/types/vault"
)

var _ vault.MsgServer = &vaultMsgServer{}

type vaultMsgServer struct {
	*Keeper
}

func NewVaultMsgServer(keeper *Keeper) vault.MsgServer {
	return &vaultMsgServer{Keeper: keeper}
}

func (m vaultMsgServer) CreateVault(ctx context.Context, msg *vault.MsgCreateVault) (*vault.MsgCreateVaultResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	if msg.Signer != m.authority {
		return nil, errors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", m.authority, msg.Signer)
	}

	_, found, err := m.GetVaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault configuration")
	}
	if found {
		return nil, vault.ErrAlreadyConfigured
	}

	config := vault.Config{
		UnderlyingDenom:   msg.UnderlyingDenom,
		PrincipalDenom:    msg.PrincipalDenom,
		YieldDenom:        msg.YieldDenom,
		YieldPaymentDenom: msg.YieldPaymentDenom,
		MintWindowStart:   msg.MintWindowStart,
		MintWindowEnd:     msg.MintWindowEnd,
		Maturity:          msg.Maturity,
		CreatedAt:         m.now(ctx),
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(vault.ErrInvalidConfig, err.Error())
	}

	if err := m.SetVaultConfig(ctx, config); err != nil {
		return nil, errors.Wrap(err, "unable to persist vault configuration")
	}

	m.logger.Info("vault created", "underlying", config.UnderlyingDenom, "maturity", config.Maturity)

	if err := m.event.EventManager(ctx).EmitKV(ctx, vault.EventTypeVaultCreated,
		event.Attribute{Key: vault.AttributeKeySigner, Value: msg.Signer},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit vault created event")
	}

	return &vault.MsgCreateVaultResponse{}, nil
}

func (m vaultMsgServer) Mint(ctx context.Context, msg *vault.MsgMint) (*vault.MsgMintResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	signer, err := m.address.StringToBytes(msg.Signer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", msg.Signer)
	}

	config, found, err := m.GetVaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault configuration")
	}
	if !found {
		return nil, vault.ErrNotConfigured
	}
	if m.GetPaused(ctx) {
		return nil, vault.ErrPaused
	}

	if phase := vault.PhaseAt(m.now(ctx), config); phase != vault.PhaseMinting {
		return nil, errors.Wrapf(vault.ErrInvalidPhase, "minting is closed (vault is %s)", phase)
	}

	if msg.Amount < vault.MinimumMintAmount {
		return nil, errors.Wrapf(vault.ErrInvalidAmount, "deposit %d below minimum of %d", msg.Amount, vault.MinimumMintAmount)
	}

	fee, err := MulDivFloor(msg.Amount, vault.MintFeeBps, vault.BpsDenominator)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute mint fee")
	}
	postFee := msg.Amount - fee
	if postFee < vault.MinimumMintAmount {
		return nil, errors.Wrapf(vault.ErrInvalidAmount, "deposit %d after fee below minimum of %d", postFee, vault.MinimumMintAmount)
	}

	deposit := sdk.NewCoins(coinOf(config.UnderlyingDenom, msg.Amount))
	if err := m.bank.SendCoins(ctx, sdk.AccAddress(signer), m.escrow, deposit); err != nil {
		return nil, errors.Wrap(err, "unable to transfer deposit into escrow")
	}

	if err := m.AddVaultReserve(ctx, postFee); err != nil {
		return nil, errors.Wrap(err, "unable to credit reserve")
	}

	if fee > 0 {
		if err := m.bank.SendCoins(ctx, m.escrow, m.feeCollector, sdk.NewCoins(coinOf(config.UnderlyingDenom, fee))); err != nil {
			return nil, errors.Wrap(err, "unable to pay mint fee")
		}
	}

	minted := sdk.NewCoins(
		coinOf(config.PrincipalDenom, postFee),
		coinOf(config.YieldDenom, postFee),
	)
	if err := m.bank.MintCoins(ctx, types.ModuleName, minted); err != nil {
		return nil, errors.Wrap(err, "unable to mint claim tokens")
	}
	if err := m.bank.SendCoins(ctx, m.escrow, sdk.AccAddress(signer), minted); err != nil {
		return nil, errors.Wrap(err, "unable to deliver claim tokens")
	}

	stats, err := m.GetVaultStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault stats")
	}
	stats.Mints++
	stats.GrossDeposits += msg.Amount
	stats.FeesCollected += fee
	if err := m.SetVaultStats(ctx, stats); err != nil {
		return nil, errors.Wrap(err, "unable to persist vault stats")
	}

	reserve, err := m.GetVaultReserve(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch reserve")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, vault.EventTypeMint,
		event.Attribute{Key: vault.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: vault.AttributeKeyAmount, Value: strconv.FormatUint(msg.Amount, 10)},
		event.Attribute{Key: vault.AttributeKeyFee, Value: strconv.FormatUint(fee, 10)},
		event.Attribute{Key: vault.AttributeKeyMinted, Value: strconv.FormatUint(postFee, 10)},
		event.Attribute{Key: vault.AttributeKeyReserve, Value: strconv.FormatUint(reserve, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit mint event")
	}

	return &vault.MsgMintResponse{FeePaid: fee, AmountMinted: postFee}, nil
}

func (m vaultMsgServer) Redeem(ctx context.Context, msg *vault.MsgRedeem) (*vault.MsgRedeemResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	signer, err := m.address.StringToBytes(msg.Signer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", msg.Signer)
	}

	config, found, err := m.GetVaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault configuration")
	}
	if !found {
		return nil, vault.ErrNotConfigured
	}
	if m.GetPaused(ctx) {
		return nil, vault.ErrPaused
	}

	now := m.now(ctx)
	phase := vault.PhaseAt(now, config)
	if phase != vault.PhaseMinting && phase != vault.PhaseLocked {
		return nil, errors.Wrapf(vault.ErrInvalidPhase, "early redemption is closed (vault is %s)", phase)
	}

	if msg.Amount < vault.MinimumRedeemAmount {
		return nil, errors.Wrapf(vault.ErrInvalidAmount, "redemption %d below minimum of %d", msg.Amount, vault.MinimumRedeemAmount)
	}

	// The fee applies only once the mint window has closed; redemptions
	// inside the window unwind at par.
	var fee uint64
	if now.After(config.MintWindowEnd) {
		fee, err = MulDivFloor(msg.Amount, vault.EarlyRedeemFeeBps, vault.BpsDenominator)
		if err != nil {
			return nil, errors.Wrap(err, "unable to compute redemption fee")
		}
		if msg.Amount-fee < vault.MinimumRedeemAmount {
			return nil, errors.Wrapf(vault.ErrInvalidAmount, "redemption %d after fee below minimum of %d", msg.Amount-fee, vault.MinimumRedeemAmount)
		}
	}

	escrowed := sdk.NewCoins(
		coinOf(config.PrincipalDenom, msg.Amount),
		coinOf(config.YieldDenom, msg.Amount),
	)
	if err := m.bank.SendCoins(ctx, sdk.AccAddress(signer), m.escrow, escrowed); err != nil {
		return nil, errors.Wrap(err, "unable to escrow claim tokens")
	}

	// The reserve is debited by the gross amount: the fee comes out of the
	// redemption itself, not on top of it.
	if err := m.SubVaultReserve(ctx, msg.Amount); err != nil {
		return nil, err
	}

	if fee > 0 {
		if err := m.bank.SendCoins(ctx, m.escrow, m.feeCollector, sdk.NewCoins(coinOf(config.UnderlyingDenom, fee))); err != nil {
			return nil, errors.Wrap(err, "unable to pay redemption fee")
		}
	}

	net := msg.Amount - fee
	if err := m.bank.SendCoins(ctx, m.escrow, sdk.AccAddress(signer), sdk.NewCoins(coinOf(config.UnderlyingDenom, net))); err != nil {
		return nil, errors.Wrap(err, "unable to return underlying")
	}

	stats, err := m.GetVaultStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault stats")
	}
	stats.Redemptions++
	stats.FeesCollected += fee
	if err := m.SetVaultStats(ctx, stats); err != nil {
		return nil, errors.Wrap(err, "unable to persist vault stats")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, vault.EventTypeRedeem,
		event.Attribute{Key: vault.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: vault.AttributeKeyAmount, Value: strconv.FormatUint(msg.Amount, 10)},
		event.Attribute{Key: vault.AttributeKeyFee, Value: strconv.FormatUint(fee, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit redeem event")
	}

	return &vault.MsgRedeemResponse{FeePaid: fee, AmountReturned: net}, nil
}

func (m vaultMsgServer) RedeemMature(ctx context.Context, msg *vault.MsgRedeemMature) (*vault.MsgRedeemMatureResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	signer, err := m.address.StringToBytes(msg.Signer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", msg.Signer)
	}

	config, found, err := m.GetVaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault configuration")
	}
	if !found {
		return nil, vault.ErrNotConfigured
	}

	if phase := vault.PhaseAt(m.now(ctx), config); phase != vault.PhaseMatured {
		return nil, errors.Wrapf(vault.ErrInvalidPhase, "vault has not matured (vault is %s)", phase)
	}

	if msg.Amount == 0 {
		return nil, errors.Wrap(vault.ErrInvalidAmount, "redemption amount must be positive")
	}

	if err := m.bank.SendCoins(ctx, sdk.AccAddress(signer), m.escrow, sdk.NewCoins(coinOf(config.PrincipalDenom, msg.Amount))); err != nil {
		return nil, errors.Wrap(err, "unable to escrow principal tokens")
	}

	if err := m.SubVaultReserve(ctx, msg.Amount); err != nil {
		return nil, err
	}

	if err := m.bank.SendCoins(ctx, m.escrow, sdk.AccAddress(signer), sdk.NewCoins(coinOf(config.UnderlyingDenom, msg.Amount))); err != nil {
		return nil, errors.Wrap(err, "unable to return underlying")
	}

	stats, err := m.GetVaultStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault stats")
	}
	stats.MatureRedemptions++
	if err := m.SetVaultStats(ctx, stats); err != nil {
		return nil, errors.Wrap(err, "unable to persist vault stats")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, vault.EventTypeRedeemMature,
		event.Attribute{Key: vault.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: vault.AttributeKeyAmount, Value: strconv.FormatUint(msg.Amount, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit mature redemption event")
	}

	return &vault.MsgRedeemMatureResponse{AmountReturned: msg.Amount}, nil
}

func (m vaultMsgServer) ClaimYield(ctx context.Context, msg *vault.MsgClaimYield) (*vault.MsgClaimYieldResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	signer, err := m.address.StringToBytes(msg.Signer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", msg.Signer)
	}

	config, found, err := m.GetVaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault configuration")
	}
	if !found {
		return nil, vault.ErrNotConfigured
	}

	if phase := vault.PhaseAt(m.now(ctx), config); phase != vault.PhaseMatured {
		return nil, errors.Wrapf(vault.ErrInvalidPhase, "vault has not matured (vault is %s)", phase)
	}

	if msg.Amount == 0 {
		return nil, errors.Wrap(vault.ErrInvalidAmount, "claim amount must be positive")
	}

	if err := m.bank.SendCoins(ctx, sdk.AccAddress(signer), m.escrow, sdk.NewCoins(coinOf(config.YieldDenom, msg.Amount))); err != nil {
		return nil, errors.Wrap(err, "unable to escrow yield tokens")
	}

	// Circulating supply is everything issued minus what the module already
	// held before this claim. Retired yield tokens stay in escrow forever,
	// so later claimants divide the pool among a smaller circulation.
	heldAfter, err := uint64FromInt(m.bank.GetBalance(ctx, m.escrow, config.YieldDenom).Amount)
	if err != nil {
		return nil, err
	}
	supply, err := uint64FromInt(m.bank.GetSupply(ctx, config.YieldDenom).Amount)
	if err != nil {
		return nil, err
	}
	circulating := supply - (heldAfter - msg.Amount)
	if circulating == 0 {
		return nil, errors.Wrap(vault.ErrZeroYieldShare, "no yield tokens in circulation")
	}

	pool, err := uint64FromInt(m.bank.GetBalance(ctx, m.escrow, config.YieldPaymentDenom).Amount)
	if err != nil {
		return nil, err
	}

	share, err := MulDivFloor(msg.Amount, pool, circulating)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute yield share")
	}
	if share == 0 {
		return nil, errors.Wrapf(vault.ErrZeroYieldShare, "claim of %d yields nothing from pool of %d", msg.Amount, pool)
	}
	if share > pool {
		return nil, errors.Wrapf(vault.ErrInsufficientYield, "share %d exceeds pool of %d", share, pool)
	}

	if err := m.bank.SendCoins(ctx, m.escrow, sdk.AccAddress(signer), sdk.NewCoins(coinOf(config.YieldPaymentDenom, share))); err != nil {
		return nil, errors.Wrap(err, "unable to pay yield share")
	}

	stats, err := m.GetVaultStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault stats")
	}
	stats.YieldClaims++
	stats.YieldPaidOut += share
	if err := m.SetVaultStats(ctx, stats); err != nil {
		return nil, errors.Wrap(err, "unable to persist vault stats")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, vault.EventTypeYieldClaimed,
		event.Attribute{Key: vault.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: vault.AttributeKeyAmount, Value: strconv.FormatUint(msg.Amount, 10)},
		event.Attribute{Key: vault.AttributeKeyShare, Value: strconv.FormatUint(share, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit yield claimed event")
	}

	return &vault.MsgClaimYieldResponse{ShareClaimed: share}, nil
}

func (m vaultMsgServer) Sweep(ctx context.Context, msg *vault.MsgSweep) (*vault.MsgSweepResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	if msg.Signer != m.authority {
		return nil, errors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", m.authority, msg.Signer)
	}

	config, found, err := m.GetVaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault configuration")
	}
	if !found {
		return nil, vault.ErrNotConfigured
	}

	unlock := config.Maturity.Add(vault.SweepDelay)
	if now := m.now(ctx); !now.After(unlock) {
		return nil, errors.Wrapf(vault.ErrSweepLocked, "sweep unlocks at %s", unlock)
	}

	// The sweep bypasses the reserve ledger entirely. It exists to recover
	// otherwise-stranded value once everyone has had a month past maturity
	// to exit.
	swept := sdk.NewCoins()
	for _, denom := range config.Denoms() {
		balance := m.bank.GetBalance(ctx, m.escrow, denom)
		if !balance.IsPositive() {
			continue
		}
		if err := m.bank.SendCoins(ctx, m.escrow, m.feeCollector, sdk.NewCoins(balance)); err != nil {
			return nil, errors.Wrapf(err, "unable to sweep %s", denom)
		}
		swept = swept.Add(balance)
	}

	m.logger.Info("vault swept", "signer", msg.Signer, "swept", swept.String())

	if err := m.event.EventManager(ctx).EmitKV(ctx, vault.EventTypeSwept,
		event.Attribute{Key: vault.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: vault.AttributeKeySwept, Value: swept.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit sweep event")
	}

	return &vault.MsgSweepResponse{Swept: swept}, nil
}

func (m vaultMsgServer) SetPaused(ctx context.Context, msg *vault.MsgSetPaused) (*vault.MsgSetPausedResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	if msg.Signer != m.authority {
		return nil, errors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", m.authority, msg.Signer)
	}

	if err := m.SetPausedState(ctx, msg.Paused); err != nil {
		return nil, errors.Wrap(err, "unable to persist pause flag")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, vault.EventTypePausedSet,
		event.Attribute{Key: vault.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: vault.AttributeKeyPaused, Value: strconv.FormatBool(msg.Paused)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit pause event")
	}

	return &vault.MsgSetPausedResponse{}, nil
}
