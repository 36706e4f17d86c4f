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

package vault

import (
	"context"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer is the vault message surface. All amounts are expressed in the
// smallest unit of their denom and must fit in a uint64.
type MsgServer interface {
	CreateVault(ctx context.Context, msg *MsgCreateVault) (*MsgCreateVaultResponse, error)
	Mint(ctx context.Context, msg *MsgMint) (*MsgMintResponse, error)
	Redeem(ctx context.Context, msg *MsgRedeem) (*MsgRedeemResponse, error)
	RedeemMature(ctx context.Context, msg *MsgRedeemMature) (*MsgRedeemMatureResponse, error)
	ClaimYield(ctx context.Context, msg *MsgClaimYield) (*MsgClaimYieldResponse, error)
	Sweep(ctx context.Context, msg *MsgSweep) (*MsgSweepResponse, error)
	SetPaused(ctx context.Context, msg *MsgSetPaused) (*MsgSetPausedResponse, error)
}

type MsgCreateVault struct {
	Signer            string
	UnderlyingDenom   string
	PrincipalDenom    string
	YieldDenom        string
	YieldPaymentDenom string
	MintWindowStart   time.Time
	MintWindowEnd     time.Time
	Maturity          time.Time
}

type MsgCreateVaultResponse struct{}

type MsgMint struct {
	Signer string
	Amount uint64
}

type MsgMintResponse struct {
	FeePaid      uint64
	AmountMinted uint64
}

type MsgRedeem struct {
	Signer string
	Amount uint64
}

type MsgRedeemResponse struct {
	FeePaid        uint64
	AmountReturned uint64
}

type MsgRedeemMature struct {
	Signer string
	Amount uint64
}

type MsgRedeemMatureResponse struct {
	AmountReturned uint64
}

type MsgClaimYield struct {
	Signer string
	Amount uint64
}

type MsgClaimYieldResponse struct {
	ShareClaimed uint64
}

type MsgSweep struct {
	Signer string
}

type MsgSweepResponse struct {
	Swept sdk.Coins
}

type MsgSetPaused struct {
	Signer string
	Paused bool
}

type MsgSetPausedResponse struct{}
