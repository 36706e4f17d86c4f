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

package market

import (
	"context"
	"time"
)

// MsgServer is the market message surface.
type MsgServer interface {
	CreateMarket(ctx context.Context, msg *MsgCreateMarket) (*MsgCreateMarketResponse, error)
	CreateOrder(ctx context.Context, msg *MsgCreateOrder) (*MsgCreateOrderResponse, error)
	FillOrder(ctx context.Context, msg *MsgFillOrder) (*MsgFillOrderResponse, error)
	CancelOrder(ctx context.Context, msg *MsgCancelOrder) (*MsgCancelOrderResponse, error)
	CancelBothOrders(ctx context.Context, msg *MsgCancelBothOrders) (*MsgCancelBothOrdersResponse, error)
	Withdraw(ctx context.Context, msg *MsgWithdraw) (*MsgWithdrawResponse, error)
}

type MsgCreateMarket struct {
	Signer         string
	PrincipalDenom string
	YieldDenom     string
	PaymentDenom   string
}

type MsgCreateMarketResponse struct {
	CreatedAt time.Time
}

type MsgCreateOrder struct {
	Signer       string
	Kind         Kind
	Quantity     uint64
	PricePerUnit uint64
	Id           uint64
}

type MsgCreateOrderResponse struct {
	Slot uint32
}

type MsgFillOrder struct {
	Signer   string
	Seller   string
	Slot     uint32
	Id       uint64
	Quantity uint64
}

type MsgFillOrderResponse struct {
	PaymentRequired uint64
	FeePaid         uint64
	SellerProceeds  uint64
}

type MsgCancelOrder struct {
	Signer string
	Seller string
	Slot   uint32
}

type MsgCancelOrderResponse struct {
	AmountReturned uint64
}

type MsgCancelBothOrders struct {
	Signer string
	Seller string
}

type MsgCancelBothOrdersResponse struct {
	AmountReturned uint64
}

type MsgWithdraw struct {
	Signer string
	Denom  string
	Amount uint64
}

type MsgWithdrawResponse struct{}
