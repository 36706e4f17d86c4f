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

	"cosmossdk.io/errors"

	"tranche.dev/types"
	"tranche.dev/types/market"
)

var _ market.QueryServer = &marketQueryServer{}

type marketQueryServer struct {
	*Keeper
}

func NewMarketQueryServer(keeper *Keeper) market.QueryServer {
	return &marketQueryServer{Keeper: keeper}
}

func (q marketQueryServer) Info(ctx context.Context, req *market.QueryInfo) (*market.QueryInfoResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	config, found, err := q.GetMarketConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market configuration")
	}
	if !found {
		return nil, market.ErrNotConfigured
	}

	return &market.QueryInfoResponse{Config: config}, nil
}

func (q marketQueryServer) Order(ctx context.Context, req *market.QueryOrder) (*market.QueryOrderResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	seller, err := q.address.StringToBytes(req.Seller)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid seller address: %s", req.Seller)
	}

	order, found, err := q.GetOrder(ctx, seller, req.Slot)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch order")
	}
	if !found {
		return nil, errors.Wrapf(market.ErrOrderNotFound, "seller %s has no order in slot %d", req.Seller, req.Slot)
	}

	return &market.QueryOrderResponse{Order: order}, nil
}

func (q marketQueryServer) Orders(ctx context.Context, req *market.QueryOrders) (*market.QueryOrdersResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	seller, err := q.address.StringToBytes(req.Seller)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid seller address: %s", req.Seller)
	}

	var orders []market.SlottedOrder
	for _, slot := range []uint32{market.SlotPrimary, market.SlotSecondary} {
		order, found, err := q.GetOrder(ctx, seller, slot)
		if err != nil {
			return nil, errors.Wrap(err, "unable to fetch order")
		}
		if found {
			orders = append(orders, market.SlottedOrder{Slot: slot, Order: order})
		}
	}

	return &market.QueryOrdersResponse{Orders: orders}, nil
}

func (q marketQueryServer) Stats(ctx context.Context, req *market.QueryStats) (*market.QueryStatsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	stats, err := q.GetMarketStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market stats")
	}

	return &market.QueryStatsResponse{Stats: stats}, nil
}
