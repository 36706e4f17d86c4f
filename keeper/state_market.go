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
	"errors"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"tranche.dev/types/market"
)

// GetMarketConfig returns the stored market configuration. The boolean flag
// indicates whether the market has been created yet.
func (k *Keeper) GetMarketConfig(ctx context.Context) (market.Config, bool, error) {
	config, err := k.MarketConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return market.Config{}, false, nil
		}
		return market.Config{}, false, err
	}

	return config, true, nil
}

// SetMarketConfig persists the provided market configuration in state.
func (k *Keeper) SetMarketConfig(ctx context.Context, config market.Config) error {
	return k.MarketConfig.Set(ctx, config)
}

// GetOrder returns the order in the given slot of the seller's account. The
// boolean flag indicates whether the slot has ever been used; a resolved
// order is still returned so callers can distinguish stale ids from empty
// slots.
func (k *Keeper) GetOrder(ctx context.Context, seller sdk.AccAddress, slot uint32) (market.Order, bool, error) {
	order, err := k.Orders.Get(ctx, collections.Join(seller.Bytes(), slot))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return market.Order{}, false, nil
		}
		return market.Order{}, false, err
	}

	return order, true, nil
}

// SetOrder writes the order into the given slot of the seller's account.
func (k *Keeper) SetOrder(ctx context.Context, seller sdk.AccAddress, slot uint32, order market.Order) error {
	return k.Orders.Set(ctx, collections.Join(seller.Bytes(), slot), order)
}

// AvailableSlot picks the slot a new order will occupy: slot one if it has
// never been used or its order is fully resolved, otherwise slot two under
// the same rule. Each account holds at most two live orders.
func (k *Keeper) AvailableSlot(ctx context.Context, seller sdk.AccAddress) (uint32, error) {
	for _, slot := range []uint32{market.SlotPrimary, market.SlotSecondary} {
		order, found, err := k.GetOrder(ctx, seller, slot)
		if err != nil {
			return 0, err
		}
		if !found || order.Resolved() {
			return slot, nil
		}
	}

	return 0, market.ErrNoSlotAvailable
}

// GetMarketStats returns the aggregate market statistics, zero-valued when
// nothing has been recorded yet.
func (k *Keeper) GetMarketStats(ctx context.Context) (market.Stats, error) {
	stats, err := k.MarketStats.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return market.Stats{}, nil
		}
		return market.Stats{}, err
	}

	return stats, nil
}

// SetMarketStats persists the aggregate market statistics.
func (k *Keeper) SetMarketStats(ctx context.Context, stats market.Stats) error {
	return k.MarketStats.Set(ctx, stats)
}
