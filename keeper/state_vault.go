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
	"math"

	"cosmossdk.io/collections"
	sdkerrors "cosmossdk.io/errors"

	"tranche.dev/types"
	"tranche.dev/types/vault"
)

// GetPaused returns the vault pause flag, defaulting to unpaused when the
// flag has never been written.
func (k *Keeper) GetPaused(ctx context.Context) bool {
	paused, err := k.Paused.Get(ctx)
	if err != nil {
		return false
	}

	return paused
}

// SetPausedState persists the vault pause flag.
func (k *Keeper) SetPausedState(ctx context.Context, paused bool) error {
	return k.Paused.Set(ctx, paused)
}

// GetVaultConfig returns the stored vault configuration. The boolean flag
// indicates whether the vault has been created yet.
func (k *Keeper) GetVaultConfig(ctx context.Context) (vault.Config, bool, error) {
	config, err := k.VaultConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return vault.Config{}, false, nil
		}
		return vault.Config{}, false, err
	}

	return config, true, nil
}

// SetVaultConfig persists the provided vault configuration in state.
func (k *Keeper) SetVaultConfig(ctx context.Context, config vault.Config) error {
	return k.VaultConfig.Set(ctx, config)
}

// GetVaultReserve returns the amount of the underlying denom currently owed
// to outstanding principal holders. Zero when never written.
func (k *Keeper) GetVaultReserve(ctx context.Context) (uint64, error) {
	reserve, err := k.VaultReserve.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return reserve, nil
}

// AddVaultReserve credits the reserve, guarding against wraparound.
func (k *Keeper) AddVaultReserve(ctx context.Context, amount uint64) error {
	reserve, err := k.GetVaultReserve(ctx)
	if err != nil {
		return err
	}
	if amount > math.MaxUint64-reserve {
		return sdkerrors.Wrapf(types.ErrOverflow, "reserve %d + %d exceeds 64 bits", reserve, amount)
	}

	return k.VaultReserve.Set(ctx, reserve+amount)
}

// SubVaultReserve debits the reserve, failing when the reserve cannot cover
// the requested amount.
func (k *Keeper) SubVaultReserve(ctx context.Context, amount uint64) error {
	reserve, err := k.GetVaultReserve(ctx)
	if err != nil {
		return err
	}
	if reserve < amount {
		return sdkerrors.Wrapf(vault.ErrInsufficientReserve, "reserve %d cannot cover %d", reserve, amount)
	}

	return k.VaultReserve.Set(ctx, reserve-amount)
}

// GetVaultStats returns the aggregate vault statistics, zero-valued when
// nothing has been recorded yet.
func (k *Keeper) GetVaultStats(ctx context.Context) (vault.Stats, error) {
	stats, err := k.VaultStats.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return vault.Stats{}, nil
		}
		return vault.Stats{}, err
	}

	return stats, nil
}

// SetVaultStats persists the aggregate vault statistics.
func (k *Keeper) SetVaultStats(ctx context.Context, stats vault.Stats) error {
	return k.VaultStats.Set(ctx, stats)
}
