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
	"time"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"tranche.dev/types"
	"tranche.dev/types/market"
	"tranche.dev/types/vault"
)

type Keeper struct {
	authority    string
	feeCollector sdk.AccAddress
	escrow       sdk.AccAddress

	store store.KVStoreService

	logger  log.Logger
	header  header.Service
	event   event.Service
	address address.Codec
	account types.AccountKeeper
	bank    types.BankKeeper

	Paused       collections.Item[bool]
	VaultConfig  collections.Item[vault.Config]
	VaultReserve collections.Item[uint64]
	VaultStats   collections.Item[vault.Stats]

	MarketConfig collections.Item[market.Config]
	Orders       collections.Map[collections.Pair[[]byte, uint32], market.Order]
	MarketStats  collections.Item[market.Stats]
}

func NewKeeper(
	authority string,
	feeCollector sdk.AccAddress,
	store store.KVStoreService,
	logger log.Logger,
	header header.Service,
	event event.Service,
	address address.Codec,
	account types.AccountKeeper,
	bank types.BankKeeper,
) *Keeper {
	builder := collections.NewSchemaBuilder(store)

	keeper := &Keeper{
		authority:    authority,
		feeCollector: feeCollector,
		escrow:       account.GetModuleAddress(types.ModuleName),

		store: store,

		logger:  logger.With("module", types.ModuleName),
		header:  header,
		event:   event,
		address: address,
		account: account,
		bank:    bank,

		Paused:       collections.NewItem(builder, vault.PausedKey, "vault_paused", collections.BoolValue),
		VaultConfig:  collections.NewItem(builder, vault.ConfigKey, "vault_config", types.CollValue[vault.Config]("vault_config")),
		VaultReserve: collections.NewItem(builder, vault.ReserveKey, "vault_reserve", collections.Uint64Value),
		VaultStats:   collections.NewItem(builder, vault.StatsKey, "vault_stats", types.CollValue[vault.Stats]("vault_stats")),

		MarketConfig: collections.NewItem(builder, market.ConfigKey, "market_config", types.CollValue[market.Config]("market_config")),
		Orders:       collections.NewMap(builder, market.OrderPrefix, "market_orders", collections.PairKeyCodec(collections.BytesKey, collections.Uint32Key), types.CollValue[market.Order]("market_order")),
		MarketStats:  collections.NewItem(builder, market.StatsKey, "market_stats", types.CollValue[market.Stats]("market_stats")),
	}

	_, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return keeper
}

// SetBankKeeper overwrites the bank keeper used in this module.
func (k *Keeper) SetBankKeeper(bank types.BankKeeper) {
	k.bank = bank
}

// GetAuthority returns the module's privileged signer.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetFeeCollector returns the account that receives protocol fees and sweeps.
func (k *Keeper) GetFeeCollector() sdk.AccAddress {
	return k.feeCollector
}

// GetEscrowAddress returns the module account holding all reserves and
// order collateral.
func (k *Keeper) GetEscrowAddress() sdk.AccAddress {
	return k.escrow
}

func (k *Keeper) now(ctx context.Context) time.Time {
	return k.header.GetHeaderInfo(ctx).Time
}
