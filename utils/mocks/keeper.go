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

package mocks

import (
	"context"
	"testing"

	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"google.golang.org/protobuf/runtime/protoiface"

	"tranche.dev/keeper"
	"tranche.dev/types"
	"tranche.dev/utils"
)

var (
	// Authority is the privileged signer used across tests.
	Authority = utils.TestAccount()
	// FeeCollector receives protocol fees and sweeps in tests.
	FeeCollector = utils.TestAccount()
)

// TrancheKeeper constructs a keeper with default mocked dependencies.
func TrancheKeeper(t *testing.T) (*keeper.Keeper, sdk.Context) {
	k, _, ctx := TrancheKeeperWithKeepers(t, BankKeeper{
		Balances: make(map[string]sdk.Coins),
		Supply:   make(map[string]sdkmath.Int),
	}, AccountKeeper{})

	return k, ctx
}

// TrancheKeeperWithKeepers constructs a keeper around the supplied mocks.
func TrancheKeeperWithKeepers(t *testing.T, bank BankKeeper, account AccountKeeper) (*keeper.Keeper, BankKeeper, sdk.Context) {
	key := storetypes.NewKVStoreKey(types.ModuleName)
	ctx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test")).Ctx

	k := keeper.NewKeeper(
		Authority.Address,
		FeeCollector.Bytes,
		runtime.NewKVStoreService(key),
		log.NewNopLogger(),
		HeaderService{},
		EventService{},
		address.NewBech32Codec("tranche"),
		account,
		bank,
	)

	return k, bank, ctx
}

var _ header.Service = HeaderService{}

type HeaderService struct{}

func (HeaderService) GetHeaderInfo(ctx context.Context) header.Info {
	return sdk.UnwrapSDKContext(ctx).HeaderInfo()
}

var _ event.Service = EventService{}

type EventService struct{}

func (EventService) EventManager(_ context.Context) event.Manager {
	return EventManager{}
}

var _ event.Manager = EventManager{}

type EventManager struct{}

func (EventManager) Emit(_ context.Context, _ protoiface.MessageV1) error {
	return nil
}

func (EventManager) EmitKV(ctx context.Context, eventType string, attrs ...event.Attribute) error {
	attributes := make([]sdk.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		attributes = append(attributes, sdk.NewAttribute(attr.Key, attr.Value))
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(eventType, attributes...))
	return nil
}

func (EventManager) EmitNonConsensus(_ context.Context, _ protoiface.MessageV1) error {
	return nil
}
