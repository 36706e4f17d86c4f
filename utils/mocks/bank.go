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
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"tranche.dev/types"
)

var _ types.BankKeeper = BankKeeper{}

type BankKeeper struct {
	Balances map[string]sdk.Coins
	Supply   map[string]sdkmath.Int
}

func key(address sdk.AccAddress) string {
	bech32, _ := sdk.Bech32ifyAddressBytes("tranche", address)
	return bech32
}

func (k BankKeeper) GetBalance(_ context.Context, address sdk.AccAddress, denom string) sdk.Coin {
	amount := k.Balances[key(address)].AmountOf(denom)
	return sdk.Coin{Denom: denom, Amount: amount}
}

func (k BankKeeper) GetSupply(_ context.Context, denom string) sdk.Coin {
	amount, ok := k.Supply[denom]
	if !ok {
		amount = sdkmath.ZeroInt()
	}
	return sdk.Coin{Denom: denom, Amount: amount}
}

func (k BankKeeper) MintCoins(_ context.Context, moduleName string, amount sdk.Coins) error {
	address := key(authtypes.NewModuleAddress(moduleName))
	k.Balances[address] = k.Balances[address].Add(amount...)
	for _, coin := range amount {
		supply, ok := k.Supply[coin.Denom]
		if !ok {
			supply = sdkmath.ZeroInt()
		}
		k.Supply[coin.Denom] = supply.Add(coin.Amount)
	}

	return nil
}

func (k BankKeeper) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amount sdk.Coins) error {
	from, to := key(fromAddr), key(toAddr)

	balance, negative := k.Balances[from].SafeSub(amount...)
	if negative {
		return fmt.Errorf("%s has insufficient funds to send %s", from, amount)
	}

	k.Balances[from] = balance
	k.Balances[to] = k.Balances[to].Add(amount...)

	return nil
}
