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
	"cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"tranche.dev/types"
)

// MulDivFloor computes floor(a*b/d) with an arbitrary-precision intermediate
// product so a*b can never silently wrap. The result must fit back into a
// uint64; when it does not (or d is zero) the computation fails with
// ErrOverflow. Floor is the only rounding mode used anywhere in this module:
// fees round down in favor of the payer and shares round down against the
// claimant, which keeps the reserve solvent.
func MulDivFloor(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, errors.Wrap(types.ErrOverflow, "division by zero")
	}

	quotient := sdkmath.NewIntFromUint64(a).
		Mul(sdkmath.NewIntFromUint64(b)).
		Quo(sdkmath.NewIntFromUint64(d))
	if !quotient.IsUint64() {
		return 0, errors.Wrapf(types.ErrOverflow, "%d * %d / %d exceeds 64 bits", a, b, d)
	}

	return quotient.Uint64(), nil
}

// uint64FromInt converts a bank amount back into the module's native width.
func uint64FromInt(amount sdkmath.Int) (uint64, error) {
	if amount.IsNegative() || !amount.IsUint64() {
		return 0, errors.Wrapf(types.ErrOverflow, "amount %s does not fit in 64 bits", amount)
	}

	return amount.Uint64(), nil
}

func coinOf(denom string, amount uint64) sdk.Coin {
	return sdk.NewCoin(denom, sdkmath.NewIntFromUint64(amount))
}
