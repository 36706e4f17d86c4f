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

import "cosmossdk.io/errors"

var (
	ErrNotConfigured       = errors.Register(SubmoduleName, 1, "vault has not been configured")
	ErrAlreadyConfigured   = errors.Register(SubmoduleName, 2, "vault is already configured")
	ErrInvalidConfig       = errors.Register(SubmoduleName, 3, "invalid vault configuration")
	ErrPaused              = errors.Register(SubmoduleName, 4, "vault is paused")
	ErrInvalidPhase        = errors.Register(SubmoduleName, 5, "operation not allowed in current vault phase")
	ErrInvalidAmount       = errors.Register(SubmoduleName, 6, "invalid amount")
	ErrInsufficientReserve = errors.Register(SubmoduleName, 7, "insufficient reserve")
	ErrZeroYieldShare      = errors.Register(SubmoduleName, 8, "computed yield share is zero")
	ErrInsufficientYield   = errors.Register(SubmoduleName, 9, "yield share exceeds available balance")
	ErrSweepLocked         = errors.Register(SubmoduleName, 10, "sweep delay has not elapsed")
)
