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

import "cosmossdk.io/errors"

var (
	ErrNotConfigured     = errors.Register(SubmoduleName, 1, "market has not been configured")
	ErrAlreadyConfigured = errors.Register(SubmoduleName, 2, "market is already configured")
	ErrInvalidConfig     = errors.Register(SubmoduleName, 3, "invalid market configuration")
	ErrInvalidOrder      = errors.Register(SubmoduleName, 4, "invalid order parameters")
	ErrNoSlotAvailable   = errors.Register(SubmoduleName, 5, "no order slot available")
	ErrOrderNotFound     = errors.Register(SubmoduleName, 6, "order not found")
	ErrOrderMismatch     = errors.Register(SubmoduleName, 7, "order id does not match slot")
	ErrOrderResolved     = errors.Register(SubmoduleName, 8, "order is fully resolved")
	ErrNothingToCancel   = errors.Register(SubmoduleName, 9, "no outstanding quantity to cancel")
	ErrUnauthorized      = errors.Register(SubmoduleName, 10, "signer may not act on this order")
	ErrWithdrawalLocked  = errors.Register(SubmoduleName, 11, "withdrawal lock has not elapsed")
)
