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

const (
	EventTypeVaultCreated = "vault_created"
	EventTypeMint         = "vault_mint"
	EventTypeRedeem       = "vault_redeem"
	EventTypeRedeemMature = "vault_redeem_mature"
	EventTypeYieldClaimed = "vault_yield_claimed"
	EventTypeSwept        = "vault_swept"
	EventTypePausedSet    = "vault_paused_set"

	AttributeKeySigner  = "signer"
	AttributeKeyAmount  = "amount"
	AttributeKeyFee     = "fee"
	AttributeKeyMinted  = "minted"
	AttributeKeyShare   = "share"
	AttributeKeyReserve = "reserve"
	AttributeKeySwept   = "swept"
	AttributeKeyPaused  = "paused"
)
