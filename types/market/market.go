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

import (
	"fmt"
	"time"
)

const (
	// MinimumOrderQuantity is the smallest escrow accepted by CreateOrder.
	MinimumOrderQuantity uint64 = 1_000_000

	TradeFeeBps    uint64 = 50
	BpsDenominator uint64 = 10_000

	// PriceScale is the fixed-point scale of PricePerUnit: a price of
	// 1_000_000 means one payment unit per escrowed unit.
	PriceScale uint64 = 1_000_000

	// WithdrawalLock is how long after market creation the authority must
	// wait before recovering arbitrary module balances.
	WithdrawalLock = 365 * 24 * time.Hour

	// SlotPrimary and SlotSecondary are the only order slots an account has.
	SlotPrimary   uint32 = 1
	SlotSecondary uint32 = 2
)

// Kind selects which claim token an order escrows and settles.
type Kind int32

const (
	KIND_UNSPECIFIED Kind = iota
	KIND_PRINCIPAL
	KIND_YIELD
)

func (k Kind) Valid() bool {
	return k == KIND_PRINCIPAL || k == KIND_YIELD
}

func (k Kind) String() string {
	switch k {
	case KIND_PRINCIPAL:
		return "principal"
	case KIND_YIELD:
		return "yield"
	default:
		return "unspecified"
	}
}

// Config is the market's immutable configuration, written exactly once.
type Config struct {
	PrincipalDenom string    `json:"principal_denom"`
	YieldDenom     string    `json:"yield_denom"`
	PaymentDenom   string    `json:"payment_denom"`
	CreatedAt      time.Time `json:"created_at"`
}

func (c Config) Validate() error {
	if c.PrincipalDenom == "" || c.YieldDenom == "" || c.PaymentDenom == "" {
		return fmt.Errorf("empty denom")
	}
	if c.PrincipalDenom == c.YieldDenom || c.PrincipalDenom == c.PaymentDenom || c.YieldDenom == c.PaymentDenom {
		return fmt.Errorf("denoms must be distinct")
	}

	return nil
}

// EscrowDenom returns the denom an order of the given kind holds in escrow.
func (c Config) EscrowDenom(kind Kind) string {
	if kind == KIND_YIELD {
		return c.YieldDenom
	}

	return c.PrincipalDenom
}

// Order is one of the two per-account order slots. Cancellation does not
// clear the record; it marks the order exhausted by raising FilledQuantity
// to Quantity, which also frees the slot for reuse.
type Order struct {
	Id             uint64 `json:"id"`
	Kind           Kind   `json:"kind"`
	Quantity       uint64 `json:"quantity"`
	PricePerUnit   uint64 `json:"price_per_unit"`
	FilledQuantity uint64 `json:"filled_quantity"`
}

// Resolved reports whether the order is fully filled or canceled, making
// its slot available for a new order.
func (o Order) Resolved() bool {
	return o.FilledQuantity >= o.Quantity
}

// Remaining returns the unfilled escrowed quantity.
func (o Order) Remaining() uint64 {
	if o.Resolved() {
		return 0
	}

	return o.Quantity - o.FilledQuantity
}

// Stats tracks aggregate market activity for queries only.
type Stats struct {
	OrdersCreated  uint64 `json:"orders_created"`
	Fills          uint64 `json:"fills"`
	Cancellations  uint64 `json:"cancellations"`
	VolumeFilled   uint64 `json:"volume_filled"`
	PaymentVolume  uint64 `json:"payment_volume"`
	FeesCollected  uint64 `json:"fees_collected"`
	EscrowReturned uint64 `json:"escrow_returned"`
}
