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

import (
	"fmt"
	"time"
)

const (
	// MinimumMintAmount is the smallest underlying deposit accepted by Mint,
	// both before and after the mint fee is deducted.
	MinimumMintAmount uint64 = 1_000_000
	// MinimumRedeemAmount is the smallest principal/yield pair accepted by
	// Redeem, both before and after the early-redemption fee.
	MinimumRedeemAmount uint64 = 1_000_000

	MintFeeBps        uint64 = 50
	EarlyRedeemFeeBps uint64 = 150
	BpsDenominator    uint64 = 10_000

	// SweepDelay is how long past maturity stranded balances stay untouched
	// before the authority may sweep them.
	SweepDelay = 30 * 24 * time.Hour
)

// Config is the vault's immutable configuration, written exactly once.
type Config struct {
	UnderlyingDenom   string    `json:"underlying_denom"`
	PrincipalDenom    string    `json:"principal_denom"`
	YieldDenom        string    `json:"yield_denom"`
	YieldPaymentDenom string    `json:"yield_payment_denom"`
	MintWindowStart   time.Time `json:"mint_window_start"`
	MintWindowEnd     time.Time `json:"mint_window_end"`
	Maturity          time.Time `json:"maturity"`
	CreatedAt         time.Time `json:"created_at"`
}

// Validate checks the creation-time invariants: four distinct denoms and
// mintWindowStart < mintWindowEnd <= maturity.
func (c Config) Validate() error {
	denoms := map[string]bool{}
	for _, denom := range c.Denoms() {
		if denom == "" {
			return fmt.Errorf("empty denom")
		}
		if denoms[denom] {
			return fmt.Errorf("duplicate denom %s", denom)
		}
		denoms[denom] = true
	}

	if !c.MintWindowStart.Before(c.MintWindowEnd) {
		return fmt.Errorf("mint window start must be before mint window end")
	}
	if c.Maturity.Before(c.MintWindowEnd) {
		return fmt.Errorf("maturity must not precede mint window end")
	}

	return nil
}

// Denoms returns the four tracked denoms in a fixed order.
func (c Config) Denoms() []string {
	return []string{c.UnderlyingDenom, c.PrincipalDenom, c.YieldDenom, c.YieldPaymentDenom}
}

// Phase is the vault lifecycle stage derived from the current block time.
// It is never stored; every operation derives it on demand so that all time
// gates share one derivation.
type Phase int32

const (
	PhasePending Phase = iota
	PhaseMinting
	PhaseLocked
	PhaseMatured
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseMinting:
		return "minting"
	case PhaseLocked:
		return "locked"
	case PhaseMatured:
		return "matured"
	default:
		return "unknown"
	}
}

// PhaseAt derives the vault phase for the supplied time. The mint window is
// inclusive of both bounds; maturity is exclusive, i.e. the vault matures
// strictly after the maturity timestamp.
func PhaseAt(now time.Time, config Config) Phase {
	switch {
	case now.Before(config.MintWindowStart):
		return PhasePending
	case !now.After(config.MintWindowEnd):
		return PhaseMinting
	case !now.After(config.Maturity):
		return PhaseLocked
	default:
		return PhaseMatured
	}
}

// Stats tracks aggregate vault activity for queries and dashboards. It is
// observability only and never feeds back into accounting.
type Stats struct {
	Mints             uint64 `json:"mints"`
	Redemptions       uint64 `json:"redemptions"`
	MatureRedemptions uint64 `json:"mature_redemptions"`
	YieldClaims       uint64 `json:"yield_claims"`
	GrossDeposits     uint64 `json:"gross_deposits"`
	FeesCollected     uint64 `json:"fees_collected"`
	YieldPaidOut      uint64 `json:"yield_paid_out"`
}
