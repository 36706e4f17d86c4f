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

package vault_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tranche.dev/types/vault"
)

func testConfig() vault.Config {
	return vault.Config{
		UnderlyingDenom:   "uusdc",
		PrincipalDenom:    "utprn",
		YieldDenom:        "utyld",
		YieldPaymentDenom: "uusde",
		MintWindowStart:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		MintWindowEnd:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Maturity:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPhaseBoundaries(t *testing.T) {
	config := testConfig()

	testCases := []struct {
		name     string
		now      time.Time
		expected vault.Phase
	}{
		{"before window", config.MintWindowStart.Add(-time.Second), vault.PhasePending},
		{"window opens inclusively", config.MintWindowStart, vault.PhaseMinting},
		{"inside window", config.MintWindowStart.Add(time.Hour), vault.PhaseMinting},
		{"window closes inclusively", config.MintWindowEnd, vault.PhaseMinting},
		{"after window", config.MintWindowEnd.Add(time.Second), vault.PhaseLocked},
		{"maturity instant is still locked", config.Maturity, vault.PhaseLocked},
		{"strictly after maturity", config.Maturity.Add(time.Second), vault.PhaseMatured},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, vault.PhaseAt(tc.now, config))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	// ASSERT: The baseline configuration is valid.
	require.NoError(t, testConfig().Validate())

	// ACT: Duplicate denoms.
	config := testConfig()
	config.YieldDenom = config.PrincipalDenom
	// ASSERT: Denoms must be distinct.
	require.ErrorContains(t, config.Validate(), "duplicate denom")

	// ACT: Empty denom.
	config = testConfig()
	config.YieldPaymentDenom = ""
	// ASSERT: All four denoms are required.
	require.ErrorContains(t, config.Validate(), "empty denom")

	// ACT: Inverted window.
	config = testConfig()
	config.MintWindowStart, config.MintWindowEnd = config.MintWindowEnd, config.MintWindowStart
	// ASSERT: The window must open before it closes.
	require.ErrorContains(t, config.Validate(), "mint window start")

	// ACT: Maturity inside the window.
	config = testConfig()
	config.Maturity = config.MintWindowEnd.Add(-time.Second)
	// ASSERT: Maturity cannot precede the window's close.
	require.ErrorContains(t, config.Validate(), "maturity")

	// ACT: Maturity equal to the window's close.
	config = testConfig()
	config.Maturity = config.MintWindowEnd
	// ASSERT: A zero-length locked phase is allowed.
	require.NoError(t, config.Validate())
}
