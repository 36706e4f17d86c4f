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

	"cosmossdk.io/errors"

	"tranche.dev/types"
	"tranche.dev/types/vault"
)

var _ vault.QueryServer = &vaultQueryServer{}

type vaultQueryServer struct {
	*Keeper
}

func NewVaultQueryServer(keeper *Keeper) vault.QueryServer {
	return &vaultQueryServer{Keeper: keeper}
}

func (q vaultQueryServer) Info(ctx context.Context, req *vault.QueryInfo) (*vault.QueryInfoResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	config, found, err := q.GetVaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault configuration")
	}
	if !found {
		return nil, vault.ErrNotConfigured
	}

	reserve, err := q.GetVaultReserve(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch reserve")
	}

	return &vault.QueryInfoResponse{
		Config:  config,
		Reserve: reserve,
		Paused:  q.GetPaused(ctx),
		Phase:   vault.PhaseAt(q.now(ctx), config).String(),
	}, nil
}

func (q vaultQueryServer) Stats(ctx context.Context, req *vault.QueryStats) (*vault.QueryStatsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	stats, err := q.GetVaultStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault stats")
	}

	return &vault.QueryStatsResponse{Stats: stats}, nil
}
