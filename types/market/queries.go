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

import "context"

// QueryServer is the market query surface.
type QueryServer interface {
	Info(ctx context.Context, req *QueryInfo) (*QueryInfoResponse, error)
	Order(ctx context.Context, req *QueryOrder) (*QueryOrderResponse, error)
	Orders(ctx context.Context, req *QueryOrders) (*QueryOrdersResponse, error)
	Stats(ctx context.Context, req *QueryStats) (*QueryStatsResponse, error)
}

type QueryInfo struct{}

type QueryInfoResponse struct {
	Config Config `json:"config"`
}

type QueryOrder struct {
	Seller string `json:"seller"`
	Slot   uint32 `json:"slot"`
}

type QueryOrderResponse struct {
	Order Order `json:"order"`
}

type QueryOrders struct {
	Seller string `json:"seller"`
}

// SlottedOrder pairs an order with the slot it occupies.
type SlottedOrder struct {
	Slot  uint32 `json:"slot"`
	Order Order  `json:"order"`
}

type QueryOrdersResponse struct {
	Orders []SlottedOrder `json:"orders"`
}

type QueryStats struct{}

type QueryStatsResponse struct {
	Stats Stats `json:"stats"`
}
