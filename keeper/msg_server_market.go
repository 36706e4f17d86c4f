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
	"strconv"

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"tranche.dev/types"
	"tranche.dev/types/market"
)

var _ market.MsgServer = &marketMsgServer{}

type marketMsgServer struct {
	*Keeper
}

func NewMarketMsgServer(keeper *Keeper) market.MsgServer {
	return &marketMsgServer{Keeper: keeper}
}

func (m marketMsgServer) CreateMarket(ctx context.Context, msg *market.MsgCreateMarket) (*market.MsgCreateMarketResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	if msg.Signer != m.authority {
		return nil, errors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", m.authority, msg.Signer)
	}

	_, found, err := m.GetMarketConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market configuration")
	}
	if found {
		return nil, market.ErrAlreadyConfigured
	}

	config := market.Config{
		PrincipalDenom: msg.PrincipalDenom,
		YieldDenom:     msg.YieldDenom,
		PaymentDenom:   msg.PaymentDenom,
		CreatedAt:      m.now(ctx),
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(market.ErrInvalidConfig, err.Error())
	}

	if err := m.SetMarketConfig(ctx, config); err != nil {
		return nil, errors.Wrap(err, "unable to persist market configuration")
	}

	m.logger.Info("market created", "payment", config.PaymentDenom)

	if err := m.event.EventManager(ctx).EmitKV(ctx, market.EventTypeMarketCreated,
		event.Attribute{Key: market.AttributeKeySigner, Value: msg.Signer},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit market created event")
	}

	return &market.MsgCreateMarketResponse{CreatedAt: config.CreatedAt}, nil
}

func (m marketMsgServer) CreateOrder(ctx context.Context, msg *market.MsgCreateOrder) (*market.MsgCreateOrderResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	signer, err := m.address.StringToBytes(msg.Signer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", msg.Signer)
	}

	config, found, err := m.GetMarketConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market configuration")
	}
	if !found {
		return nil, market.ErrNotConfigured
	}

	if !msg.Kind.Valid() {
		return nil, errors.Wrapf(market.ErrInvalidOrder, "unknown order kind %d", msg.Kind)
	}
	if msg.Id == 0 {
		return nil, errors.Wrap(market.ErrInvalidOrder, "order id must be positive")
	}
	if msg.PricePerUnit == 0 {
		return nil, errors.Wrap(market.ErrInvalidOrder, "price per unit must be positive")
	}
	if msg.Quantity < market.MinimumOrderQuantity {
		return nil, errors.Wrapf(market.ErrInvalidOrder, "quantity %d below minimum of %d", msg.Quantity, market.MinimumOrderQuantity)
	}

	slot, err := m.AvailableSlot(ctx, signer)
	if err != nil {
		return nil, err
	}

	escrowed := sdk.NewCoins(coinOf(config.EscrowDenom(msg.Kind), msg.Quantity))
	if err := m.bank.SendCoins(ctx, sdk.AccAddress(signer), m.escrow, escrowed); err != nil {
		return nil, errors.Wrap(err, "unable to escrow order collateral")
	}

	order := market.Order{
		Id:           msg.Id,
		Kind:         msg.Kind,
		Quantity:     msg.Quantity,
		PricePerUnit: msg.PricePerUnit,
	}
	if err := m.SetOrder(ctx, signer, slot, order); err != nil {
		return nil, errors.Wrap(err, "unable to persist order")
	}

	stats, err := m.GetMarketStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market stats")
	}
	stats.OrdersCreated++
	if err := m.SetMarketStats(ctx, stats); err != nil {
		return nil, errors.Wrap(err, "unable to persist market stats")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, market.EventTypeOrderCreated,
		event.Attribute{Key: market.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: market.AttributeKeySlot, Value: strconv.FormatUint(uint64(slot), 10)},
		event.Attribute{Key: market.AttributeKeyOrderId, Value: strconv.FormatUint(msg.Id, 10)},
		event.Attribute{Key: market.AttributeKeyKind, Value: msg.Kind.String()},
		event.Attribute{Key: market.AttributeKeyQuantity, Value: strconv.FormatUint(msg.Quantity, 10)},
		event.Attribute{Key: market.AttributeKeyPrice, Value: strconv.FormatUint(msg.PricePerUnit, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit order created event")
	}

	return &market.MsgCreateOrderResponse{Slot: slot}, nil
}

func (m marketMsgServer) FillOrder(ctx context.Context, msg *market.MsgFillOrder) (*market.MsgFillOrderResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	buyer, err := m.address.StringToBytes(msg.Signer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", msg.Signer)
	}
	seller, err := m.address.StringToBytes(msg.Seller)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid seller address: %s", msg.Seller)
	}

	config, found, err := m.GetMarketConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market configuration")
	}
	if !found {
		return nil, market.ErrNotConfigured
	}

	order, found, err := m.GetOrder(ctx, seller, msg.Slot)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch order")
	}
	if !found {
		return nil, errors.Wrapf(market.ErrOrderNotFound, "seller %s has no order in slot %d", msg.Seller, msg.Slot)
	}
	if msg.Id != order.Id {
		return nil, errors.Wrapf(market.ErrOrderMismatch, "slot %d holds order %d, not %d", msg.Slot, order.Id, msg.Id)
	}
	if order.Resolved() {
		return nil, errors.Wrapf(market.ErrOrderResolved, "order %d is fully resolved", order.Id)
	}

	if msg.Quantity == 0 {
		return nil, errors.Wrap(market.ErrInvalidOrder, "fill quantity must be positive")
	}
	if remaining := order.Remaining(); msg.Quantity > remaining {
		return nil, errors.Wrapf(market.ErrInvalidOrder, "fill quantity %d exceeds remaining %d", msg.Quantity, remaining)
	}

	payment, err := MulDivFloor(msg.Quantity, order.PricePerUnit, market.PriceScale)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute payment")
	}
	if payment == 0 {
		return nil, errors.Wrap(market.ErrInvalidOrder, "computed payment is zero")
	}

	if err := m.bank.SendCoins(ctx, sdk.AccAddress(buyer), m.escrow, sdk.NewCoins(coinOf(config.PaymentDenom, payment))); err != nil {
		return nil, errors.Wrap(err, "unable to collect payment")
	}

	fee, err := MulDivFloor(payment, market.TradeFeeBps, market.BpsDenominator)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute trade fee")
	}
	proceeds := payment - fee

	if fee > 0 {
		if err := m.bank.SendCoins(ctx, m.escrow, m.feeCollector, sdk.NewCoins(coinOf(config.PaymentDenom, fee))); err != nil {
			return nil, errors.Wrap(err, "unable to pay trade fee")
		}
	}
	if err := m.bank.SendCoins(ctx, m.escrow, seller, sdk.NewCoins(coinOf(config.PaymentDenom, proceeds))); err != nil {
		return nil, errors.Wrap(err, "unable to pay seller")
	}
	if err := m.bank.SendCoins(ctx, m.escrow, sdk.AccAddress(buyer), sdk.NewCoins(coinOf(config.EscrowDenom(order.Kind), msg.Quantity))); err != nil {
		return nil, errors.Wrap(err, "unable to deliver escrowed tokens")
	}

	order.FilledQuantity += msg.Quantity
	if err := m.SetOrder(ctx, seller, msg.Slot, order); err != nil {
		return nil, errors.Wrap(err, "unable to persist order")
	}

	stats, err := m.GetMarketStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market stats")
	}
	stats.Fills++
	stats.VolumeFilled += msg.Quantity
	stats.PaymentVolume += payment
	stats.FeesCollected += fee
	if err := m.SetMarketStats(ctx, stats); err != nil {
		return nil, errors.Wrap(err, "unable to persist market stats")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, market.EventTypeOrderFilled,
		event.Attribute{Key: market.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: market.AttributeKeySeller, Value: msg.Seller},
		event.Attribute{Key: market.AttributeKeySlot, Value: strconv.FormatUint(uint64(msg.Slot), 10)},
		event.Attribute{Key: market.AttributeKeyOrderId, Value: strconv.FormatUint(order.Id, 10)},
		event.Attribute{Key: market.AttributeKeyQuantity, Value: strconv.FormatUint(msg.Quantity, 10)},
		event.Attribute{Key: market.AttributeKeyPayment, Value: strconv.FormatUint(payment, 10)},
		event.Attribute{Key: market.AttributeKeyFee, Value: strconv.FormatUint(fee, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit order filled event")
	}

	return &market.MsgFillOrderResponse{
		PaymentRequired: payment,
		FeePaid:         fee,
		SellerProceeds:  proceeds,
	}, nil
}

// cancelSlot voids the order in the given slot and returns the unfilled
// collateral to the seller. The order record stays in state, marked fully
// resolved, so the slot reads as free for the next order.
func (m marketMsgServer) cancelSlot(ctx context.Context, config market.Config, seller sdk.AccAddress, slot uint32) (uint64, error) {
	order, found, err := m.GetOrder(ctx, seller, slot)
	if err != nil {
		return 0, errors.Wrap(err, "unable to fetch order")
	}
	if !found {
		return 0, errors.Wrapf(market.ErrOrderNotFound, "no order in slot %d", slot)
	}

	outstanding := order.Remaining()
	if outstanding == 0 {
		return 0, errors.Wrapf(market.ErrNothingToCancel, "order %d in slot %d is already resolved", order.Id, slot)
	}

	if err := m.bank.SendCoins(ctx, m.escrow, seller, sdk.NewCoins(coinOf(config.EscrowDenom(order.Kind), outstanding))); err != nil {
		return 0, errors.Wrap(err, "unable to return order collateral")
	}

	order.FilledQuantity = order.Quantity
	if err := m.SetOrder(ctx, seller, slot, order); err != nil {
		return 0, errors.Wrap(err, "unable to persist order")
	}

	stats, err := m.GetMarketStats(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "unable to fetch market stats")
	}
	stats.Cancellations++
	stats.EscrowReturned += outstanding
	if err := m.SetMarketStats(ctx, stats); err != nil {
		return 0, errors.Wrap(err, "unable to persist market stats")
	}

	return outstanding, nil
}

func (m marketMsgServer) CancelOrder(ctx context.Context, msg *market.MsgCancelOrder) (*market.MsgCancelOrderResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	seller, err := m.address.StringToBytes(msg.Seller)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid seller address: %s", msg.Seller)
	}
	if msg.Signer != msg.Seller && msg.Signer != m.authority {
		return nil, errors.Wrap(market.ErrUnauthorized, "only the seller or the authority can cancel")
	}
	if msg.Slot != market.SlotPrimary && msg.Slot != market.SlotSecondary {
		return nil, errors.Wrapf(market.ErrInvalidOrder, "unknown slot %d", msg.Slot)
	}

	config, found, err := m.GetMarketConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market configuration")
	}
	if !found {
		return nil, market.ErrNotConfigured
	}

	returned, err := m.cancelSlot(ctx, config, seller, msg.Slot)
	if err != nil {
		return nil, err
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, market.EventTypeOrderCanceled,
		event.Attribute{Key: market.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: market.AttributeKeySeller, Value: msg.Seller},
		event.Attribute{Key: market.AttributeKeySlot, Value: strconv.FormatUint(uint64(msg.Slot), 10)},
		event.Attribute{Key: market.AttributeKeyReturned, Value: strconv.FormatUint(returned, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit order canceled event")
	}

	return &market.MsgCancelOrderResponse{AmountReturned: returned}, nil
}

func (m marketMsgServer) CancelBothOrders(ctx context.Context, msg *market.MsgCancelBothOrders) (*market.MsgCancelBothOrdersResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	seller, err := m.address.StringToBytes(msg.Seller)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid seller address: %s", msg.Seller)
	}
	if msg.Signer != msg.Seller && msg.Signer != m.authority {
		return nil, errors.Wrap(market.ErrUnauthorized, "only the seller or the authority can cancel")
	}

	config, found, err := m.GetMarketConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market configuration")
	}
	if !found {
		return nil, market.ErrNotConfigured
	}

	var total uint64
	canceled := false
	for _, slot := range []uint32{market.SlotPrimary, market.SlotSecondary} {
		returned, err := m.cancelSlot(ctx, config, seller, slot)
		if err != nil {
			// Empty and already-resolved slots are skipped; anything else
			// aborts the whole cancellation.
			if errors.IsOf(err, market.ErrOrderNotFound, market.ErrNothingToCancel) {
				continue
			}
			return nil, err
		}
		total += returned
		canceled = true
	}
	if !canceled {
		return nil, errors.Wrap(market.ErrNothingToCancel, "no live orders to cancel")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, market.EventTypeOrderCanceled,
		event.Attribute{Key: market.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: market.AttributeKeySeller, Value: msg.Seller},
		event.Attribute{Key: market.AttributeKeyReturned, Value: strconv.FormatUint(total, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit order canceled event")
	}

	return &market.MsgCancelBothOrdersResponse{AmountReturned: total}, nil
}

func (m marketMsgServer) Withdraw(ctx context.Context, msg *market.MsgWithdraw) (*market.MsgWithdrawResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	if msg.Signer != m.authority {
		return nil, errors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", m.authority, msg.Signer)
	}

	signer, err := m.address.StringToBytes(msg.Signer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", msg.Signer)
	}

	config, found, err := m.GetMarketConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch market configuration")
	}
	if !found {
		return nil, market.ErrNotConfigured
	}

	unlock := config.CreatedAt.Add(market.WithdrawalLock)
	if now := m.now(ctx); now.Before(unlock) {
		return nil, errors.Wrapf(market.ErrWithdrawalLocked, "withdrawals unlock at %s", unlock)
	}

	if msg.Amount == 0 {
		return nil, errors.Wrap(types.ErrInvalidRequest, "withdrawal amount must be positive")
	}
	if msg.Denom == "" {
		return nil, errors.Wrap(types.ErrInvalidRequest, "withdrawal denom cannot be empty")
	}

	if err := m.bank.SendCoins(ctx, m.escrow, sdk.AccAddress(signer), sdk.NewCoins(coinOf(msg.Denom, msg.Amount))); err != nil {
		return nil, errors.Wrap(err, "unable to withdraw from escrow")
	}

	m.logger.Info("market escrow withdrawn", "denom", msg.Denom, "amount", msg.Amount)

	if err := m.event.EventManager(ctx).EmitKV(ctx, market.EventTypeWithdrawn,
		event.Attribute{Key: market.AttributeKeySigner, Value: msg.Signer},
		event.Attribute{Key: market.AttributeKeyDenom, Value: msg.Denom},
		event.Attribute{Key: market.AttributeKeyAmount, Value: strconv.FormatUint(msg.Amount, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit withdrawal event")
	}

	return &market.MsgWithdrawResponse{}, nil
}
