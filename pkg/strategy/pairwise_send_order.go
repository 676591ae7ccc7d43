package strategy

import (
	"github.com/hftlab/pairarb/pkg/execution"
	"github.com/hftlab/pairarb/pkg/instrument"
	"github.com/hftlab/pairarb/pkg/shm"
	"github.com/hftlab/pairarb/pkg/types"
)

// SendOrder 核心下单逻辑
// 每次行情更新时调用，执行被动报价 + 对冲
// 参考: PairwiseArbStrategy.cpp:146-385
//
// C++ 执行阶段:
//  1. SetThresholds (动态阈值)
//  2. 撤销所有 CROSS/MATCH 订单
//  3. 撤销偏离均值的 Leg1 订单
//  4. 零价格保护
//  5. 多档报价循环
//  6. Leg2 对冲
func (pas *PairwiseArbStrategy) SendOrder() {
	inst1 := pas.Inst1
	inst2 := pas.Inst2
	thold1 := pas.Thold1

	// ---- Phase 1: 动态阈值 ----
	// C++: PairwiseArbStrategy::SetThresholds()
	// 参考: PairwiseArbStrategy.cpp:902-947
	// 注意：PairwiseArb 有自己的 SetThresholds，使用 NetposPass（被动持仓）
	// 而非通用的 ExecutionStrategy::SetThresholds 使用 Netpos（总持仓）
	pas.setThresholds()

	state1 := pas.Leg1.State
	bidPlace := state1.TholdBidPlace
	bidRemove := state1.TholdBidRemove
	askPlace := state1.TholdAskPlace
	askRemove := state1.TholdAskRemove

	// C++: 所有四个阈值必须有效
	if bidPlace == -1 || bidRemove == -1 || askPlace == -1 || askRemove == -1 {
		return
	}

	// ---- Phase 2: 撤销所有 CROSS/MATCH 订单 ----
	// C++: cancel all cross/match orders in both legs
	// 参考: PairwiseArbStrategy.cpp:188-203
	pas.cancelCrossOrders(pas.Leg1)
	pas.cancelCrossOrders(pas.Leg2)

	// ---- Phase 3: 撤销偏离均值的 Leg1 订单 ----
	// 参考: PairwiseArbStrategy.cpp:205-228
	pas.cancelOutOfRangeOrders(bidRemove, askRemove)

	// ---- Phase 4: 零价格保护 ----
	// C++: if any best bid/ask is zero, return
	// 参考: PairwiseArbStrategy.cpp:230-231
	if inst1.BidPx[0] == 0 || inst1.AskPx[0] == 0 ||
		inst2.BidPx[0] == 0 || inst2.AskPx[0] == 0 {
		return
	}

	// ---- Phase 5: 多档报价循环 ----
	// 参考: PairwiseArbStrategy.cpp:235-346
	for level := int32(0); level < pas.MaxQuoteLevel; level++ {
		if level >= int32(instrument.BookDepth) {
			break
		}
		if inst1.BidPx[level] == 0 || inst1.AskPx[level] == 0 {
			break
		}

		// C++: LongSpreadRatio1 = leg1.bidPx[level] - leg2.bidPx[0]
		longSpread := inst1.BidPx[level] - inst2.BidPx[0]
		// C++: ShortSpreadRatio1 = leg1.askPx[level] - leg2.askPx[0]
		shortSpread := inst1.AskPx[level] - inst2.AskPx[0]

		// 标准化偏差：每档的原始价差相对 EWA 均值、以滚动 std_dev 为单位
		longDeviation := pas.Spread.Standardize(longSpread)
		shortDeviation := pas.Spread.Standardize(shortSpread)

		// ---- ASK (sell) placement ----
		// C++: if ShortSpreadRatio1 > avgSpreadRatio + m_tholdAskPlace
		// 参考: PairwiseArbStrategy.cpp:242-294
		if shortDeviation > askPlace {
			askPrice := inst1.AskPx[level]
			ordType := types.HitStandard

			// C++: GetAskPrice_first(price, ordType, level)
			askPrice, ordType = pas.GetAskPrice(askPrice, ordType, level)

			// C++: 检查持仓限制
			// C++: if (m_netpos_pass * -1 < m_tholdAskMaxPos)
			netposPass := pas.Leg1.State.NetposPass
			tholdAskMaxPos := state1.TholdAskMaxPos
			if tholdAskMaxPos == 0 {
				tholdAskMaxPos = state1.TholdMaxPos
			}

			if tholdAskMaxPos == 0 || -netposPass < tholdAskMaxPos {
				// C++: if (sellOpenOrders > SUPPORTING_ORDERS || sellOpenQty + -1*netpos_pass >= tholdAskMaxPos)
				if state1.SellOpenOrders > thold1.SupportingOrders ||
					int32(state1.SellOpenQty)+(-netposPass) >= tholdAskMaxPos {
					// 找最差的 ask（价格最高），如果新价更好则撤最差的
					pas.cancelWorstAskIfBetter(askPrice)
				} else {
					pas.Leg1.SendAskOrder2(shm.NEWORDER, level, askPrice, ordType, 0, 0, 0)
				}
			} else {
				// C++: 持仓超限，撤所有 ask
				for _, ord := range pas.Leg1.Orders.AskMap {
					pas.Leg1.Orders.SendCancelOrderByID(pas.Inst1, ord.OrderID)
				}
			}
		}

		// ---- BID (buy) placement ----
		// C++: if LongSpreadRatio1 < avgSpreadRatio - m_tholdBidPlace
		// 参考: PairwiseArbStrategy.cpp:297-345
		if longDeviation < -bidPlace {
			bidPrice := inst1.BidPx[level]
			ordType := types.HitStandard

			// C++: GetBidPrice_first(price, ordType, level)
			bidPrice, ordType = pas.GetBidPrice(bidPrice, ordType, level)

			// C++: 检查持仓限制
			// C++: if (m_netpos_pass < m_tholdBidMaxPos)
			netposPass := pas.Leg1.State.NetposPass
			tholdBidMaxPos := state1.TholdBidMaxPos
			if tholdBidMaxPos == 0 {
				tholdBidMaxPos = state1.TholdMaxPos
			}

			if tholdBidMaxPos == 0 || netposPass < tholdBidMaxPos {
				// C++: if (buyOpenOrders > SUPPORTING_ORDERS || buyOpenQty + netpos_pass >= tholdBidMaxPos)
				if state1.BuyOpenOrders > thold1.SupportingOrders ||
					int32(state1.BuyOpenQty)+netposPass >= tholdBidMaxPos {
					// 找最差的 bid（价格最低），如果新价更好则撤最差的
					pas.cancelWorstBidIfBetter(bidPrice)
				} else {
					pas.Leg1.SendBidOrder2(shm.NEWORDER, level, bidPrice, ordType, 0, 0, 0)
				}
			} else {
				// C++: 持仓超限，撤所有 bid
				for _, ord := range pas.Leg1.Orders.BidMap {
					pas.Leg1.Orders.SendCancelOrderByID(pas.Inst1, ord.OrderID)
				}
			}
		}
	}

	// ---- Phase 6: Leg2 对冲 ----
	// 与 ORS 回调共用同一个带阶梯重试/500ms 节流的对冲实现，
	// 避免 tick 路径用不同的节流窗口抢占 agg_repeat 计数。
	// 参考: PairwiseArbStrategy.cpp:348-375, 701-800
	pas.SendAggressiveOrder()
}

// cancelCrossOrders 撤销一条腿上所有 CROSS/MATCH 订单
// 参考: PairwiseArbStrategy.cpp:188-203
// SendCancelOrderByID 不区分订单类型，CROSS/MATCH 订单同样按状态撤销
func (pas *PairwiseArbStrategy) cancelCrossOrders(leg *execution.LegManager) {
	for _, ord := range leg.Orders.OrdMap {
		if ord.OrdType == types.HitCross || ord.OrdType == types.HitMatch {
			leg.Orders.SendCancelOrderByID(leg.Inst, ord.OrderID)
		}
	}
}

// cancelOutOfRangeOrders 撤销偏离均值的 Leg1 bid/ask 订单
// 参考: PairwiseArbStrategy.cpp:205-228
//
// 逻辑（标准化偏差，与 place 判断共用同一个 Standardize）:
//
//	Bid: standardize(ourBidPx - leg2.bid[0]) >= -bidRemove → cancel
//	Ask: standardize(ourAskPx - leg2.ask[0]) <= +askRemove → cancel
func (pas *PairwiseArbStrategy) cancelOutOfRangeOrders(bidRemove, askRemove float64) {
	inst2 := pas.Inst2

	// C++: cancel bid orders where spread is too tight
	for _, ord := range pas.Leg1.Orders.BidMap {
		longDeviation := pas.Spread.Standardize(ord.Price - inst2.BidPx[0])
		if longDeviation >= -bidRemove {
			if ord.Status == types.StatusNewConfirm ||
				ord.Status == types.StatusModifyConfirm ||
				ord.Status == types.StatusModifyReject {
				pas.Leg1.Orders.SendCancelOrderByID(pas.Inst1, ord.OrderID)
			}
		}
	}

	// C++: cancel ask orders where spread is too tight
	for _, ord := range pas.Leg1.Orders.AskMap {
		shortDeviation := pas.Spread.Standardize(ord.Price - inst2.AskPx[0])
		if shortDeviation <= askRemove {
			if ord.Status == types.StatusNewConfirm ||
				ord.Status == types.StatusModifyConfirm ||
				ord.Status == types.StatusModifyReject {
				pas.Leg1.Orders.SendCancelOrderByID(pas.Inst1, ord.OrderID)
			}
		}
	}
}

// cancelWorstAskIfBetter 如果新价格比最差 ask 更好（更低），撤最差 ask
func (pas *PairwiseArbStrategy) cancelWorstAskIfBetter(newPrice float64) {
	var worstPrice float64
	var worstOrd *types.OrderStats
	for price, ord := range pas.Leg1.Orders.AskMap {
		if worstOrd == nil || price > worstPrice {
			worstPrice = price
			worstOrd = ord
		}
	}
	if worstOrd != nil && newPrice < worstPrice {
		// 已有更差的 ask，先撤它
		_, exists := pas.Leg1.Orders.AskMap[newPrice]
		if !exists {
			pas.Leg1.Orders.SendCancelOrderByID(pas.Inst1, worstOrd.OrderID)
		}
	}
}

// cancelWorstBidIfBetter 如果新价格比最差 bid 更好（更高），撤最差 bid
func (pas *PairwiseArbStrategy) cancelWorstBidIfBetter(newPrice float64) {
	var worstPrice float64
	var worstOrd *types.OrderStats
	first := true
	for price, ord := range pas.Leg1.Orders.BidMap {
		if first || price < worstPrice {
			worstPrice = price
			worstOrd = ord
			first = false
		}
	}
	if worstOrd != nil && newPrice > worstPrice {
		_, exists := pas.Leg1.Orders.BidMap[newPrice]
		if !exists {
			pas.Leg1.Orders.SendCancelOrderByID(pas.Inst1, worstOrd.OrderID)
		}
	}
}
