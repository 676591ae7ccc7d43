package strategy

import (
	"math"
)

// stdDevEpsilon 标准差小于该值时视为零，偏差强制为 0
const stdDevEpsilon = 1e-10

// SpreadTracker 跟踪配对套利的价差 EWA 及其滚动标准差
// 对应 C++ PairwiseArbStrategy 中的 avgSpreadRatio_ori, avgSpreadRatio, currSpreadRatio
// 参考: tbsrc/Strategies/PairwiseArbStrategy.cpp:496-523
type SpreadTracker struct {
	AvgSpreadOri  float64 // C++: avgSpreadRatio_ori — EWA of spread (persisted to daily_init)
	AvgSpread     float64 // C++: avgSpreadRatio = avgSpreadRatio_ori + tValue
	CurrSpread    float64 // C++: currSpreadRatio = mid1 - ratio*mid2
	TValue        float64 // C++: tValue — external adjustment from tvar SHM
	Alpha         float64 // C++: m_thold_first->ALPHA — EWA decay factor
	Ratio         float64 // C++: PRICE_RATIO — leg2 mid coefficient in the spread
	TickSize      float64 // for AVG_SPREAD_AWAY check
	AvgSpreadAway int32   // C++: m_thold_first->AVG_SPREAD_AWAY (default 20) — also the std_dev sample window
	StdDev        float64 // running standard deviation over the last AvgSpreadAway samples
	IsValid       bool    // C++: is_valid_mkdata — false if spread deviates too far
	Initialized   bool    // false until first Update call

	buf      []float64 // trailing ring buffer of spread samples, len == AvgSpreadAway
	bufPos   int
	bufCount int // samples written so far, caps at len(buf)
}

// NewSpreadTracker 创建 SpreadTracker
// ratio <= 0 默认为 1.0（单位对冲比，适用于绝大多数配对）
func NewSpreadTracker(alpha float64, tickSize float64, avgSpreadAway int32, ratio float64) *SpreadTracker {
	if avgSpreadAway <= 0 {
		avgSpreadAway = 20 // C++ default
	}
	if ratio <= 0 {
		ratio = 1.0
	}
	return &SpreadTracker{
		Alpha:         alpha,
		Ratio:         ratio,
		TickSize:      tickSize,
		AvgSpreadAway: avgSpreadAway,
		IsValid:       true,
		buf:           make([]float64, avgSpreadAway),
	}
}

// Seed 从 daily_init 文件初始化 EWA 种子值
// 参考: PairwiseArbStrategy.cpp:31 — avgSpreadRatio_ori 从文件加载
func (st *SpreadTracker) Seed(avgSpreadOri float64) {
	st.AvgSpreadOri = avgSpreadOri
	st.AvgSpread = avgSpreadOri + st.TValue
	st.Initialized = true
}

// SetTValue 更新外部调整值
// C++: tValue = m_tvar->load(); avgSpreadRatio = avgSpreadRatio_ori + tValue
// 参考: PairwiseArbStrategy.cpp:482-486
func (st *SpreadTracker) SetTValue(v float64) {
	st.TValue = v
	st.AvgSpread = st.AvgSpreadOri + st.TValue
}

// Update 更新价差，返回 true 如果价差有效
// 参考: PairwiseArbStrategy.cpp:496-523
//
// 逻辑:
//  1. currSpread = mid1 - ratio*mid2
//  2. if |curr - avg| > tickSize * AVG_SPREAD_AWAY: invalid
//  3. avgSpreadRatio_ori = (1-ALPHA)*avgSpreadRatio_ori + ALPHA*currSpread
//  4. avgSpreadRatio = avgSpreadRatio_ori + tValue
//  5. std_dev 由 leg1 行情驱动的滚动样本窗口重新计算
//
// isLeg1Update: 仅在 leg1 行情更新时才刷新 EWA 和 std_dev 窗口（C++ 行为）
func (st *SpreadTracker) Update(mid1, mid2 float64, isLeg1Update bool) bool {
	st.CurrSpread = mid1 - st.Ratio*mid2

	// 首次更新时用当前价差初始化 EWA
	if !st.Initialized {
		st.AvgSpreadOri = st.CurrSpread
		st.AvgSpread = st.AvgSpreadOri + st.TValue
		st.Initialized = true
	}

	// C++: AVG_SPREAD_AWAY 安全检查（畸形行情/跳空保护，与标准差窗口大小共用同一配置）
	// 参考: PairwiseArbStrategy.cpp:506-517
	deviation := math.Abs(st.CurrSpread - st.AvgSpread)
	maxDeviation := st.TickSize * float64(st.AvgSpreadAway)
	if maxDeviation > 0 && deviation > maxDeviation {
		st.IsValid = false
		return false
	}
	st.IsValid = true

	// EWA 及 std_dev 窗口仅在 leg1 行情更新时刷新
	// 参考: PairwiseArbStrategy.cpp:519-523
	if isLeg1Update {
		if st.Alpha > 0 {
			st.AvgSpreadOri = (1-st.Alpha)*st.AvgSpreadOri + st.Alpha*st.CurrSpread
			st.AvgSpread = st.AvgSpreadOri + st.TValue
		}
		st.pushSample(st.CurrSpread)
	}

	return true
}

// pushSample 将样本写入滚动窗口并重新计算标准差
func (st *SpreadTracker) pushSample(v float64) {
	if len(st.buf) == 0 {
		return
	}
	st.buf[st.bufPos] = v
	st.bufPos = (st.bufPos + 1) % len(st.buf)
	if st.bufCount < len(st.buf) {
		st.bufCount++
	}
	st.recomputeStdDev()
}

// recomputeStdDev 在窗口未满前不重新计算：std_dev 保持初值 0（Deviation 因此强制为 0），
// 或保持 SeedStdDev 设定的值
func (st *SpreadTracker) recomputeStdDev() {
	if st.bufCount < len(st.buf) {
		return
	}
	var mean float64
	for _, v := range st.buf {
		mean += v
	}
	mean /= float64(len(st.buf))

	var sumSq float64
	for _, v := range st.buf {
		d := v - mean
		sumSq += d * d
	}
	st.StdDev = math.Sqrt(sumSq / float64(len(st.buf)))
}

// Deviation 返回标准化后的价差偏差 (curr-avg)/std_dev
// std_dev 低于 epsilon（含窗口未满的情况）时强制为 0
func (st *SpreadTracker) Deviation() float64 {
	return st.Standardize(st.CurrSpread)
}

// SeedStdDev 直接设置标准差，在真实样本填满 AvgSpreadAway 条窗口之前一直使用该值。
// 用于热启动（例如从 daily_init 恢复时不想重新经历一次预热期）和测试，
// 跳过真实样本积累到 AvgSpreadAway 条之前的那段 deviation 强制为零的窗口。
func (st *SpreadTracker) SeedStdDev(stdDev float64) {
	st.StdDev = stdDev
}

// Standardize 将任意原始价差（例如某一档的 leg1-leg2 报价差）转换为相对
// 当前 EWA 均值的标准化偏差，与 Deviation() 使用同一个滚动 std_dev。
// 下单决策（各档位的 place/remove 判断）都通过这个函数比较阈值，
// 而不是直接拿原始价格差和阈值比较——阈值本身就是标准化单位。
func (st *SpreadTracker) Standardize(raw float64) float64 {
	if st.StdDev < stdDevEpsilon {
		return 0
	}
	return (raw - st.AvgSpread) / st.StdDev
}
