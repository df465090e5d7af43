package housekeeping

import (
	"sort"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// updateFeedsAndSupply implements step (10): the hourly feed-median
// recompute, the resulting DOLLAR print-rate ramp, virtual-supply
// refresh, and a recompute of the scheduled witnesses' median props.
func updateFeedsAndSupply(db *state.Database, now uint32) error {
	if now-db.Feed.LastUpdate < chain.FeedUpdateIntervalSeconds {
		return nil
	}

	scheduled := db.Schedule.CurrentShuffledWitnesses
	var rates []asset.Price
	var creationFees []int64
	var blockSizes []uint32
	var interestRates []uint16
	var subsidyLimits []uint32
	for _, owner := range scheduled {
		w, ok := db.GetWitness(owner)
		if !ok {
			continue
		}
		if !w.DollarExchangeRate.IsNull() && now-w.LastDollarExchangeUpdate < chain.MaxFeedAgeSeconds {
			rates = append(rates, w.DollarExchangeRate)
		}
		creationFees = append(creationFees, w.Props.AccountCreationFee.Amount)
		blockSizes = append(blockSizes, w.Props.MaximumBlockSize)
		interestRates = append(interestRates, w.Props.DollarInterestRate)
		subsidyLimits = append(subsidyLimits, w.Props.AccountSubsidyLimit)
	}

	if len(rates) >= chain.MinFeeds {
		sort.Slice(rates, func(i, j int) bool { return rates[i].LessThan(rates[j]) })
		db.Feed.PriceHistory = append(db.Feed.PriceHistory, rates[len(rates)/2])
		if excess := len(db.Feed.PriceHistory) - types.FeedHistoryRingLength; excess > 0 {
			db.Feed.PriceHistory = db.Feed.PriceHistory[excess:]
		}
		ring := append([]asset.Price(nil), db.Feed.PriceHistory...)
		sort.Slice(ring, func(i, j int) bool { return ring[i].LessThan(ring[j]) })
		db.Feed.CurrentMedianHistory = ring[len(ring)/2]
	}
	db.Feed.LastUpdate = now

	if !db.Feed.CurrentMedianHistory.IsNull() {
		dollarAsLiquid, err := db.Feed.CurrentMedianHistory.Mul(db.Globals.CurrentDollarSupply)
		if err != nil {
			return err
		}
		virtualSupply, err := db.Globals.CurrentSupply.Add(dollarAsLiquid)
		if err != nil {
			return err
		}
		db.Globals.VirtualSupply = virtualSupply

		var percent int64
		if virtualSupply.Amount > 0 {
			percent = dollarAsLiquid.Amount * int64(chain.Percent100) / virtualSupply.Amount
		}
		db.Globals.DollarPrintRate = printRateFor(percent)
	}

	if len(scheduled) > 0 {
		db.Schedule.MedianProps.AccountCreationFee = asset.Asset{
			Amount: medianInt64(creationFees),
			Symbol: asset.LIQUID,
		}
		db.Schedule.MedianProps.MaximumBlockSize = medianUint32(blockSizes)
		db.Schedule.MedianProps.DollarInterestRate = medianUint16(interestRates)
		db.Schedule.MedianProps.AccountSubsidyLimit = medianUint32(subsidyLimits)
	}
	return nil
}

// printRateFor ramps DollarPrintRate from full (100%) down to zero as the
// dollar-denominated share of virtual supply moves from ZBDStartPercent to
// ZBDStopPercent, suppressing new DOLLAR issuance once the peg is under
// strain.
func printRateFor(percent int64) uint16 {
	switch {
	case percent <= chain.ZBDStartPercent:
		return chain.Percent100
	case percent >= chain.ZBDStopPercent:
		return 0
	default:
		span := chain.ZBDStopPercent - chain.ZBDStartPercent
		return uint16(int64(chain.Percent100) * (chain.ZBDStopPercent - percent) / int64(span))
	}
}

func medianInt64(v []int64) int64 {
	if len(v) == 0 {
		return 0
	}
	sorted := append([]int64(nil), v...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}

func medianUint32(v []uint32) uint32 {
	if len(v) == 0 {
		return 0
	}
	sorted := append([]uint32(nil), v...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}

func medianUint16(v []uint16) uint16 {
	if len(v) == 0 {
		return 0
	}
	sorted := append([]uint16(nil), v...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}
