package types

import "github.com/velanet/corechain/asset"

// LimitOrder is a standing offer to sell ForSale units of SellPrice.Base
// for at least the equivalent in SellPrice.Quote.
type LimitOrder struct {
	Seller  string
	OrderID uint32

	ForSale   int64
	SellPrice asset.Price

	Created    uint32
	Expiration uint32
}

// Symbols returns the order's base and quote symbols, the pair the state
// layer's price index and BestOpposingOrder use to find the canonical market.
func (o *LimitOrder) Symbols() (asset.Symbol, asset.Symbol) {
	return o.SellPrice.Base.Symbol, o.SellPrice.Quote.Symbol
}

// ConvertRequest is a pending DOLLAR-to-LIQUID conversion, fired by
// housekeeping once head time reaches ConversionDate.
type ConvertRequest struct {
	Owner     string
	RequestID uint32

	Amount         asset.Asset
	ConversionDate uint32
}
