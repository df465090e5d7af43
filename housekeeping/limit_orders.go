package housekeeping

import (
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// expireLimitOrders implements step (1): any standing order whose
// Expiration has reached now is cancelled and its escrowed ForSale amount
// refunded to Seller, the same refund-then-remove pattern
// limit_order_cancel uses for a voluntary cancel.
func expireLimitOrders(db *state.Database, now uint32) error {
	for _, id := range db.OrdersSellingBefore(now) {
		order, ok := db.LimitOrders.Get(id)
		if !ok {
			continue
		}
		seller, err := db.MustGetAccount(order.Seller)
		if err != nil {
			return err
		}
		if err := seller.Credit(asset.Asset{Amount: order.ForSale, Symbol: order.SellPrice.Base.Symbol}); err != nil {
			return err
		}

		session := db.Begin()
		if _, err := db.ModifyAccount(order.Seller, func(types.Account) types.Account { return seller }); err != nil {
			session.Rollback()
			return err
		}
		if err := db.RemoveLimitOrder(id); err != nil {
			session.Rollback()
			return err
		}
		session.Commit()
	}
	return nil
}
