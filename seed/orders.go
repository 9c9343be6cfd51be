package seed

import (
	"context"
	"fmt"

	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/kasuganosora/coffeemon-seed/store"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// createOrders inserts the sample orders. An order already present for the
// same account, status and total amount is left alone; an order naming a
// product that does not exist is skipped whole.
func (s *Seeder) createOrders(ctx context.Context, log *zap.Logger, sum *Summary) error {
	now := s.opts.Now()
	for _, o := range s.data.Orders {
		olog := log.With(zap.String("email", o.Email), zap.String("status", o.Status),
			zap.String("total_amount", o.TotalAmount.StringFixed(2)))

		userID, ok, err := s.store.AccountIDByEmail(ctx, o.Email)
		if err != nil {
			return fmt.Errorf("look up account %s: %w", o.Email, err)
		}
		if !ok {
			olog.Warn("account not found, order skipped")
			sum.Orders.Skipped++
			continue
		}

		existing, err := s.store.OrdersFor(ctx, userID, o.Status)
		if err != nil {
			return fmt.Errorf("list orders of %s: %w", o.Email, err)
		}
		if lo.ContainsBy(existing, func(e model.Order) bool { return e.TotalAmount.Equal(o.TotalAmount) }) {
			sum.Orders.Existing++
			continue
		}

		items := make([]model.OrderItem, 0, len(o.Items))
		var missing string
		for _, it := range o.Items {
			productID, ok, err := s.store.ProductIDByName(ctx, it.Product)
			if err != nil {
				return fmt.Errorf("look up product %q: %w", it.Product, err)
			}
			if !ok {
				missing = it.Product
				break
			}
			items = append(items, model.OrderItem{
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Price:     it.UnitPrice,
				Total:     it.LineTotal(),
				ProductID: productID,
			})
		}
		if missing != "" {
			olog.Warn("product not found, order skipped", zap.String("product", missing))
			sum.Orders.Skipped++
			continue
		}

		order := &model.Order{
			TotalAmount:   o.TotalAmount,
			TotalQuantity: o.TotalQuantity,
			Status:        o.Status,
			UserID:        userID,
			UpdatedAt:     now.AddDate(0, 0, -o.DaysAgo),
		}
		err = s.store.Transaction(ctx, func(tx *store.Store) error {
			if err := tx.CreateOrder(ctx, order); err != nil {
				return err
			}
			for i := range items {
				items[i].OrderID = order.ID
				if err := tx.CreateOrderItem(ctx, &items[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			olog.Warn("order not created", zap.Error(err))
			sum.Orders.Skipped++
			continue
		}
		olog.Info("order created", zap.Int64("order_id", order.ID))
		fmt.Fprintf(s.opts.Out, "  > Order #%d - %s - R$ %s (%s)\n", order.ID, o.Email, o.TotalAmount.StringFixed(2), o.Status)
		sum.Orders.Created++
		sum.OrderItems += len(items)
	}
	return nil
}
