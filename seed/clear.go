package seed

import (
	"context"
	"fmt"

	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/kasuganosora/coffeemon-seed/store"
	"go.uber.org/zap"
)

// ClearOrder lists the tables wiped by the clear stage. Every table comes
// before the tables it references.
var ClearOrder = []string{
	model.TableOrderItem,
	model.TableOrder,
	model.TableShoppingCartItem,
	model.TableShoppingCart,
	model.TableProduct,
	model.TablePlayerCoffeemonMove,
	model.TablePlayerCoffeemon,
	model.TablePlayer,
	model.TableLearnsetMove,
	model.TableCoffeemon,
	model.TableMove,
	model.TableUser,
}

func (s *Seeder) clear(ctx context.Context, log *zap.Logger, sum *Summary) error {
	cleared := make(map[string]int64, len(ClearOrder))
	var missing []string

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		for _, table := range ClearOrder {
			n, skipped, err := tx.ClearTable(ctx, table)
			if err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
			if skipped {
				log.Info("table does not exist, skipped", zap.String("table", table))
				missing = append(missing, table)
				continue
			}
			cleared[table] = n
		}
		return nil
	})
	if err != nil {
		return err
	}

	sum.Cleared = cleared
	sum.MissingTables = missing
	fmt.Fprintln(s.opts.Out, "  > Database cleared")
	return nil
}
