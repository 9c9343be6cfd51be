package seed

import (
	"context"
	"fmt"

	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/kasuganosora/coffeemon-seed/store"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ensureCatalog creates missing products (by name), moves (by id) and
// species (by id). Moves go first so species learnsets can reference them.
func (s *Seeder) ensureCatalog(ctx context.Context, log *zap.Logger, sum *Summary) error {
	if err := s.ensureProducts(ctx, log, sum); err != nil {
		return err
	}
	if err := s.ensureMoves(ctx, log, sum); err != nil {
		return err
	}
	return s.ensureSpecies(ctx, log, sum)
}

func (s *Seeder) ensureProducts(ctx context.Context, log *zap.Logger, sum *Summary) error {
	for _, p := range s.data.Products {
		_, ok, err := s.store.ProductIDByName(ctx, p.Name)
		if err != nil {
			return fmt.Errorf("look up product %q: %w", p.Name, err)
		}
		if ok {
			sum.Products.Existing++
			continue
		}
		row := &model.Product{Name: p.Name, Description: p.Description, Price: p.Price, Image: p.Image}
		if err := s.store.CreateProduct(ctx, row); err != nil {
			log.Warn("product not created", zap.String("product", p.Name), zap.Error(err))
			sum.Products.Skipped++
			continue
		}
		fmt.Fprintf(s.opts.Out, "  > Created: %s - R$ %s\n", p.Name, p.Price.StringFixed(2))
		sum.Products.Created++
	}
	return nil
}

func (s *Seeder) ensureMoves(ctx context.Context, log *zap.Logger, sum *Summary) error {
	for _, m := range s.data.Moves {
		ok, err := s.store.MoveExists(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("look up move %d: %w", m.ID, err)
		}
		if ok {
			sum.Moves.Existing++
			continue
		}
		row := &model.Move{ID: m.ID, Name: m.Name, Description: m.Description, Type: m.Type, Power: m.Power}
		if m.Effects != "" {
			row.Effects = datatypes.JSON(m.Effects)
		}
		if err := s.store.CreateMove(ctx, row); err != nil {
			log.Warn("move not created", zap.Int64("move_id", m.ID), zap.String("move", m.Name), zap.Error(err))
			sum.Moves.Skipped++
			continue
		}
		sum.Moves.Created++
	}
	return nil
}

func (s *Seeder) ensureSpecies(ctx context.Context, log *zap.Logger, sum *Summary) error {
	for _, sp := range s.data.Species {
		splog := log.With(zap.Int64("coffeemon_id", sp.ID), zap.String("coffeemon", sp.Name))

		_, ok, err := s.store.Species(ctx, sp.ID)
		if err != nil {
			return fmt.Errorf("look up species %d: %w", sp.ID, err)
		}
		if ok {
			sum.Species.Existing++
			continue
		}

		var missing []int64
		for _, id := range lo.Uniq(lo.Map(sp.Learnset, func(l LearnsetSeed, _ int) int64 { return l.MoveID })) {
			ok, err := s.store.MoveExists(ctx, id)
			if err != nil {
				return fmt.Errorf("look up move %d: %w", id, err)
			}
			if !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			splog.Warn("species skipped, learnset references missing moves", zap.Int64s("move_ids", missing))
			sum.Species.Skipped++
			continue
		}

		row := &model.Coffeemon{
			ID: sp.ID, Name: sp.Name, Type: sp.Type,
			BaseHP: sp.BaseHP, BaseAttack: sp.BaseAttack, BaseDefense: sp.BaseDefense,
		}
		learnset := lo.Map(sp.Learnset, func(l LearnsetSeed, _ int) model.CoffeemonLearnsetMove {
			lm := model.CoffeemonLearnsetMove{MoveID: l.MoveID, LearnMethod: l.Method}
			if l.Method == model.LearnLevelUp {
				lvl := l.Level
				lm.LevelLearned = &lvl
			}
			return lm
		})
		err = s.store.Transaction(ctx, func(tx *store.Store) error {
			return tx.CreateSpecies(ctx, row, learnset)
		})
		if err != nil {
			splog.Warn("species not created", zap.Error(err))
			sum.Species.Skipped++
			continue
		}
		splog.Info("species created", zap.Int("learnset", len(learnset)))
		fmt.Fprintf(s.opts.Out, "  > Created: #%d %s\n", sp.ID, sp.Name)
		sum.Species.Created++
	}
	return nil
}
