package seed

import (
	"context"
	"fmt"

	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/kasuganosora/coffeemon-seed/store"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// New player defaults.
const (
	StartingCoins = 100
	StartingLevel = 1
)

// ensurePlayers gives every account without a player a fresh one.
func (s *Seeder) ensurePlayers(ctx context.Context, log *zap.Logger, sum *Summary) error {
	users, err := s.store.AccountsWithoutPlayer(ctx)
	if err != nil {
		return fmt.Errorf("list accounts without player: %w", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(s.opts.Out, "  > Every account already has a player")
	}
	for _, u := range users {
		p := &model.Player{Coins: StartingCoins, Level: StartingLevel, Experience: 0, UserID: u.ID}
		if err := s.store.CreatePlayer(ctx, p); err != nil {
			log.Warn("player not created", zap.String("email", u.Email), zap.Error(err))
			sum.Players.Skipped++
			continue
		}
		log.Info("player created", zap.String("email", u.Email), zap.Int64("player_id", p.ID))
		fmt.Fprintf(s.opts.Out, "  > Created player for: %s\n", u.Email)
		sum.Players.Created++
	}
	return nil
}

// Slot is a move placed in one slot of a new Coffeemon instance.
type Slot struct {
	MoveID int64
	Slot   int
}

// StarterSlots picks the start moves of a learnset, in learnset order, and
// numbers them from 1. Anything past model.MaxMoveSlots is dropped.
func StarterSlots(learnset []model.CoffeemonLearnsetMove) []Slot {
	starters := lo.Filter(learnset, func(m model.CoffeemonLearnsetMove, _ int) bool {
		return m.LearnMethod == model.LearnStart
	})
	if len(starters) > model.MaxMoveSlots {
		starters = starters[:model.MaxMoveSlots]
	}
	return lo.Map(starters, func(m model.CoffeemonLearnsetMove, i int) Slot {
		return Slot{MoveID: m.MoveID, Slot: i + 1}
	})
}

// distributeCoffeemons grants each assigned species to its player once.
func (s *Seeder) distributeCoffeemons(ctx context.Context, log *zap.Logger, sum *Summary) error {
	for _, a := range s.data.Assignments {
		plog := log.With(zap.String("email", a.Email))

		playerID, ok, err := s.store.PlayerIDByEmail(ctx, a.Email)
		if err != nil {
			return fmt.Errorf("look up player %s: %w", a.Email, err)
		}
		if !ok {
			plog.Warn("no player for account, assignment skipped")
			sum.Coffeemons.Skipped += len(a.SpeciesIDs)
			continue
		}
		plog = plog.With(zap.Int64("player_id", playerID))

		for _, speciesID := range a.SpeciesIDs {
			if err := s.grant(ctx, plog.With(zap.Int64("coffeemon_id", speciesID)), sum, playerID, speciesID); err != nil {
				return err
			}
		}
	}
	return nil
}

// grant creates one instance with its starter moves. Only read errors are
// returned; a failed insert is logged and counted as skipped.
func (s *Seeder) grant(ctx context.Context, log *zap.Logger, sum *Summary, playerID, speciesID int64) error {
	has, err := s.store.HasPlayerCoffeemon(ctx, playerID, speciesID)
	if err != nil {
		return fmt.Errorf("look up instance of %d for player %d: %w", speciesID, playerID, err)
	}
	if has {
		sum.Coffeemons.Existing++
		return nil
	}

	species, ok, err := s.store.Species(ctx, speciesID)
	if err != nil {
		return fmt.Errorf("look up species %d: %w", speciesID, err)
	}
	if !ok {
		log.Warn("species not found, skipped")
		sum.Coffeemons.Skipped++
		return nil
	}
	learnset, err := s.store.Learnset(ctx, speciesID)
	if err != nil {
		return fmt.Errorf("load learnset of %d: %w", speciesID, err)
	}
	slots := StarterSlots(learnset)
	dropped := lo.CountBy(learnset, func(m model.CoffeemonLearnsetMove) bool {
		return m.LearnMethod == model.LearnStart
	}) - len(slots)

	instance := &model.PlayerCoffeemon{
		HP:          species.BaseHP,
		Attack:      species.BaseAttack,
		Defense:     species.BaseDefense,
		Level:       StartingLevel,
		Experience:  0,
		IsInParty:   true,
		PlayerID:    playerID,
		CoffeemonID: species.ID,
	}
	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.CreatePlayerCoffeemon(ctx, instance); err != nil {
			return err
		}
		for _, sl := range slots {
			row := &model.PlayerCoffeemonMove{PlayerCoffeemonID: instance.ID, MoveID: sl.MoveID, Slot: sl.Slot}
			if err := tx.EquipMove(ctx, row); err != nil {
				return fmt.Errorf("slot %d: %w", sl.Slot, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("coffeemon not granted", zap.Error(err))
		sum.Coffeemons.Skipped++
		return nil
	}

	if dropped > 0 {
		log.Debug("start moves beyond the last slot dropped", zap.Int("dropped", dropped))
	}
	log.Info("coffeemon granted", zap.Int64("player_coffeemon_id", instance.ID), zap.Int("moves", len(slots)))
	fmt.Fprintf(s.opts.Out, "  > %s -> player %d (%d moves)\n", species.Name, playerID, len(slots))
	sum.Coffeemons.Created++
	sum.EquippedMoves += len(slots)
	sum.DroppedMoves += dropped
	return nil
}
