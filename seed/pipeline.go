package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Stage names.
const (
	StageClear      = "clear"
	StageAccounts   = "accounts"
	StageAdminRole  = "admin_role"
	StageCatalog    = "catalog"
	StagePlayers    = "players"
	StageCoffeemons = "coffeemons"
	StageOrders     = "orders"
)

type stageFunc func(ctx context.Context, log *zap.Logger, sum *Summary) error

// stage is one step of the pipeline. A stage whose requirement failed or was
// skipped is skipped too. A failing hard stage ends the run.
type stage struct {
	name     string
	title    string
	requires []string
	hard     bool
	enabled  bool
	run      stageFunc
}

func (s *Seeder) pipeline() []stage {
	return []stage{
		{name: StageClear, title: "Clearing database", enabled: s.opts.Clear, run: s.clear},
		{name: StageAccounts, title: "Creating accounts", hard: true, enabled: true, run: s.ensureAccounts},
		{name: StageAdminRole, title: "Setting admin role", requires: []string{StageAccounts},
			enabled: s.data.AdminEmail != "", run: s.promoteAdmin},
		{name: StageCatalog, title: "Creating catalog", enabled: true, run: s.ensureCatalog},
		{name: StagePlayers, title: "Creating game players", requires: []string{StageAccounts},
			enabled: true, run: s.ensurePlayers},
		{name: StageCoffeemons, title: "Distributing coffeemons", requires: []string{StagePlayers, StageCatalog},
			enabled: true, run: s.distributeCoffeemons},
		{name: StageOrders, title: "Creating sample orders", requires: []string{StageAccounts, StageCatalog},
			enabled: s.opts.SampleOrders, run: s.createOrders},
	}
}

// checkPipeline rejects duplicate stage names and requirements on stages
// that are not declared earlier.
func checkPipeline(stages []stage) error {
	declared := make(map[string]bool, len(stages))
	for _, st := range stages {
		if declared[st.name] {
			return fmt.Errorf("%w: stage %q declared twice", ErrInvalidPipeline, st.name)
		}
		for _, req := range st.requires {
			if !declared[req] {
				return fmt.Errorf("%w: stage %q requires %q, which is not declared before it", ErrInvalidPipeline, st.name, req)
			}
		}
		declared[st.name] = true
	}
	return nil
}
