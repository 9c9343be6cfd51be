package seed

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/kasuganosora/coffeemon-seed/model"
)

// Counter tallies the outcome of one kind of unit.
type Counter struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Rejected int `json:"rejected,omitempty"`
	Skipped  int `json:"skipped,omitempty"`
}

// Summary is the outcome of a run. It is also what gets stored as the last
// run record.
type Summary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Cleared       map[string]int64 `json:"cleared,omitempty"`
	MissingTables []string         `json:"missing_tables,omitempty"`

	Accounts      Counter `json:"accounts"`
	AdminPromoted bool    `json:"admin_promoted"`
	Products      Counter `json:"products"`
	Moves         Counter `json:"moves"`
	Species       Counter `json:"species"`
	Players       Counter `json:"players"`
	Coffeemons    Counter `json:"coffeemons"`
	EquippedMoves int     `json:"equipped_moves"`
	DroppedMoves  int     `json:"dropped_moves,omitempty"`
	Orders        Counter `json:"orders"`
	OrderItems    int     `json:"order_items"`

	FailedStages  []string `json:"failed_stages,omitempty"`
	SkippedStages []string `json:"skipped_stages,omitempty"`

	credentials []AccountSeed
	assignments []Assignment
	orders      []OrderSeed
}

func newSummary(runID string, now time.Time, data Dataset) *Summary {
	return &Summary{
		RunID:       runID,
		StartedAt:   now,
		credentials: data.Accounts,
		assignments: data.Assignments,
		orders:      data.Orders,
	}
}

// OK reports whether every enabled stage completed.
func (s *Summary) OK() bool {
	return len(s.FailedStages) == 0 && len(s.SkippedStages) == 0
}

// Print writes the closing report. Demo credentials are only known to the
// Summary returned by Run, not to one decoded from the last run record.
func (s *Summary) Print(w io.Writer) {
	rule := strings.Repeat("=", 50)
	title := "SEED COMPLETED SUCCESSFULLY!"
	if !s.OK() {
		title = "SEED FINISHED WITH ERRORS"
	}
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n", rule, title, rule)
	fmt.Fprintf(w, "run %s (%s)\n", s.RunID, s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))

	if len(s.Cleared) > 0 || len(s.MissingTables) > 0 {
		fmt.Fprintln(w, "\nCLEARED:")
		tables := make([]string, 0, len(s.Cleared))
		for t := range s.Cleared {
			tables = append(tables, t)
		}
		sort.Strings(tables)
		for _, t := range tables {
			fmt.Fprintf(w, "  - %-24s %d rows\n", t, s.Cleared[t])
		}
		for _, t := range s.MissingTables {
			fmt.Fprintf(w, "  - %-24s (missing, skipped)\n", t)
		}
	}

	fmt.Fprintln(w, "\nRESULT:")
	line := func(name string, c Counter) {
		fmt.Fprintf(w, "  - %-12s %d created, %d existing", name, c.Created, c.Existing)
		if c.Rejected > 0 {
			fmt.Fprintf(w, ", %d rejected", c.Rejected)
		}
		if c.Skipped > 0 {
			fmt.Fprintf(w, ", %d skipped", c.Skipped)
		}
		fmt.Fprintln(w)
	}
	line("Accounts", s.Accounts)
	line("Products", s.Products)
	line("Moves", s.Moves)
	line("Species", s.Species)
	line("Players", s.Players)
	line("Coffeemons", s.Coffeemons)
	line("Orders", s.Orders)
	fmt.Fprintf(w, "  - %-12s %d equipped", "Moves set", s.EquippedMoves)
	if s.DroppedMoves > 0 {
		fmt.Fprintf(w, ", %d start moves beyond slot %d dropped", s.DroppedMoves, model.MaxMoveSlots)
	}
	fmt.Fprintln(w)
	if s.AdminPromoted {
		fmt.Fprintln(w, "  - Admin role granted")
	}

	if len(s.FailedStages) > 0 {
		fmt.Fprintf(w, "\nFAILED STAGES: %s\n", strings.Join(s.FailedStages, ", "))
	}
	if len(s.SkippedStages) > 0 {
		fmt.Fprintf(w, "SKIPPED STAGES: %s\n", strings.Join(s.SkippedStages, ", "))
	}

	if len(s.credentials) > 0 {
		fmt.Fprintln(w, "\nCREDENTIALS:")
		for _, a := range s.credentials {
			fmt.Fprintf(w, "  %s: %s / %s%s\n", a.Username, a.Email, a.Password, s.extras(a.Email))
		}
	}
	fmt.Fprintln(w, rule)
}

func (s *Summary) extras(email string) string {
	var parts []string
	for _, a := range s.assignments {
		if a.Email == email && len(a.SpeciesIDs) > 0 {
			ids := make([]string, len(a.SpeciesIDs))
			for i, id := range a.SpeciesIDs {
				ids[i] = fmt.Sprint(id)
			}
			parts = append(parts, "Coffeemons: "+strings.Join(ids, ","))
		}
	}
	n := 0
	for _, o := range s.orders {
		if o.Email == email {
			n++
		}
	}
	if n > 0 && s.Orders.Created+s.Orders.Existing > 0 {
		noun := "orders"
		if n == 1 {
			noun = "order"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, noun))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " + ") + ")"
}
