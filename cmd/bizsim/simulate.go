package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/game"
	"github.com/vovakirdan/bizsim/internal/platform/tui"
	"github.com/vovakirdan/bizsim/internal/storage"
)

var (
	flagPeriods    int
	flagPrice      float64
	flagMarketing  float64
	flagStockEvery int
	flagJSON       bool
	flagSaveSlot   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <business>",
	Short: "Run a fixed plan without the UI",
	Long: `Runs a business for a number of periods with the same decisions every
period and prints the books. Useful for balancing a custom catalog.

The run stops early when the business goes bankrupt.

Examples:
  bizsim simulate lemonade
  bizsim simulate coffee_shop --periods 20 --price 4.5 --marketing 200
  bizsim simulate tech_startup --stock-every 3 --seed 42 --json
  bizsim simulate lemonade --periods 5 --save practice`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagPeriods, "periods", 12, "Number of periods to simulate")
	simulateCmd.Flags().Float64Var(&flagPrice, "price", 0, "Selling price (0 = business default)")
	simulateCmd.Flags().Float64Var(&flagMarketing, "marketing", 0, "Marketing spend each period")
	simulateCmd.Flags().IntVar(&flagStockEvery, "stock-every", 0, "Buy one inventory batch every N periods (0 = never)")
	simulateCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the run as JSON")
	simulateCmd.Flags().StringVar(&flagSaveSlot, "save", "", "Save the final state to this slot")
}

// simPeriod is one row of a headless run.
type simPeriod struct {
	Period    int      `json:"period"`
	Customers int      `json:"customers"`
	Revenue   float64  `json:"revenue"`
	Profit    float64  `json:"net_profit"`
	Cash      float64  `json:"cash"`
	Events    []string `json:"events,omitempty"`
	Missions  []string `json:"missions,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
}

// simReport is the full headless run.
type simReport struct {
	Business  string      `json:"business"`
	Profile   string      `json:"profile"`
	Seed      int64       `json:"seed"`
	Periods   []simPeriod `json:"periods"`
	Score     int         `json:"score"`
	Outcome   string      `json:"outcome"`
	Missions  string      `json:"missions"`
	FinalCash float64     `json:"final_cash"`
}

func runSimulate(_ *cobra.Command, args []string) error {
	businessID := args[0]
	if err := resolveBusiness(businessID); err != nil {
		return err
	}
	profileID, err := resolveProfile()
	if err != nil {
		return err
	}
	if flagPeriods <= 0 {
		return fmt.Errorf("--periods must be positive, got %d", flagPeriods)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := game.FromCatalog(catalog, businessID, profileID, seed)
	if err != nil {
		return err
	}
	if flagPrice > 0 {
		if err := g.SetPrice(flagPrice); err != nil {
			return err
		}
	}

	report := simReport{
		Business: businessID,
		Profile:  g.Profile().ID,
		Seed:     seed,
	}

	for i := 0; i < flagPeriods && !g.Over(); i++ {
		row := simPeriod{}

		// Decisions that cannot be afforded are skipped, not fatal.
		if flagStockEvery > 0 && i%flagStockEvery == 0 {
			if err := g.Buy(econ.ActionInventory); err != nil {
				row.Skipped = append(row.Skipped, string(econ.ActionInventory))
				logger.Debug("skipped stock purchase", "period", i+1, "error", err)
			}
		}
		if flagMarketing > 0 {
			if err := g.Apply(econ.ActionMarketing, flagMarketing); err != nil {
				row.Skipped = append(row.Skipped, string(econ.ActionMarketing))
				logger.Debug("skipped marketing", "period", i+1, "error", err)
			}
		}

		out, err := g.Advance()
		if err != nil {
			return err
		}
		row.Period = out.Result.Period
		row.Customers = out.Result.Customers
		row.Revenue = out.Result.Revenue
		row.Profit = out.Result.NetProfit
		row.Cash = g.State().Cash
		row.Events = out.Result.Events
		row.Missions = out.Missions
		report.Periods = append(report.Periods, row)
	}

	st := g.State()
	report.Score = g.Score()
	report.FinalCash = st.Cash
	report.Outcome = simOutcome(st)
	done, total := 0, 0
	for _, m := range g.Missions() {
		total++
		if m.Completed {
			done++
		}
	}
	report.Missions = fmt.Sprintf("%d/%d", done, total)

	if flagSaveSlot != "" {
		if err := saveSimulation(flagSaveSlot, g); err != nil {
			return err
		}
	}

	if flagJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	printReport(report)
	if flagSaveSlot != "" {
		fmt.Printf("Saved to slot %q. Resume with 'bizsim play %s --slot %s'.\n", flagSaveSlot, businessID, flagSaveSlot)
	}
	return nil
}

func simOutcome(st econ.State) string {
	switch {
	case st.GameOver:
		return "bankrupt"
	case st.Victory:
		return "victory"
	}
	return "running"
}

func saveSimulation(slot string, g *game.Game) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if g.Over() {
		return fmt.Errorf("business went bankrupt, nothing to save")
	}
	return store.SaveGame(slot, g.Encode())
}

func printReport(r simReport) {
	t := newTable("Period", "Customers", "Revenue", "Profit", "Cash", "Events")
	for _, p := range r.Periods {
		events := strings.Join(p.Events, ", ")
		if len(p.Skipped) > 0 {
			if events != "" {
				events += "; "
			}
			events += "skipped " + strings.Join(p.Skipped, ", ")
		}
		t.Row(
			strconv.Itoa(p.Period),
			strconv.Itoa(p.Customers),
			tui.Money(p.Revenue),
			tui.Money(p.Profit),
			tui.Money(p.Cash),
			events,
		)
	}
	fmt.Printf("%s on %s (seed %d)\n", r.Business, r.Profile, r.Seed)
	fmt.Println(t.Render())
	fmt.Printf("Outcome: %s   Score: %d   Cash: %s   Missions: %s\n",
		r.Outcome, r.Score, tui.Money(r.FinalCash), r.Missions)
}
