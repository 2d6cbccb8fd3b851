package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bizsim/internal/platform/tui"
	"github.com/vovakirdan/bizsim/internal/session"
	"github.com/vovakirdan/bizsim/internal/storage"
)

var flagSlot string

var playCmd = &cobra.Command{
	Use:     "play [business]",
	Aliases: []string{"menu"},
	Short:   "Play interactively",
	Long: `Start the simulator UI. With a business id the game starts right away;
without one a menu lets you pick a business and a difficulty.

Progress is saved when you leave a game and resumed the next time you
play the same business with the same difficulty.

Controls:
  Space/N    - Advance one period
  P          - Set price
  M          - Spend on marketing
  I / E / R  - Buy stock, hire, invest in R&D
  Ctrl+S     - Save
  Esc/B      - Back to menu
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Beginner profile: revenue, costs and profit only
  normal - Intermediate profile: adds CAC and LTV
  hard   - Advanced profile: every metric, burn rate and runway
  fixed  - Every metric, event pressure never rises

Examples:
  bizsim play
  bizsim play lemonade
  bizsim play tech_startup --difficulty hard
  bizsim play coffee_shop --slot weekend-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSlot, "slot", "", "Save slot (default: <user>/<business>)")
}

func runPlay(_ *cobra.Command, args []string) error {
	var businessID string
	if len(args) == 1 {
		businessID = args[0]
		if err := resolveBusiness(businessID); err != nil {
			return err
		}
	}
	profileID, err := resolveProfile()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	// The UI owns the terminal, so sessions log nowhere.
	manager := session.NewManager(catalog, session.DefaultConfig(), nil)
	if store != nil {
		manager.SetResultSaver(store)
	}

	err = tui.Run(tui.AppOptions{
		Manager:  manager,
		Store:    store,
		Player:   playerName(),
		Seed:     flagSeed,
		Width:    width,
		Height:   height,
		Business: businessID,
		Profile:  profileID,
		Slot:     flagSlot,
	})
	manager.Stop()
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// playerName is the local user's login, used to name saves and scores.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
