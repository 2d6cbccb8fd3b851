package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bizsim/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games",
	Long: `Lists every save slot, most recent first.

Examples:
  bizsim saves
  bizsim saves show alice/lemonade
  bizsim saves delete alice/lemonade`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

var savesShowCmd = &cobra.Command{
	Use:   "show <slot>",
	Short: "Print the stored keys of a save",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesShow,
}

var savesDeleteCmd = &cobra.Command{
	Use:     "delete <slot>",
	Aliases: []string{"rm"},
	Short:   "Delete a save",
	Args:    cobra.ExactArgs(1),
	RunE:    runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesShowCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

func runSaves(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	t := newTable("Slot", "Business", "Profile", "Period", "Saved")
	for _, s := range saves {
		t.Row(s.Slot, s.BusinessID, s.ProfileID, strconv.Itoa(s.Period), humanize.Time(s.UpdatedAt))
	}
	fmt.Println(t.Render())
	return nil
}

func runSavesShow(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.LoadGame(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no save in slot %q", args[0])
	}
	for _, key := range rec.Keys() {
		fmt.Printf("%s=%s\n", key, rec[key])
	}
	return nil
}

func runSavesDelete(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSave(args[0]); err != nil {
		return err
	}
	logger.Info("save deleted", "slot", args[0])
	return nil
}
