package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/bizsim/internal/econ"
)

func loadTestBusinesses(t *testing.T) {
	t.Helper()
	err := Load([]econ.BusinessConfig{
		{ID: "lemonade", Name: "Lemonade Stand", BasePrice: 5},
		{ID: "coffee_shop", Name: "Coffee Shop", BasePrice: 80},
		{ID: "tech_startup", Name: "Tech Startup", BasePrice: 500},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	t.Cleanup(Reset)
}

func TestListSorted(t *testing.T) {
	loadTestBusinesses(t)

	got := List()
	want := []string{"coffee_shop", "lemonade", "tech_startup"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d entries, expected %d", len(got), len(want))
	}
	for i, info := range got {
		if info.ID != want[i] {
			t.Errorf("List()[%d] = %q, expected %q", i, info.ID, want[i])
		}
	}
	if got[1].Title != "Lemonade Stand" {
		t.Errorf("title = %q", got[1].Title)
	}
}

func TestLookup(t *testing.T) {
	loadTestBusinesses(t)

	cfg, err := Lookup("lemonade")
	if err != nil {
		t.Fatalf("Lookup(lemonade) error: %v", err)
	}
	if cfg.LifetimePeriods != econ.DefaultLifetimePeriods {
		t.Errorf("defaults not applied, lifetime = %d", cfg.LifetimePeriods)
	}
	if !Exists("coffee_shop") || Exists("bakery") {
		t.Error("Exists() mismatch")
	}
}

func TestLookupSuggestion(t *testing.T) {
	loadTestBusinesses(t)

	tests := []struct {
		input   string
		suggest string
	}{
		{"lemonaid", "lemonade"},
		{"coffee", "coffee_shop"},
		{"tech_startp", "tech_startup"},
		{"bakery", ""},
	}
	for _, tt := range tests {
		_, err := Lookup(tt.input)
		if !errors.Is(err, ErrUnknownBusiness) {
			t.Errorf("Lookup(%q) error = %v, expected ErrUnknownBusiness", tt.input, err)
			continue
		}
		if got := Suggest(tt.input); got != tt.suggest {
			t.Errorf("Suggest(%q) = %q, expected %q", tt.input, got, tt.suggest)
		}
		if tt.suggest != "" && !strings.Contains(err.Error(), tt.suggest) {
			t.Errorf("Lookup(%q) error %q lacks suggestion", tt.input, err)
		}
	}
}

func TestLoadRejectsDuplicates(t *testing.T) {
	t.Cleanup(Reset)
	err := Load([]econ.BusinessConfig{{ID: "a"}, {ID: "a"}})
	if err == nil {
		t.Error("expected error for duplicate ids")
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	Register(econ.BusinessConfig{ID: "kiosk"})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate Register")
		}
	}()
	Register(econ.BusinessConfig{ID: "kiosk"})
}
