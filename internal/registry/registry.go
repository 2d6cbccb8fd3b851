// Package registry provides a global registry of business types.
// The catalog is loaded once at startup, allowing the CLI, the TUI and the
// SSH server to resolve business ids without passing the catalog around.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/vovakirdan/bizsim/internal/econ"
)

// ErrUnknownBusiness is returned by Lookup for unregistered ids.
var ErrUnknownBusiness = errors.New("registry: unknown business")

// BusinessInfo contains metadata about a registered business.
type BusinessInfo struct {
	ID    string
	Title string
}

var (
	businesses = make(map[string]econ.BusinessConfig)
	mu         sync.RWMutex
)

// Register adds a business type to the registry.
// Panics if a business with the same ID is already registered.
func Register(cfg econ.BusinessConfig) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := businesses[cfg.ID]; exists {
		panic(fmt.Sprintf("registry: business %q already registered", cfg.ID))
	}
	businesses[cfg.ID] = cfg.WithDefaults()
}

// Load replaces the registry contents with the given businesses.
func Load(cfgs []econ.BusinessConfig) error {
	next := make(map[string]econ.BusinessConfig, len(cfgs))
	for _, cfg := range cfgs {
		if cfg.ID == "" {
			return errors.New("registry: business without id")
		}
		if _, exists := next[cfg.ID]; exists {
			return fmt.Errorf("registry: business %q listed twice", cfg.ID)
		}
		next[cfg.ID] = cfg.WithDefaults()
	}

	mu.Lock()
	businesses = next
	mu.Unlock()
	return nil
}

// Reset empties the registry.
func Reset() {
	mu.Lock()
	businesses = make(map[string]econ.BusinessConfig)
	mu.Unlock()
}

// List returns information about all registered businesses, sorted by ID.
func List() []BusinessInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BusinessInfo, 0, len(businesses))
	for id, cfg := range businesses {
		result = append(result, BusinessInfo{
			ID:    id,
			Title: cfg.Name,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the configuration of a business type.
// Unknown ids produce ErrUnknownBusiness with a suggestion when one is close.
func Lookup(id string) (econ.BusinessConfig, error) {
	mu.RLock()
	cfg, ok := businesses[id]
	mu.RUnlock()

	if ok {
		return cfg, nil
	}
	if s := Suggest(id); s != "" {
		return econ.BusinessConfig{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownBusiness, id, s)
	}
	return econ.BusinessConfig{}, fmt.Errorf("%w %q", ErrUnknownBusiness, id)
}

// Exists checks if a business with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := businesses[id]
	return ok
}

// Suggest returns the registered id closest to input, or "" when nothing
// is within edit distance. Prefix matches win over fuzzy ones.
func Suggest(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(businesses))
	for id := range businesses {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			return id
		}
	}

	best, bestDist := "", -1
	for _, id := range ids {
		dist := levenshtein.ComputeDistance(input, id)
		if dist > distanceLimit(len(id)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = id, dist
		}
	}
	return best
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
