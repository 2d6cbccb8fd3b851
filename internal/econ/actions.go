package econ

import "fmt"

// ActionKind identifies a spending decision.
type ActionKind string

const (
	ActionMarketing ActionKind = "marketing"
	ActionInventory ActionKind = "inventory"
	ActionEmployee  ActionKind = "employee"
	ActionRD        ActionKind = "rd"
)

// ActionKinds lists every action in display order.
func ActionKinds() []ActionKind {
	return []ActionKind{ActionMarketing, ActionInventory, ActionEmployee, ActionRD}
}

// ParseActionKind accepts the canonical names plus a few aliases.
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "marketing", "market", "ads":
		return ActionMarketing, nil
	case "inventory", "stock":
		return ActionInventory, nil
	case "employee", "hire", "staff":
		return ActionEmployee, nil
	case "rd", "r&d", "research":
		return ActionRD, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// SetPrice changes the selling price. Non-positive prices, and prices above
// the business cap when one is set, are rejected with the state unchanged.
func SetPrice(cfg BusinessConfig, s State, price float64) (State, error) {
	if price <= 0 || (cfg.MaxPrice > 0 && price > cfg.MaxPrice) {
		return s, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	s.Price = price
	return s, nil
}

// ApplyAction pays amount from cash and applies the action's effect.
// Marketing accrues spend for the current period; inventory adds one batch;
// employee and rd add one each.
func ApplyAction(cfg BusinessConfig, s State, kind ActionKind, amount float64) (State, error) {
	if amount <= 0 {
		return s, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if s.Cash < amount {
		return s, fmt.Errorf("%w: have %.2f, need %.2f", ErrInsufficientCash, s.Cash, amount)
	}

	next := s
	switch kind {
	case ActionMarketing:
		next.MarketingSpend += amount
	case ActionInventory:
		next.InventoryUnits += cfg.WithDefaults().InventoryBatch
	case ActionEmployee:
		next.EmployeeCount++
	case ActionRD:
		next.RDLevel++
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	next.Cash -= amount
	return next, nil
}
