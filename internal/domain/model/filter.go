package model

import "strings"

// OrderFilter narrows order listings. Zero value matches everything.
// Status and Query compose with logical AND.
type OrderFilter struct {
	OwnerID *int64
	Status  *Stage
	Query   string
}

// Match reports whether the order satisfies the filter. Storage backends
// implement the same semantics in SQL; this form serves in-memory stores
// and documents the contract.
func (f OrderFilter) Match(o Order) bool {
	if f.OwnerID != nil && o.OwnerID != *f.OwnerID {
		return false
	}
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.Query == "" {
		return true
	}
	needle := strings.ToLower(f.Query)
	for _, hay := range []string{o.ID, o.OrderNumber, o.Vehicle.Name} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// TransitionOutcome reports the result of one order inside a bulk transition.
type TransitionOutcome struct {
	OrderID string
	Order   *Order
	Err     error
}

// Failed reports whether the transition of this order was rejected.
func (r TransitionOutcome) Failed() bool {
	return r.Err != nil
}
