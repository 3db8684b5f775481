// Package assign maps addresses to vehicles through the priority-ordered
// area rules. Everything here is a pure function of its inputs.
package assign

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

// AutoAssign returns the vehicle of the first rule, in ascending
// priority order, whose area pattern is contained in the address.
// Matching is plain substring containment, case-sensitive as typed.
// Returns nil when no rule matches or no rules exist.
func AutoAssign(address string, rules []model.AreaRule) *uuid.UUID {
	if address == "" || len(rules) == 0 {
		return nil
	}

	sorted := make([]model.AreaRule, len(rules))
	copy(sorted, rules)
	// Stable sort keeps the original order among equal priorities.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	for _, rule := range sorted {
		if strings.Contains(address, rule.AreaPattern) {
			id := rule.VehicleID
			return &id
		}
	}
	return nil
}

// Fallback is one step of a vehicle-selection chain; nil means the step
// has no answer.
type Fallback func() *uuid.UUID

// Resolve tries the fallbacks in order and stops at the first non-nil
// result.
func Resolve(fallbacks ...Fallback) *uuid.UUID {
	for _, fn := range fallbacks {
		if id := fn(); id != nil {
			return id
		}
	}
	return nil
}
