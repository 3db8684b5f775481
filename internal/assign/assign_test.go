package assign

import (
	"testing"

	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

func rule(pattern string, priority int, vehicle uuid.UUID) model.AreaRule {
	return model.AreaRule{ID: uuid.New(), AreaPattern: pattern, VehicleID: vehicle, Priority: priority}
}

func TestAutoAssignPicksLowestPriorityMatch(t *testing.T) {
	v1, v2 := uuid.New(), uuid.New()
	rules := []model.AreaRule{
		rule("甲子園", 2, v1),
		rule("西宮市", 1, v2),
	}

	got := AutoAssign("兵庫県西宮市甲子園町1-2-3", rules)
	if got == nil || *got != v2 {
		t.Errorf("AutoAssign = %v, want %v", got, v2)
	}
}

func TestAutoAssignSkipsNonMatchingHigherPriority(t *testing.T) {
	v1, v2 := uuid.New(), uuid.New()
	rules := []model.AreaRule{
		rule("尼崎市", 1, v1),
		rule("西宮市", 2, v2),
	}

	got := AutoAssign("兵庫県西宮市今津町7-8", rules)
	if got == nil || *got != v2 {
		t.Errorf("AutoAssign = %v, want %v", got, v2)
	}
}

func TestAutoAssignStableAmongEqualPriorities(t *testing.T) {
	v1, v2 := uuid.New(), uuid.New()
	rules := []model.AreaRule{
		rule("西宮市", 1, v1),
		rule("西宮", 1, v2),
	}

	got := AutoAssign("西宮市松原町", rules)
	if got == nil || *got != v1 {
		t.Errorf("AutoAssign = %v, want first listed rule's vehicle %v", got, v1)
	}
}

func TestAutoAssignNoMatch(t *testing.T) {
	if got := AutoAssign("大阪市北区", []model.AreaRule{rule("西宮市", 1, uuid.New())}); got != nil {
		t.Errorf("AutoAssign = %v, want nil", got)
	}
}

func TestAutoAssignEmptyInputs(t *testing.T) {
	if got := AutoAssign("", []model.AreaRule{rule("西宮市", 1, uuid.New())}); got != nil {
		t.Errorf("empty address: got %v", got)
	}
	if got := AutoAssign("西宮市", nil); got != nil {
		t.Errorf("no rules: got %v", got)
	}
}

func TestAutoAssignDoesNotMutateInput(t *testing.T) {
	v := uuid.New()
	rules := []model.AreaRule{
		rule("b", 2, v),
		rule("a", 1, v),
	}
	AutoAssign("ab", rules)
	if rules[0].AreaPattern != "b" || rules[1].AreaPattern != "a" {
		t.Error("input slice was reordered")
	}
}

func TestResolveStopsAtFirstHit(t *testing.T) {
	v1, v2 := uuid.New(), uuid.New()
	secondCalled := false

	got := Resolve(
		func() *uuid.UUID { return nil },
		func() *uuid.UUID { return &v1 },
		func() *uuid.UUID { secondCalled = true; return &v2 },
	)
	if got == nil || *got != v1 {
		t.Errorf("Resolve = %v, want %v", got, v1)
	}
	if secondCalled {
		t.Error("later fallback ran after a hit")
	}
}

func TestResolveAllEmpty(t *testing.T) {
	got := Resolve(
		func() *uuid.UUID { return nil },
		func() *uuid.UUID { return nil },
	)
	if got != nil {
		t.Errorf("Resolve = %v, want nil", got)
	}
}
