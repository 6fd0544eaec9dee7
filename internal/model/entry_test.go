package model

import (
	"testing"
)

func TestNewEntry_VarianceComputedOnce(t *testing.T) {
	e := NewEntry("alice", 11000, 10000)
	if e.Variance != 1000 {
		t.Errorf("expected variance 1000, got %v", e.Variance)
	}
	if e.VariancePct != 10 {
		t.Errorf("expected +10%%, got %v", e.VariancePct)
	}
	if e.ID == "" {
		t.Error("expected generated id")
	}
	if e.Owner != "alice" {
		t.Errorf("unexpected owner %q", e.Owner)
	}
}

func TestNewEntry_ZeroTargetAvoidsDivision(t *testing.T) {
	e := NewEntry("alice", 500, 0)
	if e.Variance != 500 {
		t.Errorf("expected variance 500, got %v", e.Variance)
	}
	if e.VariancePct != 0 {
		t.Errorf("expected pct 0 for zero target, got %v", e.VariancePct)
	}
}

func TestRevalue_KeepsOriginalTarget(t *testing.T) {
	e := NewEntry("alice", 11000, 10000)
	e.Revalue(9000)
	if e.TargetValue != 10000 {
		t.Errorf("target must not change on revalue, got %v", e.TargetValue)
	}
	if e.Variance != -1000 {
		t.Errorf("expected variance -1000, got %v", e.Variance)
	}
	if e.VariancePct != -10 {
		t.Errorf("expected -10%%, got %v", e.VariancePct)
	}
}

func TestPatch_ApplyAndClear(t *testing.T) {
	in := DefaultInputs()
	age := 30
	capital := 2500.0
	Patch{StartingCapital: &capital, CurrentAge: &age}.Apply(&in)
	if in.StartingCapital != 2500 {
		t.Errorf("expected 2500, got %v", in.StartingCapital)
	}
	if in.CurrentAge == nil || *in.CurrentAge != 30 {
		t.Error("expected current age set to 30")
	}

	Patch{ClearCurrentAge: true}.Apply(&in)
	if in.CurrentAge != nil {
		t.Error("expected current age cleared")
	}
}

func TestPatch_ZeroPatchChangesNothing(t *testing.T) {
	in := DefaultInputs()
	before := in
	Patch{}.Apply(&in)
	if in != before {
		t.Error("zero patch must not mutate inputs")
	}
	if !(Patch{}).IsZero() {
		t.Error("zero patch must report IsZero")
	}
}
