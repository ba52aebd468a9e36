package batch

import (
	"context"
	"testing"

	"pwd-analyzer/pkg/hibp"
	"pwd-analyzer/pkg/strength"
)

type fakeChecker struct{}

func (fakeChecker) Check(_ context.Context, password string) (*hibp.Result, error) {
	if password == "password" {
		return &hibp.Result{Compromised: true, Count: 3861493, Risk: hibp.RiskVeryHigh}, nil
	}
	return &hibp.Result{Risk: hibp.RiskSafe}, nil
}

func TestRunOrdersByDescendingScore(t *testing.T) {
	runner := NewRunner(strength.NewAnalyzer(nil), nil, Config{Workers: 4})

	passwords := []string{"abc", "zK#9!mQ@4xR&7pL$", "", "password", "Tr0ub4dor&3"}
	items, err := runner.Run(context.Background(), passwords)
	if err != nil {
		t.Fatalf("Run should not fail: %s", err)
	}

	if len(items) != 4 {
		t.Fatalf("Empty lines should be skipped, have %d items", len(items))
	}
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.Analysis.Score < cur.Analysis.Score {
			t.Errorf("Items should be ordered by descending score: %d before %d", prev.Analysis.Score, cur.Analysis.Score)
		}
		if prev.Analysis.Score == cur.Analysis.Score && prev.Index > cur.Index {
			t.Errorf("Equal scores should keep input order: index %d before %d", prev.Index, cur.Index)
		}
	}
	if items[0].Analysis.Score != 100 {
		t.Errorf("Strongest password should lead, have score %d", items[0].Analysis.Score)
	}
}

func TestRunPasswordRetention(t *testing.T) {
	analyzer := strength.NewAnalyzer(nil)

	items, err := NewRunner(analyzer, nil, Config{Workers: 2}).Run(context.Background(), []string{"password"})
	if err != nil {
		t.Fatalf("Run should not fail: %s", err)
	}
	if items[0].Password != "" {
		t.Errorf("Password should not be retained by default")
	}
	if items[0].Length != 8 {
		t.Errorf("Length should still be recorded, have %d", items[0].Length)
	}

	items, err = NewRunner(analyzer, nil, Config{Workers: 2, KeepPasswords: true}).Run(context.Background(), []string{"password"})
	if err != nil {
		t.Fatalf("Run should not fail: %s", err)
	}
	if items[0].Password != "password" {
		t.Errorf("Password should be retained when opted in, have %q", items[0].Password)
	}
}

func TestRunWithBreachChecks(t *testing.T) {
	runner := NewRunner(strength.NewAnalyzer(nil), fakeChecker{}, Config{Workers: 2, CheckBreaches: true})

	items, err := runner.Run(context.Background(), []string{"password", "zK#9!mQ@4xR&7pL$"})
	if err != nil {
		t.Fatalf("Run should not fail: %s", err)
	}

	for _, item := range items {
		if item.Breach == nil {
			t.Fatalf("Every item should carry a breach result, index %d has none", item.Index)
		}
	}
	for _, item := range items {
		compromised := item.Index == 0
		if item.Breach.Compromised != compromised {
			t.Errorf("Item %d compromised: %v, want: %v", item.Index, item.Breach.Compromised, compromised)
		}
	}
}

func TestRunWithoutBreachChecks(t *testing.T) {
	runner := NewRunner(strength.NewAnalyzer(nil), fakeChecker{}, Config{Workers: 2})

	items, err := runner.Run(context.Background(), []string{"password"})
	if err != nil {
		t.Fatalf("Run should not fail: %s", err)
	}
	if items[0].Breach != nil {
		t.Errorf("Breach checks were not enabled, have %+v", items[0].Breach)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(strength.NewAnalyzer(nil), nil, Config{Workers: 2})
	items, err := runner.Run(ctx, []string{"password", "abc"})
	if err != context.Canceled {
		t.Errorf("Run should report the context error, have %v", err)
	}
	if len(items) != 0 {
		t.Errorf("No work should be scheduled after cancellation, have %d items", len(items))
	}
}

func TestRunEmptyInput(t *testing.T) {
	runner := NewRunner(strength.NewAnalyzer(nil), nil, Config{})

	items, err := runner.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run should not fail: %s", err)
	}
	if len(items) != 0 {
		t.Errorf("Should have no items, have %d", len(items))
	}
}
