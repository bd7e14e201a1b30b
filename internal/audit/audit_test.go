package audit

import (
	"context"
	"strings"
	"testing"

	"github.com/jmylchreest/albedo/internal/scan"
)

func pair(fg, bg string, role scan.Role) scan.Pair {
	return scan.Pair{
		Scanner:    "test",
		File:       "styles.css",
		Line:       1,
		Role:       role,
		Foreground: fg,
		Background: bg,
	}
}

func TestRunPreservesOrder(t *testing.T) {
	pairs := []scan.Pair{
		pair("#000000", "#ffffff", scan.RoleText),
		pair("#ffffff", "#000000", scan.RoleText),
		pair("#777777", "#888888", scan.RoleText),
		pair("#e53e3e", "#38a169", scan.RoleText),
		pair("#333333", "#ffffff", scan.RoleText),
	}

	result, err := Run(context.Background(), pairs, Options{Workers: 4})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(result.Items) != len(pairs) {
		t.Fatalf("len(Items) = %d, want %d", len(result.Items), len(pairs))
	}
	for i, it := range result.Items {
		if it.Pair != pairs[i] {
			t.Errorf("Items[%d].Pair = %+v, want %+v", i, it.Pair, pairs[i])
		}
		if it.Result == nil {
			t.Errorf("Items[%d].Result = nil, want analysis", i)
		}
	}
}

func TestRunSummaryBuckets(t *testing.T) {
	pairs := []scan.Pair{
		pair("#000000", "#ffffff", scan.RoleText), // 21.0, passes AAA
		pair("#666666", "#ffffff", scan.RoleText), // 5.74, AA only
		pair("#777777", "#888888", scan.RoleText), // 1.26, fails AA
		pair("notacolor", "#ffffff", scan.RoleText),
	}

	result, err := Run(context.Background(), pairs, Options{})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	want := Summary{Total: 4, Errors: 1, FailAA: 1, AAOnly: 1, PassAAA: 1}
	if result.Summary != want {
		t.Errorf("Summary = %+v, want %+v", result.Summary, want)
	}
}

func TestRunErrorItems(t *testing.T) {
	pairs := []scan.Pair{
		pair("notacolor", "#ffffff", scan.RoleText),
	}

	result, err := Run(context.Background(), pairs, Options{})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	it := result.Items[0]
	if it.Result != nil {
		t.Fatal("error item has a Result")
	}
	if !strings.Contains(it.Error, "invalid color") {
		t.Errorf("Error = %q, want invalid colour message", it.Error)
	}
	if it.TextInput != "notacolor" || it.BgInput != "#ffffff" {
		t.Errorf("inputs = %q/%q, want notacolor/#ffffff", it.TextInput, it.BgInput)
	}
}

func TestRunRoleMinimums(t *testing.T) {
	tests := []struct {
		name       string
		role       scan.Role
		wantMinSet bool
	}{
		{"text has no extra minimum", scan.RoleText, false},
		{"border judged against 3.0", scan.RoleBorder, true},
		{"graphic judged against 3.0", scan.RoleGraphic, true},
		{"stroke judged against 3.0", scan.RoleStroke, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs := []scan.Pair{pair("#888888", "#ffffff", tt.role)} // 3.55
			result, err := Run(context.Background(), pairs, Options{})
			if err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}

			r := result.Items[0].Result
			if !tt.wantMinSet {
				if r.PassesRequired != nil {
					t.Error("PassesRequired set for text role")
				}
				return
			}
			if r.RequiredRatio != 3.0 {
				t.Errorf("RequiredRatio = %v, want 3.0", r.RequiredRatio)
			}
			if r.PassesRequired == nil || !*r.PassesRequired {
				t.Errorf("PassesRequired = %v, want true", r.PassesRequired)
			}
		})
	}
}

func TestRunCVDCounts(t *testing.T) {
	pairs := []scan.Pair{
		pair("#e53e3e", "#38a169", scan.RoleText), // three high-risk simulations
	}

	result, err := Run(context.Background(), pairs, Options{IncludeCVD: true})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if got := len(result.Items[0].Result.CVD); got != 3 {
		t.Fatalf("len(CVD) = %d, want 3", got)
	}
	if result.Summary.CVDHigh != 3 {
		t.Errorf("CVDHigh = %d, want 3", result.Summary.CVDHigh)
	}
	if result.Summary.CVDCritical != 0 || result.Summary.CVDWarning != 0 {
		t.Errorf("unexpected CVD buckets: %+v", result.Summary)
	}
}

func TestRunWithoutCVDHasNoCVD(t *testing.T) {
	pairs := []scan.Pair{pair("#e53e3e", "#38a169", scan.RoleText)}

	result, err := Run(context.Background(), pairs, Options{})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if result.Items[0].Result.CVD != nil {
		t.Error("CVD analysis present without IncludeCVD")
	}
	if result.Summary.CVDHigh != 0 {
		t.Errorf("CVDHigh = %d, want 0", result.Summary.CVDHigh)
	}
}

func TestRunEmpty(t *testing.T) {
	result, err := Run(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(result.Items))
	}
	if result.Summary.Total != 0 {
		t.Errorf("Total = %d, want 0", result.Summary.Total)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pairs := []scan.Pair{pair("#000000", "#ffffff", scan.RoleText)}
	if _, err := Run(ctx, pairs, Options{}); err == nil {
		t.Fatal("Run() with cancelled context returned nil error")
	}
}
