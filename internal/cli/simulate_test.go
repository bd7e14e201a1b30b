package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/albedo/internal/colour"
)

func TestParseDeficiencies(t *testing.T) {
	all, err := parseDeficiencies("all")
	if err != nil {
		t.Fatalf("parseDeficiencies(all) error = %v", err)
	}
	if len(all) != len(colour.Deficiencies) {
		t.Errorf("parseDeficiencies(all) returned %d types, want %d", len(all), len(colour.Deficiencies))
	}

	if got, err := parseDeficiencies(""); err != nil || len(got) != len(colour.Deficiencies) {
		t.Errorf("parseDeficiencies(\"\") = %v, %v, want all types", got, err)
	}

	one, err := parseDeficiencies(" Deuteranopia ")
	if err != nil {
		t.Fatalf("parseDeficiencies(Deuteranopia) error = %v", err)
	}
	if len(one) != 1 || one[0] != colour.Deuteranopia {
		t.Errorf("parseDeficiencies(Deuteranopia) = %v, want [deuteranopia]", one)
	}

	_, err = parseDeficiencies("monochromacy")
	if err == nil {
		t.Fatal("parseDeficiencies(monochromacy) expected error")
	}
	if !strings.Contains(err.Error(), "protanopia") {
		t.Errorf("error should list valid types, got %v", err)
	}
}
