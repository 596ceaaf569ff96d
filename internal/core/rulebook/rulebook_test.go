package rulebook

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"clan-points-tracker/internal/core/scoring"
	"clan-points-tracker/internal/core/tiers"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	rb, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rb, Default()) {
		t.Error("expected built-in defaults")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading rulebook") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := `
scoring:
  first_99: 80
  bosses:
    - boss: zulrah
      per_kills: 50
      points: 10
tiers:
  ranks:
    - {id: member, tag: Member, min: 0}
    - {id: veteran, tag: Veteran, min: 500}
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	rb, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rb.Scoring.First99 != 80 {
		t.Errorf("expected first_99 override, got %d", rb.Scoring.First99)
	}
	if rb.Scoring.Extra99 != scoring.DefaultRules().Extra99 {
		t.Errorf("expected extra_99 to keep its default, got %d", rb.Scoring.Extra99)
	}
	if len(rb.Scoring.Bosses) != 1 || rb.Scoring.Bosses[0].PerKills != 50 {
		t.Errorf("expected boss list to be replaced, got %+v", rb.Scoring.Bosses)
	}
	if len(rb.Tiers.Ranks) != 2 || rb.Tiers.Ranks[1].Tag != "Veteran" {
		t.Errorf("expected custom ranks, got %+v", rb.Tiers.Ranks)
	}
	if !reflect.DeepEqual(rb.Tiers.Donators, tiers.DefaultTables().Donators) {
		t.Errorf("expected default donator tiers, got %+v", rb.Tiers.Donators)
	}
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("CLAN_FIRST_KILL", "15")

	rb, err := Parse([]byte("scoring:\n  first_kill: ${CLAN_FIRST_KILL}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rb.Scoring.FirstKill != 15 {
		t.Errorf("expected first_kill 15, got %d", rb.Scoring.FirstKill)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"malformed yaml", "scoring: [", "parsing rulebook"},
		{"bad scoring rules", "scoring:\n  bosses:\n    - {boss: mimic, per_kills: 1, points: 1}\n", `scoring: bosses: unknown boss "mimic"`},
		{"bad tier tables", "tiers:\n  ranks: []\n", "tiers: ranks: at least one tier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
