package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/albedo/internal/scan"
)

func writeFixture(t *testing.T, name, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return dir, path
}

func scanFixture(t *testing.T, name, content string) []scan.Pair {
	t.Helper()
	dir, path := writeFixture(t, name, content)
	pairs, err := New().Scan(context.Background(), scan.Options{Root: dir, Files: []string{path}})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	return pairs
}

func TestScanThemeModule(t *testing.T) {
	const source = `export const colors = {
  dark: {
    text: '#eeeeee',
    background: '#111111',
  },
  light: {
    text: '#222222',
    background: '#fafafa',
  },
};
`
	pairs := scanFixture(t, "theme.ts", source)
	want := []scan.Pair{
		{Scanner: "script", File: "theme.ts", Line: 3, Context: "dark.text", Role: scan.RoleText, Foreground: "#eeeeee", Background: "#111111"},
		{Scanner: "script", File: "theme.ts", Line: 7, Context: "light.text", Role: scan.RoleText, Foreground: "#222222", Background: "#fafafa"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("Scan() returned %d pairs, want %d: %+v", len(pairs), len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair[%d] = %+v, want %+v", i, pairs[i], want[i])
		}
	}
}

func TestScanOnColourKeys(t *testing.T) {
	const source = `const tokens = {
  button: {
    primary: '#2563eb',
    onPrimary: '#ffffff',
  },
};
`
	pairs := scanFixture(t, "tokens.ts", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	want := scan.Pair{
		Scanner:    "script",
		File:       "tokens.ts",
		Line:       4,
		Context:    "button.onPrimary",
		Role:       scan.RoleText,
		Foreground: "#ffffff",
		Background: "#2563eb",
	}
	if pairs[0] != want {
		t.Errorf("pair = %+v, want %+v", pairs[0], want)
	}
}

func TestScanDefaultBackground(t *testing.T) {
	const source = `const banner = {
  color: '#767676',
};
`
	pairs := scanFixture(t, "banner.js", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].Foreground != "#767676" || pairs[0].Background != "#ffffff" {
		t.Errorf("pair = %s on %s, want #767676 on #ffffff", pairs[0].Foreground, pairs[0].Background)
	}
	if pairs[0].Line != 2 || pairs[0].Context != "color" {
		t.Errorf("pair line/context = %d/%q, want 2/%q", pairs[0].Line, pairs[0].Context, "color")
	}
}

func TestScanDarkContextDefaultBackground(t *testing.T) {
	const source = `export const themes = {
  darkMode: {
    textColor: '#8b949e',
  },
};
`
	pairs := scanFixture(t, "themes.ts", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].Background != "#1a1a2e" {
		t.Errorf("background = %s, want #1a1a2e", pairs[0].Background)
	}
	if pairs[0].Context != "darkMode.textColor" {
		t.Errorf("context = %q, want %q", pairs[0].Context, "darkMode.textColor")
	}
}

func TestScanSiblingVariantsKeepSeparateDefaults(t *testing.T) {
	const source = `export const themes = {
  dark: {
    text: '#e6edf3',
  },
  light: {
    text: '#1f2328',
  },
};
`
	pairs := scanFixture(t, "themes.ts", source)
	want := []scan.Pair{
		{Scanner: "script", File: "themes.ts", Line: 3, Context: "dark.text", Role: scan.RoleText, Foreground: "#e6edf3", Background: "#1a1a2e"},
		{Scanner: "script", File: "themes.ts", Line: 6, Context: "light.text", Role: scan.RoleText, Foreground: "#1f2328", Background: "#ffffff"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("Scan() returned %d pairs, want %d: %+v", len(pairs), len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair[%d] = %+v, want %+v", i, pairs[i], want[i])
		}
	}
}

func TestScanVariableAssignments(t *testing.T) {
	const source = `const linkColor = '#0969da';
const pageBg = '#ffffff';
`
	pairs := scanFixture(t, "consts.ts", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	want := scan.Pair{
		Scanner:    "script",
		File:       "consts.ts",
		Line:       1,
		Context:    "linkColor",
		Role:       scan.RoleText,
		Foreground: "#0969da",
		Background: "#ffffff",
	}
	if pairs[0] != want {
		t.Errorf("pair = %+v, want %+v", pairs[0], want)
	}
}

func TestScanMultipleBackgroundsCrossProduct(t *testing.T) {
	const source = `const ui = {
  panel: {
    text: '#1f2328',
    surface: '#f6f8fa',
    canvas: '#fefefe',
  },
};
`
	pairs := scanFixture(t, "ui.ts", source)
	if len(pairs) != 2 {
		t.Fatalf("Scan() returned %d pairs, want 2: %+v", len(pairs), pairs)
	}
	if pairs[0].Background != "#f6f8fa" || pairs[1].Background != "#fefefe" {
		t.Errorf("backgrounds = %s, %s, want #f6f8fa, #fefefe", pairs[0].Background, pairs[1].Background)
	}
	for i, p := range pairs {
		if p.Foreground != "#1f2328" || p.Context != "panel.text" {
			t.Errorf("pair[%d] = %+v, want foreground #1f2328 in panel.text", i, p)
		}
	}
}

func TestScanBorderAgainstFirstBackground(t *testing.T) {
	const source = `const ui = {
  card: {
    surface: '#ffffff',
    canvas: '#fafbfc',
    divider: '#d0d7de',
  },
};
`
	pairs := scanFixture(t, "ui.ts", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	want := scan.Pair{
		Scanner:    "script",
		File:       "ui.ts",
		Line:       5,
		Context:    "card.divider",
		Role:       scan.RoleBorder,
		Foreground: "#d0d7de",
		Background: "#ffffff",
	}
	if pairs[0] != want {
		t.Errorf("pair = %+v, want %+v", pairs[0], want)
	}
}

func TestScanStyleAssignment(t *testing.T) {
	const source = `const el = document.querySelector('.toast');
el.style.color = '#b00020';
`
	pairs := scanFixture(t, "toast.js", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].Foreground != "#b00020" || pairs[0].Background != "#ffffff" {
		t.Errorf("pair = %s on %s, want #b00020 on #ffffff", pairs[0].Foreground, pairs[0].Background)
	}
	if pairs[0].Line != 2 {
		t.Errorf("line = %d, want 2", pairs[0].Line)
	}
}

func TestScanFunctionalAndNamedValues(t *testing.T) {
	const source = `const alerts = {
  warning: {
    color: 'rgb(154, 52, 18)',
    background: 'hsl(0, 0%, 100%)',
  },
  critical: {
    color: 'navy',
  },
};
`
	pairs := scanFixture(t, "alerts.ts", source)
	want := []scan.Pair{
		{Scanner: "script", File: "alerts.ts", Line: 3, Context: "warning.color", Role: scan.RoleText, Foreground: "#9a3412", Background: "#ffffff"},
		{Scanner: "script", File: "alerts.ts", Line: 7, Context: "critical.color", Role: scan.RoleText, Foreground: "#000080", Background: "#ffffff"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("Scan() returned %d pairs, want %d: %+v", len(pairs), len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair[%d] = %+v, want %+v", i, pairs[i], want[i])
		}
	}
}

func TestScanCommentsMasked(t *testing.T) {
	const source = `// color: '#101010'
/*
 * background: '#202020'
 */
const note = {
  color: '#404040',
};
`
	pairs := scanFixture(t, "note.js", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].Foreground != "#404040" {
		t.Errorf("foreground = %s, want #404040", pairs[0].Foreground)
	}
	if pairs[0].Line != 6 {
		t.Errorf("line = %d, want 6", pairs[0].Line)
	}
}

func TestScanOnPatternForUnknownKeys(t *testing.T) {
	const source = `const palette = {
  chip: {
    tint: '#0969da',
    onTint: '#ffffff',
  },
};
`
	pairs := scanFixture(t, "palette.ts", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	want := scan.Pair{
		Scanner:    "script",
		File:       "palette.ts",
		Line:       4,
		Context:    "chip.onTint",
		Role:       scan.RoleText,
		Foreground: "#ffffff",
		Background: "#0969da",
	}
	if pairs[0] != want {
		t.Errorf("pair = %+v, want %+v", pairs[0], want)
	}
}

func TestScanDuplicateEntriesDeduped(t *testing.T) {
	const source = `const a = {
  color: '#555555',
};
const b = {
  color: '#555555',
};
`
	pairs := scanFixture(t, "dup.js", source)
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].Line != 2 {
		t.Errorf("line = %d, want 2 (first occurrence)", pairs[0].Line)
	}
}

func TestScanSkipsUnsupportedExtension(t *testing.T) {
	pairs := scanFixture(t, "theme.jsx", `const t = { color: '#555555' };`)
	if len(pairs) != 0 {
		t.Errorf("Scan() returned %d pairs for .jsx file, want 0", len(pairs))
	}
}

func TestScanSkipsOversizedFile(t *testing.T) {
	dir, path := writeFixture(t, "big.ts", `const c = { color: '#555555' };`)
	pairs, err := New().Scan(context.Background(), scan.Options{
		Root:         dir,
		Files:        []string{path},
		MaxFileBytes: 8,
	})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("Scan() returned %d pairs, want 0", len(pairs))
	}
}

func TestScanCancelled(t *testing.T) {
	dir, path := writeFixture(t, "a.ts", `const c = { color: '#555555' };`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Scan(ctx, scan.Options{Root: dir, Files: []string{path}}); err == nil {
		t.Error("Scan() error = nil, want context error")
	}
}

func TestExtractValue(t *testing.T) {
	tests := []struct {
		value string
		want  string
		ok    bool
	}{
		{"#fff", "#ffffff", true},
		{"#3b82f6", "#3b82f6", true},
		{"#3b82f6cc", "#3b82f6", true},
		{"rgb(10, 20, 30)", "#0a141e", true},
		{"rgba(0, 0, 0, 0.5)", "#000000", true},
		{"hsl(0, 100%, 50%)", "#ff0000", true},
		{"hsl(0, 0%, 100%)", "#ffffff", true},
		{"red", "#ff0000", true},
		{"White", "#ffffff", true},
		{"linear-gradient(#fff 0%, #000)", "#000000", true},
		{"rgb(300, 0, 0)", "", false},
		{"hsl(0, 150%, 50%)", "", false},
		{"inherit", "", false},
		{"transparent", "", false},
		{"10px", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := extractValue(tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("extractValue(%q) = %q, %v, want %q, %v", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClassifyKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"color", roleText},
		{"textColor", roleText},
		{"onPrimary", roleText},
		{"foreground", roleText},
		{"dark.text", roleText},
		{"background", roleBG},
		{"bg", roleBG},
		{"surface", roleBG},
		{"canvas", roleBG},
		{"button.primary", roleBG},
		{"border", roleBorder},
		{"divider", roleBorder},
		{"stroke", roleBorder},
		{"ring", roleBorder},
		{"brand", roleUnknown},
		{"muted", roleUnknown},
		{"colors", roleUnknown},
		{"onTint", roleUnknown},
	}
	for _, tt := range tests {
		if got := classifyKey(tt.key); got != tt.want {
			t.Errorf("classifyKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
