package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jmylchreest/albedo/internal/colour"
)

// Record is one analyzed pair in check mode: either an engine result
// or the parse error together with the inputs that caused it.
type Record struct {
	Result    *colour.Result
	Err       error
	TextInput string
	BgInput   string
}

// MarshalJSON flattens successful analyses to the bare result and
// keeps the original inputs next to parse errors.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(map[string]string{
			"error":      r.Err.Error(),
			"text_input": r.TextInput,
			"bg_input":   r.BgInput,
		})
	}
	return json.Marshal(r.Result)
}

// Printer renders human and JSON reports. Colour handling is decided
// at construction so every method renders consistently regardless of
// the environment at call time.
type Printer struct {
	w      io.Writer
	colour bool

	pass     lipgloss.Style
	fail     lipgloss.Style
	critical lipgloss.Style
	high     lipgloss.Style
	warning  lipgloss.Style
	ok       lipgloss.Style
	heading  lipgloss.Style
}

// NewPrinter creates a printer writing to w. When colourOn is false
// all styling and swatches collapse to plain text.
func NewPrinter(w io.Writer, colourOn bool) *Printer {
	// The renderer gets an explicit profile so --color=always works
	// even when w is not a terminal.
	r := lipgloss.NewRenderer(w)
	if colourOn {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:        w,
		colour:   colourOn,
		pass:     r.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true),
		fail:     r.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		critical: r.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#b91c1c")).Bold(true),
		high:     r.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		warning:  r.NewStyle().Foreground(lipgloss.Color("#eab308")),
		ok:       r.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		heading:  r.NewStyle().Bold(true),
	}
}

func (p *Printer) styled(st lipgloss.Style, s string) string {
	if !p.colour {
		return s
	}
	return st.Render(s)
}

func (p *Printer) passFail(pass bool) string {
	if pass {
		return p.styled(p.pass, "PASS")
	}
	return p.styled(p.fail, "FAIL")
}

func (p *Printer) riskBadge(risk string) string {
	switch risk {
	case colour.RiskCritical:
		return p.styled(p.critical, " CRITICAL ")
	case colour.RiskHigh:
		return p.styled(p.high, "HIGH")
	case colour.RiskWarning:
		return p.styled(p.warning, "WARNING")
	default:
		return p.styled(p.ok, "ok")
	}
}

func riskNote(risk string) string {
	switch risk {
	case colour.RiskCritical:
		return "colours nearly indistinguishable"
	case colour.RiskHigh:
		return "significant contrast loss"
	case colour.RiskWarning:
		return "drops below AA body text"
	default:
		return ""
	}
}

const ansiReset = "\033[0m"

// Swatch renders a colour block followed by its hex code. Falls back
// to the bare literal when colour is off or it does not parse.
func (p *Printer) Swatch(hex string) string {
	c, err := colour.Parse(hex)
	if err != nil || !p.colour {
		return hex
	}
	return fmt.Sprintf("\033[48;2;%d;%d;%dm   %s %s", c.R, c.G, c.B, ansiReset, hex)
}

// Sample renders sample text in the foreground colour over the
// background colour, the way the pair would actually look. Returns ""
// when colour is off.
func (p *Printer) Sample(fgHex, bgHex string) string {
	if !p.colour {
		return ""
	}
	fg, err := colour.Parse(fgHex)
	if err != nil {
		return ""
	}
	bg, err := colour.Parse(bgHex)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\033[48;2;%d;%d;%dm\033[38;2;%d;%d;%dm Sample text Aa %s",
		bg.R, bg.G, bg.B, fg.R, fg.G, fg.B, ansiReset)
}
