package report

import (
	"encoding/json"

	"github.com/jmylchreest/albedo/internal/audit"
)

// CheckJSON writes the check records as an indented JSON array in the
// same order the human report would print them.
func (p *Printer) CheckJSON(records []Record) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// AuditJSON writes the complete audit result, items and summary
// included, as indented JSON.
func (p *Printer) AuditJSON(res *audit.Result) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
