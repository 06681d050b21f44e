package diag

import "strings"

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic records a non-fatal degradation that happened while producing
// an otherwise successful result. Callers inspect these instead of parsing
// log output.
type Diagnostic struct {
	Code     string   `json:"code"`
	Stage    string   `json:"stage"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Collector accumulates diagnostics for a single call. The zero value is
// ready to use.
type Collector struct {
	diags []Diagnostic
}

func (c *Collector) Add(code, stage string, severity Severity, message string) {
	if c == nil {
		return
	}
	d := Diagnostic{
		Code:     strings.TrimSpace(code),
		Stage:    strings.TrimSpace(stage),
		Severity: severity,
		Message:  strings.TrimSpace(message),
	}
	if d.Code == "" || d.Stage == "" || d.Message == "" {
		return
	}
	if d.Severity == "" {
		d.Severity = SeverityWarning
	}
	c.diags = append(c.diags, d)
}

func (c *Collector) Warnf(code, stage, message string) {
	c.Add(code, stage, SeverityWarning, message)
}

// All returns the collected diagnostics in insertion order.
func (c *Collector) All() []Diagnostic {
	if c == nil || len(c.diags) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}
