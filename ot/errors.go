package ot

import (
	"fmt"
	"strings"
)

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical marks an error which makes the font unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor marks an error which disables a part of the font, e.g. its outlines.
	SeverityMajor
	// SeverityMinor marks an issue which parsing was able to work around.
	SeverityMinor
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	}
	return "UNKNOWN"
}

// FontError represents an error encountered during font parsing.
// Errors are accumulated during parsing and can be inspected after parsing completes.
type FontError struct {
	Table    Tag           // table where the error occurred, e.g. "loca"
	Section  string        // field or section within the table, e.g. "IndexToLocFormat"
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
	Offset   uint32        // byte offset in the font binary, 0 if unknown
}

func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// FontWarning represents a non-critical issue encountered during font parsing.
type FontWarning struct {
	Table  Tag    // table where the warning occurred
	Issue  string // human-readable description of the warning
	Offset uint32 // byte offset in the font binary, 0 if unknown
}

func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errorCollector accumulates errors and warnings during font parsing.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

func (ec *errorCollector) addError(table Tag, section string, issue string, severity ErrorSeverity, offset uint32) {
	tracer().Debugf("%s/%s: %s", table, section, issue)
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// fail records a critical error and returns it as a format error.
func (ec *errorCollector) fail(table Tag, section string, issue string, offset uint32) error {
	ec.addError(table, section, issue, SeverityCritical, offset)
	if table == 0 {
		return errFontFormat(issue)
	}
	return errFontFormat(fmt.Sprintf("table %s: %s", strings.TrimSpace(table.String()), issue))
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}
