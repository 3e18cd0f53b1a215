package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/roman/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// conversionText renders one conversion as "input → output" or its user message.
func conversionText(c domain.Conversion, ceiling int) string {
	if c.Error == nil {
		return fmt.Sprintf("%s → %s", clampString(c.Input, 24), c.Output)
	}
	msg := kindMessage(c.Error.Kind, ceiling)
	if c.Direction == domain.DirectionEncode && c.Error.Kind == domain.KindUnrecognizedSymbol {
		msg = "Not a base-10 integer"
	}
	return fmt.Sprintf("%s ✗ %s", clampString(c.Input, 24), msg)
}

// renderTable lays conversions out in columns of at most rows lines.
func renderTable(conversions []domain.Conversion, rows int) string {
	if len(conversions) == 0 {
		return "(empty)"
	}
	if rows <= 0 {
		rows = len(conversions)
	}

	cols := (len(conversions) + rows - 1) / rows
	cells := make([]string, len(conversions))
	width := 0
	for i, c := range conversions {
		cells[i] = fmt.Sprintf("%5s  %s", c.Input, c.Output)
		if w := utf8.RuneCountInString(cells[i]); w > width {
			width = w
		}
	}

	var b strings.Builder
	for r := 0; r < rows && r < len(cells); r++ {
		for col := 0; col < cols; col++ {
			i := col*rows + r
			if i >= len(cells) {
				break
			}
			if col > 0 {
				b.WriteString("   ")
			}
			b.WriteString(cells[i])
			if col < cols-1 {
				b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(cells[i])))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderReport(r domain.BatchReport, id string, ceiling int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch: %s\n", r.BatchName)
	fmt.Fprintf(&b, "Items: %d  Failures: %d\n", len(r.Results), r.Failures())
	if id != "" {
		fmt.Fprintf(&b, "Saved: %s\n", id)
	}
	b.WriteString("\n")

	for _, c := range r.Results {
		status := "PASS"
		if c.Failed() {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "[%s] %s\n", status, conversionText(c, ceiling))
		for _, a := range c.Assertions {
			if !a.Passed {
				fmt.Fprintf(&b, "       %s: %s\n", a.Name, a.Message)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
