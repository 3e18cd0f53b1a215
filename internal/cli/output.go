package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aalvaropc/roman/internal/app/template"
	"github.com/aalvaropc/roman/internal/domain"
)

const (
	formatPretty   = "pretty"
	formatJSON     = "json"
	formatTemplate = "template"
)

// output carries the chosen format; tmpl is only used by the template format.
type output struct {
	format string
	tmpl   string
}

// resolveOutput picks the flag value over the configured default and checks it.
func resolveOutput(flag string, cfg domain.Config) (output, error) {
	o := output{format: strings.ToLower(strings.TrimSpace(flag)), tmpl: cfg.Output.Template}
	if o.format == "" {
		o.format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	}
	switch o.format {
	case "", formatPretty:
		o.format = formatPretty
	case formatJSON:
	case formatTemplate:
		if err := template.Validate(o.tmpl); err != nil {
			return o, err
		}
	default:
		return o, fmt.Errorf("unsupported format %q (expected pretty|json|template)", o.format)
	}
	return o, nil
}

func printConversions(w io.Writer, convs []domain.Conversion, o output) error {
	switch o.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(convs)
	case formatTemplate:
		for _, c := range convs {
			if err := printTemplateLine(w, c, o.tmpl); err != nil {
				return err
			}
		}
		return nil
	case formatPretty, "":
		for _, c := range convs {
			fmt.Fprintln(w, prettyConversion(c))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json|template)", o.format)
	}
}

func printReport(w io.Writer, report domain.BatchReport, reportID string, o output) error {
	switch o.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"report_id": reportID,
			"report":    report,
		})
	case formatTemplate:
		for _, c := range report.Results {
			if err := printTemplateLine(w, c, o.tmpl); err != nil {
				return err
			}
		}
		return nil
	case formatPretty, "":
		printPrettyReport(w, report, reportID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json|template)", o.format)
	}
}

func printTemplateLine(w io.Writer, c domain.Conversion, tmpl string) error {
	line, err := template.RenderString(tmpl, template.ConversionVars(c))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, line)
	return err
}

func prettyConversion(c domain.Conversion) string {
	if c.Error != nil {
		return fmt.Sprintf("%s => error: %s (%s)", c.Input, c.Error.Message, c.Error.Kind)
	}
	return fmt.Sprintf("%s => %s", c.Input, c.Output)
}

func printPrettyReport(w io.Writer, report domain.BatchReport, reportID string) {
	total := report.EndedAt.Sub(report.StartedAt)
	if report.StartedAt.IsZero() || report.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Batch:     %s\n", report.BatchName)
	fmt.Fprintf(w, "Max:       %d\n", report.Max)
	fmt.Fprintf(w, "Started:   %s\n", report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:  %s\n", total)
	if reportID != "" {
		fmt.Fprintf(w, "Report ID: %s\n", reportID)
	}
	fmt.Fprintln(w)

	for _, c := range report.Results {
		status := "OK"
		if c.Failed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "- [%s] %s\n", status, prettyConversion(c))

		if len(c.Assertions) > 0 {
			pass, fail := countAssertionPassFail(c.Assertions)
			fmt.Fprintf(w, "  expectations: %d pass / %d fail\n", pass, fail)
			for _, a := range c.Assertions {
				mark := "✓"
				if !a.Passed {
					mark = "✗"
				}
				fmt.Fprintf(w, "    %s %s: %s\n", mark, a.Name, a.Message)
			}
		}
	}

	fmt.Fprintf(w, "\n%d item(s), %d failed\n", len(report.Results), report.Failures())
}

func countAssertionPassFail(in []domain.AssertionResult) (pass int, fail int) {
	for _, a := range in {
		if a.Passed {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}

func countFailedConversions(convs []domain.Conversion) int {
	n := 0
	for _, c := range convs {
		if c.Failed() {
			n++
		}
	}
	return n
}
