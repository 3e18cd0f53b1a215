package template

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/roman/internal/domain"
)

// RenderString replaces {{key}} placeholders with vars values.
// A missing key or a malformed placeholder is an invalid_config error.
func RenderString(input string, vars map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", invalid(input, "unclosed template expression")
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", invalid(input, "empty template expression")
		}

		value, ok := vars[key]
		if !ok {
			return "", invalid(input, fmt.Sprintf("unknown key %q", key))
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// ConversionVars exposes a conversion to templates as
// input, output, direction, kind and error.
func ConversionVars(c domain.Conversion) map[string]string {
	vars := map[string]string{
		"input":     c.Input,
		"output":    c.Output,
		"direction": string(c.Direction),
		"kind":      "",
		"error":     "",
	}
	if c.Error != nil {
		vars["kind"] = string(c.Error.Kind)
		vars["error"] = c.Error.Message
	}
	return vars
}

// Validate checks tmpl against the conversion keys without rendering real data.
func Validate(tmpl string) error {
	_, err := RenderString(tmpl, ConversionVars(domain.Conversion{}))
	return err
}

func invalid(tmpl, msg string) error {
	return &domain.OpError{
		Op:    "template.render",
		Kind:  domain.KindInvalidConfig,
		Input: tmpl,
		Err:   fmt.Errorf("%w: %s", domain.ErrInvalidConfig, msg),
	}
}
