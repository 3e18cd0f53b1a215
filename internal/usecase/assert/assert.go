package assert

import (
	"fmt"

	"github.com/aalvaropc/roman/internal/domain"
)

// Eq checks a conversion produced the expected output.
func Eq(expected string, c domain.Conversion) domain.AssertionResult {
	if c.Error != nil {
		return domain.AssertionResult{
			Name:    "expect.eq",
			Passed:  false,
			Message: fmt.Sprintf("expected %q, got error %s", expected, c.Error.Kind),
		}
	}
	if c.Output == expected {
		return domain.AssertionResult{
			Name:    "expect.eq",
			Passed:  true,
			Message: fmt.Sprintf("output %q", c.Output),
		}
	}
	return domain.AssertionResult{
		Name:    "expect.eq",
		Passed:  false,
		Message: fmt.Sprintf("expected %q, got %q", expected, c.Output),
	}
}

// Error checks a conversion failed with the expected kind.
func Error(kind domain.ErrorKind, c domain.Conversion) domain.AssertionResult {
	if c.Error == nil {
		return domain.AssertionResult{
			Name:    "expect.error",
			Passed:  false,
			Message: fmt.Sprintf("expected error %s, got %q", kind, c.Output),
		}
	}
	if c.Error.Kind == kind {
		return domain.AssertionResult{
			Name:    "expect.error",
			Passed:  true,
			Message: fmt.Sprintf("error %s", kind),
		}
	}
	return domain.AssertionResult{
		Name:    "expect.error",
		Passed:  false,
		Message: fmt.Sprintf("expected error %s, got %s", kind, c.Error.Kind),
	}
}

// Evaluate applies the item's expectations to its conversion.
// Items without expectations yield no results.
func Evaluate(item domain.BatchItem, c domain.Conversion) []domain.AssertionResult {
	var out []domain.AssertionResult

	if item.Expect != nil {
		out = append(out, Eq(*item.Expect, c))
	}
	if item.ExpectError != "" {
		out = append(out, Error(item.ExpectError, c))
	}
	return out
}
