package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/roman/internal/domain"
)

// Inputs evaluates a JSONPath expression over a JSON document and returns the
// matched values as conversion inputs, in document order.
//
// Policy:
// - Arrays are flattened (one level per nesting).
// - Strings are kept as-is; numbers are formatted without exponent.
// - null and "" are skipped.
// - No value at all is a not_found error.
func Inputs(body []byte, expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{
			Op:   "extract.inputs",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("empty jsonpath expression"),
		}
	}

	doc, err := parseJSON(body)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "extract.inputs",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("document is not valid JSON: %w", err),
		}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:    "extract.inputs",
			Kind:  domain.KindInvalidConfig,
			Input: expr,
			Err:   fmt.Errorf("jsonpath error: %w", err),
		}
	}

	var out []string
	if err := flatten(val, &out); err != nil {
		return nil, &domain.OpError{
			Op:    "extract.inputs",
			Kind:  domain.KindInvalidConfig,
			Input: expr,
			Err:   err,
		}
	}
	if len(out) == 0 {
		return nil, &domain.OpError{
			Op:    "extract.inputs",
			Kind:  domain.KindNotFound,
			Input: expr,
			Err:   domain.ErrNotFound,
		}
	}
	return out, nil
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func flatten(v any, out *[]string) error {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		for _, e := range t {
			if err := flatten(e, out); err != nil {
				return err
			}
		}
		return nil
	case string:
		if t != "" {
			*out = append(*out, t)
		}
		return nil
	case float64:
		*out = append(*out, strconv.FormatFloat(t, 'f', -1, 64))
		return nil
	case bool:
		*out = append(*out, strconv.FormatBool(t))
		return nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		*out = append(*out, string(b))
		return nil
	default:
		*out = append(*out, fmt.Sprint(t))
		return nil
	}
}
