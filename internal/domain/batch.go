package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Direction selects which way an input is converted.
type Direction string

const (
	DirectionEncode Direction = "encode"
	DirectionDecode Direction = "decode"
	DirectionAuto   Direction = "auto"
)

// ParseDirection accepts encode|decode|auto (case-insensitive); empty means auto.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DirectionAuto, nil
	case DirectionEncode, DirectionDecode, DirectionAuto:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported direction %q (expected encode|decode|auto)", s)
	}
}

// Resolve turns auto into a concrete direction for the given input:
// integers are encoded, anything else is decoded.
func (d Direction) Resolve(input string) Direction {
	if d != DirectionAuto && d != "" {
		return d
	}
	// Integers too large for int still read as integers (and fail as out of range).
	if _, err := strconv.Atoi(strings.TrimSpace(input)); err == nil || errors.Is(err, strconv.ErrRange) {
		return DirectionEncode
	}
	return DirectionDecode
}

// BatchItem is one input of a batch, optionally with an expected outcome.
type BatchItem struct {
	Input     string
	Direction Direction

	// Expect is the expected output (optional).
	Expect *string
	// ExpectError is the expected failure kind (optional).
	ExpectError ErrorKind
}

// Batch groups inputs under one name (Git-friendly YAML file).
type Batch struct {
	Name      string
	Direction Direction
	Items     []BatchItem
}

// BatchRef is a lightweight reference to a batch file on disk.
type BatchRef struct {
	Name string
	Path string
}

// AssertionResult is the output of a single expectation check.
type AssertionResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// ConversionError is the serializable form of a failed conversion.
type ConversionError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// NewConversionError classifies err. Errors without an OpError in their
// chain are reported as execution errors.
func NewConversionError(err error) *ConversionError {
	if err == nil {
		return nil
	}
	kind := KindOf(err)
	if kind == "" {
		kind = KindExecution
	}
	msg := err.Error()
	var oe *OpError
	if errors.As(err, &oe) && oe.Err != nil {
		msg = oe.Err.Error()
	}
	return &ConversionError{Kind: kind, Message: msg}
}

// Conversion is the result of converting one input.
type Conversion struct {
	Input      string            `json:"input"`
	Output     string            `json:"output,omitempty"`
	Direction  Direction         `json:"direction"`
	Error      *ConversionError  `json:"error,omitempty"`
	Assertions []AssertionResult `json:"assertions,omitempty"`
}

// Failed reports whether the conversion errored unexpectedly or an expectation failed.
// A conversion that errors as expected (expect_error) is not a failure.
func (c Conversion) Failed() bool {
	expectedErr := false
	for _, a := range c.Assertions {
		if !a.Passed {
			return true
		}
		if a.Name == "expect.error" {
			expectedErr = true
		}
	}
	return c.Error != nil && !expectedErr
}

// BatchReport is the outcome of converting a batch.
type BatchReport struct {
	BatchName string `json:"batch_name"`
	BatchPath string `json:"batch_path,omitempty"`
	Max       int    `json:"max"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Results []Conversion `json:"results"`
}

// Failures counts failed conversions.
func (r BatchReport) Failures() int {
	n := 0
	for _, c := range r.Results {
		if c.Failed() {
			n++
		}
	}
	return n
}
