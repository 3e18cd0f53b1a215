package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MaxClassic is the largest value the seven standard symbols can write
	// without repeating M more than three times.
	MaxClassic = 3999

	// MaxExtended is the widest ceiling a Codec accepts.
	MaxExtended = 10000
)

type symbol struct {
	r     rune
	value int
}

type pair struct {
	numeral string
	value   int
}

var symbols = [7]symbol{
	{'I', 1}, {'V', 5}, {'X', 10}, {'L', 50}, {'C', 100}, {'D', 500}, {'M', 1000},
}

// Descending; Encode relies on the order.
var pairs = [13]pair{
	{"M", 1000}, {"CM", 900}, {"D", 500}, {"CD", 400},
	{"C", 100}, {"XC", 90}, {"L", 50}, {"XL", 40},
	{"X", 10}, {"IX", 9}, {"V", 5}, {"IV", 4}, {"I", 1},
}

// Codec converts between integers in [1, Max()] and their canonical Roman numerals.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	max int
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithMax sets the ceiling. Values outside [1, MaxExtended] are ignored;
// use ValidateMax to reject them explicitly.
func WithMax(n int) CodecOption {
	return func(c *Codec) {
		if ValidateMax(n) == nil {
			c.max = n
		}
	}
}

// NewCodec returns a codec with the classic 3999 ceiling unless an option changes it.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{max: MaxClassic}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateMax reports whether n is an acceptable codec ceiling.
func ValidateMax(n int) error {
	if n < 1 || n > MaxExtended {
		return &OpError{
			Op:    "roman.codec",
			Kind:  KindInvalidConfig,
			Input: strconv.Itoa(n),
			Err:   fmt.Errorf("%w: max must be within [1, %d]", ErrInvalidConfig, MaxExtended),
		}
	}
	return nil
}

var defaultCodec = NewCodec()

// DefaultCodec returns the shared codec with the classic 3999 ceiling.
func DefaultCodec() *Codec { return defaultCodec }

// Max returns the largest value c can encode.
func (c *Codec) Max() int { return c.max }

// Encode returns the canonical numeral for n.
func (c *Codec) Encode(n int) (string, error) {
	if n <= 0 || n > c.max {
		return "", &OpError{
			Op:    "roman.encode",
			Kind:  KindOutOfRange,
			Input: strconv.Itoa(n),
			Err:   fmt.Errorf("%w: want 1..%d", ErrOutOfRange, c.max),
		}
	}

	var b strings.Builder
	rest := n
	for _, p := range pairs {
		for rest >= p.value {
			b.WriteString(p.numeral)
			rest -= p.value
		}
	}
	if rest != 0 {
		panic(fmt.Sprintf("roman: encode(%d) left remainder %d", n, rest))
	}
	return b.String(), nil
}

// Decode returns the value of s, which must be exactly the numeral Encode
// would produce for that value.
func (c *Codec) Decode(s string) (int, error) {
	n, err := decodeLax(s)
	if err != nil {
		return 0, err
	}

	canonical, encErr := c.Encode(n)
	if encErr != nil || canonical != s {
		return 0, &OpError{
			Op:    "roman.decode",
			Kind:  KindNonCanonical,
			Input: s,
			Err:   ErrNonCanonical,
		}
	}
	return n, nil
}

// decodeLax sums symbol values right to left, subtracting any symbol smaller
// than the largest one already seen. It does not check canonicality.
func decodeLax(s string) (int, error) {
	total, maxSeen := 0, 0
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size

		v, ok := symbolValue(r)
		if !ok {
			return 0, &OpError{
				Op:    "roman.decode",
				Kind:  KindUnrecognizedSymbol,
				Input: s,
				Err:   fmt.Errorf("%w %q", ErrUnrecognizedSymbol, r),
			}
		}
		if v < maxSeen {
			total -= v
		} else {
			total += v
			maxSeen = v
		}
	}
	return total, nil
}

func symbolValue(r rune) (int, bool) {
	for _, s := range symbols {
		if s.r == r {
			return s.value, true
		}
	}
	return 0, false
}

// Encode converts n using the default codec.
func Encode(n int) (string, error) { return defaultCodec.Encode(n) }

// Decode converts s using the default codec.
func Decode(s string) (int, error) { return defaultCodec.Decode(s) }
