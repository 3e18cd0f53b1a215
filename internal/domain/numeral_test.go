package domain

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestEncode_Sequential(t *testing.T) {
	want := strings.Fields("I II III IV V VI VII VIII IX X XI XII XIII XIV XV XVI XVII XVIII XIX XX XXI XXII")
	for i, w := range want {
		n := i + 1
		got, err := Encode(n)
		if err != nil {
			t.Fatalf("Encode(%d) error: %v", n, err)
		}
		if got != w {
			t.Errorf("Encode(%d) = %q, want %q", n, got, w)
		}
	}
}

func TestEncode_KnownValues(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{444, "CDXLIV"},
		{900, "CM"},
		{1984, "MCMLXXXIV"},
		{2024, "MMXXIV"},
		{3888, "MMMDCCCLXXXVIII"},
		{3999, "MMMCMXCIX"},
	}
	for _, c := range cases {
		got, err := Encode(c.n)
		if err != nil {
			t.Fatalf("Encode(%d) error: %v", c.n, err)
		}
		if got != c.want {
			t.Errorf("Encode(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, -3999, MaxClassic + 1, 1 << 40} {
		_, err := Encode(n)
		if err == nil {
			t.Fatalf("Encode(%d): expected error", n)
		}
		if !errors.Is(err, ErrOutOfRange) || !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Encode(%d): expected ErrOutOfRange, got %v", n, err)
		}
		if !IsKind(err, KindOutOfRange) {
			t.Errorf("Encode(%d): expected KindOutOfRange, got %v", n, err)
		}
	}
}

func TestRoundTrip_FullDomain(t *testing.T) {
	for n := 1; n <= MaxClassic; n++ {
		s, err := Encode(n)
		if err != nil {
			t.Fatalf("Encode(%d) error: %v", n, err)
		}
		got, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", s, err)
		}
		if got != n {
			t.Fatalf("Decode(Encode(%d)) = %d", n, got)
		}
	}
}

func TestDecode_KnownValues(t *testing.T) {
	cases := map[string]int{
		"I":         1,
		"IV":        4,
		"IX":        9,
		"XIV":       14,
		"XLII":      42,
		"MCMLXXXIV": 1984,
		"MMMCMXCIX": 3999,
	}
	for in, want := range cases {
		got, err := Decode(in)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Decode(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestDecode_Rejects(t *testing.T) {
	cases := []struct {
		in   string
		kind ErrorKind
	}{
		{"", KindNonCanonical},
		{"IIII", KindNonCanonical},
		{"VV", KindNonCanonical},
		{"IM", KindNonCanonical},
		{"IC", KindNonCanonical},
		{"XM", KindNonCanonical},
		{"VX", KindNonCanonical},
		{"MMMM", KindNonCanonical},
		{"IIV", KindNonCanonical},
		{"xiv", KindUnrecognizedSymbol},
		{"i", KindUnrecognizedSymbol},
		{"ABC", KindUnrecognizedSymbol},
		{"X I", KindUnrecognizedSymbol},
		{"Ⅻ", KindUnrecognizedSymbol},
		{"XIV\n", KindUnrecognizedSymbol},
	}
	for _, c := range cases {
		_, err := Decode(c.in)
		if err == nil {
			t.Errorf("Decode(%q): expected error", c.in)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Decode(%q): expected ErrInvalidInput, got %v", c.in, err)
		}
		if !IsKind(err, c.kind) {
			t.Errorf("Decode(%q): expected kind %s, got %v", c.in, c.kind, err)
		}
	}
}

func TestDecode_InvalidUTF8IsUnrecognized(t *testing.T) {
	_, err := Decode("X\xffI")
	if !errors.Is(err, ErrUnrecognizedSymbol) {
		t.Fatalf("expected ErrUnrecognizedSymbol, got %v", err)
	}
}

func TestCodec_WithMax(t *testing.T) {
	c := NewCodec(WithMax(MaxExtended))
	if c.Max() != MaxExtended {
		t.Fatalf("expected max=%d, got %d", MaxExtended, c.Max())
	}

	s, err := c.Encode(4999)
	if err != nil {
		t.Fatalf("Encode(4999) error: %v", err)
	}
	if s != "MMMMCMXCIX" {
		t.Fatalf("Encode(4999) = %q", s)
	}
	n, err := c.Decode("MMMMCMXCIX")
	if err != nil || n != 4999 {
		t.Fatalf("Decode = %d, %v", n, err)
	}

	s, err = c.Encode(MaxExtended)
	if err != nil || s != strings.Repeat("M", 10) {
		t.Fatalf("Encode(%d) = %q, %v", MaxExtended, s, err)
	}
	if _, err := c.Encode(MaxExtended + 1); !IsKind(err, KindOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}

	// The default codec is unaffected.
	if _, err := Decode("MMMM"); err == nil {
		t.Fatalf("default codec must reject MMMM")
	}
}

func TestCodec_LowCeiling(t *testing.T) {
	c := NewCodec(WithMax(10))
	if _, err := c.Encode(11); !IsKind(err, KindOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if _, err := c.Decode("XI"); !IsKind(err, KindNonCanonical) {
		t.Fatalf("expected non canonical for value above ceiling, got %v", err)
	}
	if n, err := c.Decode("X"); err != nil || n != 10 {
		t.Fatalf("Decode(X) = %d, %v", n, err)
	}
}

func TestWithMax_IgnoresInvalid(t *testing.T) {
	for _, n := range []int{0, -5, MaxExtended + 1} {
		if got := NewCodec(WithMax(n)).Max(); got != MaxClassic {
			t.Errorf("WithMax(%d): expected default ceiling, got %d", n, got)
		}
		if err := ValidateMax(n); !IsKind(err, KindInvalidConfig) {
			t.Errorf("ValidateMax(%d): expected invalid config, got %v", n, err)
		}
	}
}

func TestDecodeLax_AcceptsNonCanonical(t *testing.T) {
	cases := map[string]int{
		"IIII": 4,
		"VV":   10,
		"IM":   999,
		"":     0,
	}
	for in, want := range cases {
		got, err := decodeLax(in)
		if err != nil {
			t.Fatalf("decodeLax(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("decodeLax(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestCodec_ConcurrentUse(t *testing.T) {
	c := DefaultCodec()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for n := 1 + offset; n <= MaxClassic; n += 8 {
				s, err := c.Encode(n)
				if err != nil {
					t.Errorf("Encode(%d) error: %v", n, err)
					return
				}
				if got, err := c.Decode(s); err != nil || got != n {
					t.Errorf("Decode(%q) = %d, %v", s, got, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
