package usecase

import (
	"fmt"
	"strconv"

	"github.com/aalvaropc/roman/internal/domain"
)

// Table encodes a contiguous range of integers.
type Table struct {
	converter *Converter
}

func NewTable(conv *Converter) *Table {
	return &Table{converter: conv}
}

// Execute returns one conversion per integer in [from, to]. Both ends must be
// encodable and from must not exceed to.
func (uc *Table) Execute(from, to int) ([]domain.Conversion, error) {
	ceiling := uc.converter.Max()
	if from < 1 || to > ceiling || from > to {
		return nil, &domain.OpError{
			Op:    "usecase.table",
			Kind:  domain.KindOutOfRange,
			Input: fmt.Sprintf("%d..%d", from, to),
			Err:   fmt.Errorf("%w: want 1 <= from <= to <= %d", domain.ErrOutOfRange, ceiling),
		}
	}

	out := make([]domain.Conversion, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, uc.converter.Convert(strconv.Itoa(n), domain.DirectionEncode))
	}
	return out, nil
}
