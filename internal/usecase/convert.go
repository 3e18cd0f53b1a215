package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/ports"
	ucassert "github.com/aalvaropc/roman/internal/usecase/assert"
)

// Converter converts single inputs with a fixed codec.
type Converter struct {
	codec *domain.Codec
}

func NewConverter(codec *domain.Codec) *Converter {
	if codec == nil {
		codec = domain.DefaultCodec()
	}
	return &Converter{codec: codec}
}

func (c *Converter) Max() int { return c.codec.Max() }

// Convert converts input in direction dir (auto picks by the shape of input).
// Encode inputs are trimmed and parsed as base-10 integers; decode inputs are
// passed to the codec unchanged.
func (c *Converter) Convert(input string, dir domain.Direction) domain.Conversion {
	d := dir.Resolve(input)
	out := domain.Conversion{Input: input, Direction: d}

	switch d {
	case domain.DirectionEncode:
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if errors.Is(err, strconv.ErrRange) {
			out.Error = domain.NewConversionError(&domain.OpError{
				Op:    "roman.encode",
				Kind:  domain.KindOutOfRange,
				Input: input,
				Err:   fmt.Errorf("%w: want 1..%d", domain.ErrOutOfRange, c.codec.Max()),
			})
			return out
		}
		if err != nil {
			out.Error = &domain.ConversionError{
				Kind:    domain.KindUnrecognizedSymbol,
				Message: "not a base-10 integer",
			}
			return out
		}
		s, err := c.codec.Encode(n)
		if err != nil {
			out.Error = domain.NewConversionError(err)
			return out
		}
		out.Output = s

	default:
		n, err := c.codec.Decode(input)
		if err != nil {
			out.Error = domain.NewConversionError(err)
			return out
		}
		out.Output = strconv.Itoa(n)
	}
	return out
}

// ConvertBatch loads a batch, converts every item, checks expectations and
// optionally saves a report.
type ConvertBatch struct {
	batches   ports.BatchLoader
	converter *Converter
	store     ports.ReportStore
	now       func() time.Time
}

func NewConvertBatch(bl ports.BatchLoader, conv *Converter, store ports.ReportStore) *ConvertBatch {
	return &ConvertBatch{
		batches:   bl,
		converter: conv,
		store:     store,
		now:       time.Now,
	}
}

// Execute returns the report, the saved report id ("" when no store is set) and
// the first fatal error. Conversion failures are recorded in the report, not returned.
func (uc *ConvertBatch) Execute(ctx context.Context, batchPath string) (domain.BatchReport, string, error) {
	b, err := uc.batches.LoadBatch(batchPath)
	if err != nil {
		return domain.BatchReport{}, "", err
	}

	report, err := convertItems(ctx, uc.converter, uc.now, b)
	report.BatchPath = batchPath
	if err != nil {
		return report, "", err
	}

	return saveReport(uc.store, report)
}

// ConvertInputs converts ad-hoc inputs (arguments, stdin lines, JSON values).
type ConvertInputs struct {
	converter *Converter
	store     ports.ReportStore
	now       func() time.Time
}

func NewConvertInputs(conv *Converter, store ports.ReportStore) *ConvertInputs {
	return &ConvertInputs{converter: conv, store: store, now: time.Now}
}

func (uc *ConvertInputs) Execute(ctx context.Context, name string, dir domain.Direction, inputs []string) (domain.BatchReport, string, error) {
	b := domain.Batch{Name: name, Direction: dir, Items: make([]domain.BatchItem, 0, len(inputs))}
	for _, in := range inputs {
		b.Items = append(b.Items, domain.BatchItem{Input: in})
	}

	report, err := convertItems(ctx, uc.converter, uc.now, b)
	if err != nil {
		return report, "", err
	}
	return saveReport(uc.store, report)
}

func convertItems(ctx context.Context, conv *Converter, now func() time.Time, b domain.Batch) (domain.BatchReport, error) {
	report := domain.BatchReport{
		BatchName: b.Name,
		Max:       conv.Max(),
		StartedAt: now(),
		Results:   make([]domain.Conversion, 0, len(b.Items)),
	}

	for _, item := range b.Items {
		if err := ctx.Err(); err != nil {
			report.EndedAt = now()
			return report, err
		}

		dir := item.Direction
		if dir == "" {
			dir = b.Direction
		}

		c := conv.Convert(item.Input, dir)
		c.Assertions = ucassert.Evaluate(item, c)
		report.Results = append(report.Results, c)
	}

	report.EndedAt = now()
	return report, nil
}

func saveReport(store ports.ReportStore, report domain.BatchReport) (domain.BatchReport, string, error) {
	if store == nil {
		return report, "", nil
	}
	id, err := store.SaveReport(report)
	if err != nil {
		return report, "", err
	}
	return report, id, nil
}
