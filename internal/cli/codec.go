package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/infra/logger"
	"github.com/aalvaropc/roman/internal/usecase"
)

func encodeCmd() *cobra.Command {
	return codecCmd(domain.DirectionEncode, "encode N...", "Encode integers as canonical Roman numerals")
}

func decodeCmd() *cobra.Command {
	return codecCmd(domain.DirectionDecode, "decode NUMERAL...", "Decode canonical Roman numerals")
}

func codecCmd(dir domain.Direction, use, short string) *cobra.Command {
	var ceiling int
	var format string

	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings("")
			if err != nil {
				return err
			}
			if err := st.withMax(cmd.Flags().Changed("max"), ceiling); err != nil {
				return err
			}
			out, err := resolveOutput(format, st.cfg)
			if err != nil {
				return err
			}

			cleanup := setupLogger(st.root, debugFlag(cmd))
			defer cleanup()

			convs := convertAll(st.conv, dir, args)
			if err := printConversions(cmd.OutOrStdout(), convs, out); err != nil {
				return err
			}

			if n := countFailedConversions(convs); n > 0 {
				logger.L().Warn(string(dir)+".failed", "failed", n, "total", len(convs))
				return fmt.Errorf("%d of %d input(s) failed", n, len(convs))
			}
			return nil
		},
	}

	c.Flags().IntVar(&ceiling, "max", domain.MaxClassic, fmt.Sprintf("largest encodable value (1..%d)", domain.MaxExtended))
	c.Flags().StringVar(&format, "format", "", "Output format: pretty|json|template (default from roman.yaml)")
	return c
}

func convertAll(conv *usecase.Converter, dir domain.Direction, inputs []string) []domain.Conversion {
	out := make([]domain.Conversion, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, conv.Convert(in, dir))
	}
	return out
}

func tableCmd() *cobra.Command {
	var from, to, ceiling int
	var format string

	c := &cobra.Command{
		Use:   "table",
		Short: "Print numerals for a range of integers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := loadSettings("")
			if err != nil {
				return err
			}
			if err := st.withMax(cmd.Flags().Changed("max"), ceiling); err != nil {
				return err
			}
			out, err := resolveOutput(format, st.cfg)
			if err != nil {
				return err
			}

			rows, err := usecase.NewTable(st.conv).Execute(from, to)
			if err != nil {
				return err
			}
			return printConversions(cmd.OutOrStdout(), rows, out)
		},
	}

	c.Flags().IntVar(&from, "from", 1, "first integer")
	c.Flags().IntVar(&to, "to", 22, "last integer")
	c.Flags().IntVar(&ceiling, "max", domain.MaxClassic, fmt.Sprintf("largest encodable value (1..%d)", domain.MaxExtended))
	c.Flags().StringVar(&format, "format", "", "Output format: pretty|json|template (default from roman.yaml)")
	return c
}
