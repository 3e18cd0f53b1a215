package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/infra/logger"
	"github.com/aalvaropc/roman/internal/ports"
	"github.com/aalvaropc/roman/internal/usecase"
	"github.com/aalvaropc/roman/internal/usecase/extract"
)

type convertOpts struct {
	workspace string
	batch     string
	jsonFile  string
	jsonPath  string
	stdin     bool
	direction string
	noSave    bool
	format    string
	ceiling   int
}

func convertCmd() *cobra.Command {
	var o convertOpts

	c := &cobra.Command{
		Use:   "convert [INPUT...]",
		Short: "Convert a batch file, JSON values, stdin lines or arguments and save a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.checkSources(args); err != nil {
				return err
			}

			st, err := loadSettings(o.workspace)
			if err != nil {
				return err
			}
			if err := st.withMax(cmd.Flags().Changed("max"), o.ceiling); err != nil {
				return err
			}
			out, err := resolveOutput(o.format, st.cfg)
			if err != nil {
				return err
			}

			cleanup := setupLogger(st.root, debugFlag(cmd))
			defer cleanup()
			log := logger.L()

			var (
				report   domain.BatchReport
				reportID string
			)
			if o.batch != "" {
				if st.root == "" {
					return fmt.Errorf("--batch needs a workspace (tip: run `roman init`)")
				}
				ws := newWorkspaceCtx(st)
				path, err := resolveBatchPath(ws, o.batch)
				if err != nil {
					return err
				}

				log.Info("convert.start", "batch_path", path, "max", st.conv.Max())
				report, reportID, err = usecase.NewConvertBatch(ws.batches, st.conv, o.store(ws)).Execute(cmd.Context(), path)
				if err != nil {
					log.Error("convert.failed", "batch_path", path, "err", err)
					return err
				}
			} else {
				dir, err := domain.ParseDirection(o.direction)
				if err != nil {
					return err
				}
				name, inputs, err := o.collectInputs(cmd.InOrStdin(), args)
				if err != nil {
					return err
				}

				var store ports.ReportStore
				if st.root != "" {
					store = o.store(newWorkspaceCtx(st))
				}

				log.Info("convert.start", "source", name, "inputs", len(inputs), "max", st.conv.Max())
				report, reportID, err = usecase.NewConvertInputs(st.conv, store).Execute(cmd.Context(), name, dir, inputs)
				if err != nil {
					log.Error("convert.failed", "source", name, "err", err)
					return err
				}
			}

			log.Info("convert.ok", "report_id", reportID, "items", len(report.Results), "failures", report.Failures())
			if err := printReport(cmd.OutOrStdout(), report, reportID, out); err != nil {
				return err
			}
			if n := report.Failures(); n > 0 {
				return fmt.Errorf("convert failed (%d failed item(s))", n)
			}
			return nil
		},
	}

	f := c.Flags()
	f.StringVarP(&o.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	f.StringVarP(&o.batch, "batch", "b", "", "Batch name or path")
	f.StringVar(&o.jsonFile, "json", "", "JSON file to read inputs from (with --path)")
	f.StringVar(&o.jsonPath, "path", "", "JSONPath expression selecting inputs, e.g. $.years[*]")
	f.BoolVar(&o.stdin, "stdin", false, "Read one input per line from stdin")
	f.StringVar(&o.direction, "direction", "auto", "encode|decode|auto (for arguments, stdin and JSON)")
	f.BoolVar(&o.noSave, "no-save", false, "Do not save a report under reports/")
	f.StringVar(&o.format, "format", "", "Output format: pretty|json|template (default from roman.yaml)")
	f.IntVar(&o.ceiling, "max", domain.MaxClassic, fmt.Sprintf("largest encodable value (1..%d)", domain.MaxExtended))
	return c
}

// checkSources requires exactly one input source.
func (o convertOpts) checkSources(args []string) error {
	n := 0
	for _, set := range []bool{o.batch != "", o.jsonFile != "", o.stdin, len(args) > 0} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return fmt.Errorf("nothing to convert (use --batch, --json, --stdin or arguments)")
	case n > 1:
		return fmt.Errorf("use only one of --batch, --json, --stdin or arguments")
	case o.jsonFile != "" && strings.TrimSpace(o.jsonPath) == "":
		return fmt.Errorf("--json needs --path")
	case o.jsonFile == "" && o.jsonPath != "":
		return fmt.Errorf("--path is only valid with --json")
	}
	return nil
}

func (o convertOpts) store(ws *workspaceCtx) ports.ReportStore {
	if o.noSave {
		return nil
	}
	return ws.store
}

// collectInputs returns a report name and the inputs from JSON, stdin or args.
func (o convertOpts) collectInputs(stdin io.Reader, args []string) (string, []string, error) {
	switch {
	case o.jsonFile != "":
		body, err := os.ReadFile(o.jsonFile)
		if err != nil {
			return "", nil, &domain.OpError{Op: "cli.convert", Kind: domain.KindNotFound, Path: o.jsonFile, Err: err}
		}
		inputs, err := extract.Inputs(body, o.jsonPath)
		if err != nil {
			return "", nil, err
		}
		return strings.TrimSuffix(filepath.Base(o.jsonFile), filepath.Ext(o.jsonFile)), inputs, nil

	case o.stdin:
		inputs, err := readLines(stdin)
		if err != nil {
			return "", nil, err
		}
		if len(inputs) == 0 {
			return "", nil, fmt.Errorf("no inputs on stdin")
		}
		return "stdin", inputs, nil

	default:
		return "args", args, nil
	}
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return out, nil
}
