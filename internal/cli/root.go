package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/roman/internal/infra/logger"
	"github.com/aalvaropc/roman/internal/infra/workspacefinder"
	"github.com/aalvaropc/roman/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "roman",
		Short:        "roman: Roman numeral encoder/decoder",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := loadSettings("")
			if err != nil {
				return err
			}

			cleanup := setupLogger(st.root, debug)
			defer cleanup()

			deps := tui.Deps{
				WorkspaceLocator: workspacefinder.NewFinder(),
				Config:           st.cfg,
				Converter:        st.conv,
				Logger:           logger.L(),
				Debug:            debug,
			}
			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .roman/logs/roman.log")

	cmd.AddCommand(
		encodeCmd(),
		decodeCmd(),
		convertCmd(),
		tableCmd(),
		batchesCmd(),
		serveCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

// setupLogger opens the log file under the workspace root. Outside a
// workspace nothing is logged. Logging stays best-effort.
func setupLogger(root string, debug bool) func() {
	if root == "" {
		return func() {}
	}

	cleanup, err := logger.Setup(logger.Config{Root: root, Debug: debug})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}

func debugFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("debug")
	return v
}
