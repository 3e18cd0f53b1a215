package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/infra/httpserver"
	"github.com/aalvaropc/roman/internal/infra/logger"
)

func serveCmd() *cobra.Command {
	var addr string
	var ceiling int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /roman/{n} and GET /arabic/{numeral} over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := loadSettings("")
			if err != nil {
				return err
			}
			if err := st.withMax(cmd.Flags().Changed("max"), ceiling); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				st.cfg.Server.Addr = addr
			}

			cleanup := setupLogger(st.root, debugFlag(cmd))
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			srv := httpserver.New(st.conv,
				httpserver.WithAddr(st.cfg.Server.Addr),
				httpserver.WithLogger(logger.L()),
				httpserver.WithReady(func(a net.Addr) {
					fmt.Fprintf(w, "Listening on http://%s (max=%d)\n", a, st.conv.Max())
				}),
			)
			return srv.Run(ctx)
		},
	}

	c.Flags().StringVar(&addr, "addr", httpserver.DefaultAddr, "listen address (default from roman.yaml or ROMAN_ADDR)")
	c.Flags().IntVar(&ceiling, "max", domain.MaxClassic, fmt.Sprintf("largest encodable value (1..%d)", domain.MaxExtended))
	return c
}
