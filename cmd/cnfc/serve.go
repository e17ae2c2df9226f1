package main

import (
	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/server"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve CNF conversion over HTTP",
	Long: `Serve starts an HTTP service converting grammars posted to /convert.
The service stops on interrupt, finishing requests in flight.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := server.New(cfg.Converter(), server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))
		pterm.Info.Println("cnfc " + chomsky.Version + " listening on " + addr)
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from configuration)")
	rootCmd.AddCommand(serveCmd)
}
