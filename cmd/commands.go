package main

import (
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer application.Close()
			if address != "" {
				application.Config.Server.Address = address
			}
			if err := application.Serve(cmd.Context()); err != nil {
				reportError(cmd, "Server stopped", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "addr", "", "Listen address (overrides server.address)")
	return cmd
}

func newRoutesCmd() *cobra.Command {
	var (
		output  string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the generated route table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer application.Close()
			if err := application.ReportRoutes(cmd.Context(), output, noColor, cmd.OutOrStdout()); err != nil {
				reportError(cmd, "Route report failed", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the application database schema.",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer application.Close()
			if err := application.Migrate(cmd.Context()); err != nil {
				reportError(cmd, "Migration failed", err)
				return err
			}
			return nil
		},
	}
}
