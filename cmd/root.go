package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/cloud-resource-api/internal/app"
	apperrors "github.com/olusolaa/cloud-resource-api/internal/errors"
)

var (
	cfgFile      string
	logLevel     string
	logFormat    string
	platformType string
	protectedTag string
)

var rootCmd = &cobra.Command{
	Use:   "cloud-api",
	Short: "Serves cloud infrastructure resources as a REST API.",
	Long: `cloud-api exposes compute, security, networking, block storage and object
storage resources of a cloud provider as hyperlinked REST endpoints. Each
request may carry its own provider credentials; applications are kept in a
local database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .cloud-api.yaml in . or $HOME)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&platformType, "platform", "", "Override platform type (aws, memory)")
	rootCmd.PersistentFlags().StringVar(&protectedTag, app.ProtectedTagFlag, "", "Only modify provider objects carrying this tag (e.g. 'managed-by=cloud-api')")

	_ = viper.BindPFlag("settings.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("settings.log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("platform.type", rootCmd.PersistentFlags().Lookup("platform"))
	_ = viper.BindPFlag(app.ProtectedTagFlag, rootCmd.PersistentFlags().Lookup(app.ProtectedTagFlag))

	viper.SetEnvPrefix("CLOUDAPI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(newServeCmd(), newRoutesCmd(), newMigrateCmd())
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".cloud-api")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using configuration file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}
	return nil
}

// bootstrap builds the application and reports user-facing failures on
// stderr.
func bootstrap(cmd *cobra.Command) (*app.Application, error) {
	application, err := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
	if err != nil {
		reportError(cmd, "Application initialization failed", err)
		return nil, err
	}
	return application, nil
}

func reportError(cmd *cobra.Command, what string, err error) {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "ERROR: %s: %v\n", what, err)
	if appErr := (*apperrors.AppError)(nil); errors.As(err, &appErr) && appErr.IsUserFacing {
		fmt.Fprintf(w, "Error Details: %s\n", appErr.Message)
		if appErr.SuggestedAction != "" {
			fmt.Fprintf(w, "Suggestion: %s\n", appErr.SuggestedAction)
		}
	}
}
