package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/config-baseline-auditor/internal/app"
	apperrors "github.com/olusolaa/config-baseline-auditor/internal/errors"
)

var (
	cfgFile     string
	logLevel    string
	logFormat   string
	reporter    string
	concurrency int
	failOnDrift bool
	showDiff    bool
)

var rootCmd = &cobra.Command{
	Use:   "baseline-auditor",
	Short: "Audits network device configurations against security baselines.",
	Long: `Baseline Auditor extracts the security-relevant sections of saved device
configurations (Cisco IOS/NX-OS/EOS, H3C Comware, Huawei VRP), normalizes them
and reports every baseline line that is missing or was changed on the device.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd)
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit every configured device (default command).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd)
	},
}

func runAudit(cmd *cobra.Command) error {
	application, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	if runErr := application.Run(cmd.Context()); runErr != nil {
		printError(cmd.ErrOrStderr(), runErr)
		return runErr
	}
	return nil
}

func bootstrap(ctx context.Context) (*app.Application, error) {
	application, err := app.BuildApplicationFromViper(ctx, viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", err)
		if msg, suggestion, ok := apperrors.GetUserFacingMessage(err); ok {
			fmt.Fprintf(os.Stderr, "Error Details: %s\n", msg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
		}
		return nil, err
	}
	return application, nil
}

func printError(w io.Writer, err error) {
	userMsg, suggestion, _ := apperrors.GetUserFacingMessage(err)
	fmt.Fprintf(w, "ERROR: %s\n", userMsg)
	if suggestion != "" {
		fmt.Fprintf(w, "Suggestion: %s\n", suggestion)
	}
}

func writeJSON(w io.Writer, v any) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode output")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is ./.baseline-auditor.yaml or $HOME/.baseline-auditor.yaml)")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	flags.StringVar(&reporter, "reporter", "text", "Report format (text, json)")
	flags.IntVar(&concurrency, "concurrency", 4, "Number of devices audited in parallel")
	flags.BoolVar(&failOnDrift, "fail-on-drift", false, "Exit non-zero when a device is drifted or cannot be audited")
	flags.BoolVar(&showDiff, "show-diff", false, "Print the rendered baseline diff of drifted devices (text reporter)")

	viper.BindPFlag("settings.log_level", flags.Lookup("log-level"))
	viper.BindPFlag("settings.log_format", flags.Lookup("log-format"))
	viper.BindPFlag("settings.reporter", flags.Lookup("reporter"))
	viper.BindPFlag("settings.concurrency", flags.Lookup("concurrency"))
	viper.BindPFlag("settings.fail_on_drift", flags.Lookup("fail-on-drift"))
	viper.BindPFlag("settings.reporter_config.text.show_diff", flags.Lookup("show-diff"))

	viper.SetEnvPrefix("AUDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(auditCmd, extractCmd, normalizeCmd, compareCmd, filterCmd, platformsCmd)
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".baseline-auditor")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}
	return nil
}
