package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	apperrors "github.com/olusolaa/config-baseline-auditor/internal/errors"
)

var (
	networkOS   string
	skipExtract bool
	extractRaw  bool
	filterArgs  string
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the security sections of a configuration file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		out, err := application.ExtractFile(cmd.Context(), args[0], networkOS)
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize FILE",
	Short: "Print the normalized lines of a configuration file as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		lines, err := application.NormalizeFile(cmd.Context(), args[0], networkOS, !extractRaw)
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			return err
		}
		return writeJSON(cmd.OutOrStdout(), lines)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare RUNNING BASELINE",
	Short: "Compare one running configuration file against a baseline file.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		diff, err := application.CompareFiles(cmd.Context(), args[0], args[1], networkOS, skipExtract)
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			return err
		}
		if err := writeJSON(cmd.OutOrStdout(), diff); err != nil {
			return err
		}
		return checkDrift(cmd.ErrOrStderr(), diff, application.Config.Settings.FailOnDrift)
	},
}

// checkDrift turns a drifted comparison into a CodeDriftDetected error when
// failOnDrift is set, printing it to w.
func checkDrift(w io.Writer, diff domain.DiffResult, failOnDrift bool) error {
	if !failOnDrift || !diff.HasDifferences {
		return nil
	}
	err := apperrors.NewUserFacing(apperrors.CodeDriftDetected, diff.Summary, "Review the differences above or unset settings.fail_on_drift.")
	printError(w, err)
	return err
}

var filterCmd = &cobra.Command{
	Use:   "filter [NAME]",
	Short: "Invoke a named filter with JSON arguments read from --args or stdin.",
	Long: `Invoke one of the configuration filters the way a template host would.
Arguments are a JSON object of named arguments or a JSON array of positional
arguments. Without NAME the available filters are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			for _, name := range application.Filters.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		raw := []byte(filterArgs)
		if filterArgs == "" {
			raw, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return apperrors.Wrap(err, apperrors.CodeFilterArgs, "failed to read filter arguments")
			}
		}
		result, err := application.Filters.Invoke(cmd.Context(), args[0], raw)
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result)
	},
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported network OS tags and their extraction sections.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "Network OS\tPlatform\tSections")
		for _, tag := range domain.SupportedNetworkOS() {
			platform := domain.ResolvePlatform(tag)
			var names []string
			for _, s := range application.Extractor.Sections(platform) {
				names = append(names, s.Name)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", tag, platform, strings.Join(names, ", "))
		}
		return tw.Flush()
	},
}

func init() {
	for _, cmd := range []*cobra.Command{extractCmd, normalizeCmd, compareCmd} {
		cmd.Flags().StringVarP(&networkOS, "network-os", "n", "ios", "Network OS of the configuration (ios, nxos, eos, comware, ce)")
	}
	normalizeCmd.Flags().BoolVar(&extractRaw, "raw", false, "Normalize the whole file instead of its security sections")
	compareCmd.Flags().BoolVar(&skipExtract, "skip-extract", false, "Compare the whole running configuration")
	filterCmd.Flags().StringVar(&filterArgs, "args", "", "JSON arguments; read from stdin when empty")
}
