// Package cli provides the commentgen command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Someblueman/commentgen/internal/commentgen"
)

const rootLongDescription = `commentgen walks a source tree, finds TypeScript and JavaScript functions
without a leading comment and inserts a JSDoc block above each one:

  /**
   * Handles the function "greet".
   * @param name - parameter
   * @returns string
   */

Files listed in .commentignore (gitignore syntax) at the scan root are skipped.
Running it again on the same tree changes nothing.`

// runGenerator is swapped out in tests.
var runGenerator = commentgen.Run

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(stderr, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "commentgen [path]",
		Short:         "Insert JSDoc comments above undocumented functions",
		Long:          rootLongDescription,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfig(configPath); err != nil {
				return err
			}
			configureLogger()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, args, false)
		},
	}

	cmd.SetGlobalNormalizationFunc(normalizeFlagName)
	configureRootFlags(cmd, &configPath)

	cmd.AddCommand(newRunCmd(), newCheckCmd(), newInitCmd(), newVersionCmd())
	return cmd
}

func configureRootFlags(cmd *cobra.Command, configPath *string) {
	defaults := commentgen.DefaultOptions()
	flags := cmd.PersistentFlags()

	flags.StringP(pathFlagName, "p", defaultPath, "path to the folder to scan")
	bindFlagToConfig(flags.Lookup(pathFlagName), pathKey)

	flags.StringSlice(extFlagName, defaults.Extensions,
		"file extensions to scan, any of "+strings.Join(commentgen.SupportedExtensions(), " ")+" (can be repeated or comma separated)")
	bindFlagToConfig(flags.Lookup(extFlagName), extensionsKey)

	flags.String(ignoreFileFlagName, defaults.IgnoreFileName, "name of the ignore file looked up in the scan root")
	bindFlagToConfig(flags.Lookup(ignoreFileFlagName), ignoreFileKey)

	flags.StringArrayP(excludeFlagName, "x", nil, "extra gitignore-style pattern to skip (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeKey)

	flags.Bool(dryRunFlagName, false, "report what would change without writing files (alias --dry)")
	bindFlagToConfig(flags.Lookup(dryRunFlagName), dryRunKey)

	flags.Bool(diffFlagName, false, "print a unified diff for every changed file")
	bindFlagToConfig(flags.Lookup(diffFlagName), diffKey)

	flags.Uint64(seedFlagName, 0, "seed for the summary verb choice (0 = random)")
	bindFlagToConfig(flags.Lookup(seedFlagName), seedKey)

	flags.String(arrowPlacementFlagName, string(defaults.ArrowPlacement), "where comments for arrow functions go: statement or inline")
	bindFlagToConfig(flags.Lookup(arrowPlacementFlagName), arrowPlacementKey)

	flags.String(reportFlagName, "", "write a YAML run report to this file")
	bindFlagToConfig(flags.Lookup(reportFlagName), reportKey)

	flags.BoolP(verboseFlagName, "v", false, "debug logging and list ignored files")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(logLevelFlagName, defaultLogLevel, "log level: debug, info, warn or error")
	bindFlagToConfig(flags.Lookup(logLevelFlagName), logLevelKey)

	flags.String(logFormatFlagName, defaultLogFormat, "log format: text or json")
	bindFlagToConfig(flags.Lookup(logFormatFlagName), logFormatKey)

	flags.String(logOutputFlagName, defaultLogOutput, "log destination: stderr, stdout or file")
	bindFlagToConfig(flags.Lookup(logOutputFlagName), logOutputKey)

	flags.StringVar(configPath, configFlagName, "", "config file (default ./"+configFileName+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "dry" {
		name = dryRunFlagName
	}
	return pflag.NormalizedName(name)
}
