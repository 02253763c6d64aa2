package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Someblueman/commentgen/internal/commentgen"
)

var bannerColor = color.New(color.FgCyan)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [path]",
		Short: "Run the comment generator",
		Long: `Scan the given path (or --path, default ./) and insert a comment block above
every function declaration and arrow function binding that has none.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, args, false)
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Fail when undocumented functions exist",
		Long: `Scan like run but never write. Exits with status 1 when at least one
function would receive a comment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, args, true)
		},
	}
}

func generate(cmd *cobra.Command, args []string, check bool) error {
	opts, err := optionsFromConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		opts.Path = args[0]
	}
	opts.Check = check

	out := cmd.OutOrStdout()
	opts.Reporter = commentgen.NewConsoleReporter(out, viper.GetBool(logVerboseKey))

	if check {
		fmt.Fprintln(out, bannerColor.Sprint("🧠 Checking for undocumented functions..."))
	} else {
		fmt.Fprintln(out, bannerColor.Sprint("🧠 Running comment generator..."))
	}

	report, err := runGenerator(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if path := viper.GetString(reportKey); path != "" {
		if err := commentgen.WriteReport(path, report); err != nil {
			return err
		}
	}

	if check && report.AddedCount() > 0 {
		files := 0
		for _, f := range report.Files {
			if f.Added > 0 {
				files++
			}
		}
		return &ExitError{
			Code:    1,
			Message: fmt.Sprintf("%d undocumented function(s) in %d file(s)", report.AddedCount(), files),
		}
	}
	return nil
}
