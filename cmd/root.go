package cmd

import (
	"strings"

	"codecollector/pkg/combine"
	"codecollector/pkg/ignore"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that mirror the flags,
// e.g. CODECOLLECTOR_OUTPUT or CODECOLLECTOR_NO_TREE.
const EnvPrefix = "CODECOLLECTOR"

// Flag names.
const (
	flagExtensions   = "extensions"
	flagOutput       = "output"
	flagExclude      = "exclude"
	flagNoTree       = "no-tree"
	flagNoIgnore     = "no-ignore"
	flagIgnoreEngine = "ignore-engine"
	flagMaxSize      = "max-size"
	flagClipboard    = "clipboard"
	flagDebug        = "debug"
)

// NewRootCmd builds the codecollector command with its subcommands.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "codecollector [start_dir]",
		Short: "Consolidate a codebase into a single prompt file",
		Long: `codecollector walks a directory tree, keeps files with the requested extensions,
honors .gitignore files and excluded directory names, strips comments, imports and
package declarations, and writes everything into one text file preceded by an
ASCII tree of the directory structure.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(v.GetBool(flagDebug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd, args, v)
		},
	}

	flags := rootCmd.Flags()
	flags.StringSliceP(flagExtensions, "e", combine.DefaultExtensions, "File extensions to include, comma-separated (e.g. -e .py,.js)")
	flags.StringP(flagOutput, "o", combine.DefaultOutput, "Name of the output file")
	flags.StringSliceP(flagExclude, "x", combine.DefaultExcludeDirs, "Directory names to exclude anywhere in the tree, comma-separated")
	flags.Bool(flagNoTree, false, "Do not write the ASCII tree at the top of the output")
	flags.Bool(flagNoIgnore, false, "Do not honor .gitignore files")
	flags.String(flagIgnoreEngine, string(ignore.EngineGit), "Ignore pattern engine: gitignore or regexp")
	flags.Int(flagMaxSize, 0, "Replace files larger than this many KB with a placeholder (0 disables)")
	flags.BoolP(flagClipboard, "c", false, "Copy the output to the clipboard")
	rootCmd.PersistentFlags().Bool(flagDebug, false, "Enable debug logging")

	bindFlags(v, flags, rootCmd.PersistentFlags())

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// bindFlags lets every flag be set from the environment. Flags given on the
// command line take precedence.
func bindFlags(v *viper.Viper, flagSets ...*pflag.FlagSet) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, fs := range flagSets {
		_ = v.BindPFlags(fs)
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// listValue reads a list flag. Environment values arrive as one string and
// are split on commas only; GetStringSlice would split them on whitespace.
func listValue(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		return splitList([]string{raw})
	}
	return splitList(v.GetStringSlice(key))
}

// splitList flattens comma-separated list values. Values coming from the
// environment arrive as a single string. Spaces inside an entry are kept so
// directory names like "My Docs" survive.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
