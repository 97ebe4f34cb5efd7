package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"doxy2js/pkg/config"
)

// Version information
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "doxy2js",
	Short: "Generate JavaScript API documentation from Doxygen XML",
	Long: `doxy2js reads the Doxygen XML of a SWIG-wrapped C/C++ module, normalizes it into
a documentation model (enums, methods, classes, variables) and renders that model
as JSDoc, Tern and YUIDoc documentation.`,
	Version:       getVersionString(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetCount("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")
		if quiet {
			commonlog.Configure(-4, nil)
			return
		}
		commonlog.Configure(verbose, nil)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("doxy2js %s\n", getVersionString())
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Date:    %s\n", date)
	},
}

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return version
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads --config, or the default file when present, and lets explicitly set
// flags override it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	optional := !cmd.Flags().Changed("config")
	if path == "" {
		path = config.DefaultFile
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("module") {
		cfg.Module, _ = flags.GetString("module")
	}
	if flags.Changed("input") {
		cfg.InputDir, _ = flags.GetString("input")
	}
	if flags.Changed("custom") {
		cfg.Custom, _ = flags.GetString("custom")
	}
	if flags.Changed("typemaps") {
		cfg.Typemaps, _ = flags.GetString("typemaps")
	}
	if flags.Changed("imagedir") {
		cfg.ImageDir, _ = flags.GetString("imagedir")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("enum-prefix") {
		cfg.EnumPrefix, _ = flags.GetString("enum-prefix")
	}
	if flags.Changed("formats") {
		cfg.Formats, _ = flags.GetStringSlice("formats")
	}
	if flags.Changed("outdir") {
		cfg.OutDir, _ = flags.GetString("outdir")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// addModuleFlags registers the flags shared by every command that assembles a model
func addModuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("module", "m", "", "Module (namespace) to document")
	cmd.Flags().StringP("input", "i", "xml", "Directory containing the Doxygen XML files")
	cmd.Flags().StringP("custom", "c", "", "Customization JSON overriding class methods")
	cmd.Flags().StringP("typemaps", "t", "", "Directory of SWIG typemap (.i) files")
	cmd.Flags().String("imagedir", "images", "Link prefix for images in descriptions")
	cmd.Flags().Bool("strict", false, "Leave out members with invalid types")
	cmd.Flags().String("enum-prefix", "", "Regexp stripped from enum member names (default ^<MODULE>_)")
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default "+config.DefaultFile+")")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all log output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
}
