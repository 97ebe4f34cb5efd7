package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"doxy2js/pkg/assemble"
	"doxy2js/pkg/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate JavaScript documentation for a module",
	Long: `Assemble the documentation model of a module from its Doxygen XML and render it in
every requested format. Each format is written to <outdir>/<format>/<module>/.`,
	Example: `  doxy2js generate --module mraa --input build/xml
  doxy2js generate -m upm -i xml --custom custom.json --strict
  doxy2js generate --formats jsdoc,ternjs --outdir docs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts, err := cfg.AssembleOptions()
		if err != nil {
			return err
		}

		model, report, err := assemble.Assemble(opts)
		if err != nil {
			return fmt.Errorf("failed to assemble module %s: %w", cfg.Module, err)
		}

		var failed []string
		for _, r := range generator.Run(model, cfg.OutDir, cfg.Formats) {
			if r.Err != nil {
				log.Errorf("%s", r.Err)
				failed = append(failed, r.Format)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Format, r.Path)
		}

		printSummary(cmd, report)

		if len(failed) > 0 {
			return fmt.Errorf("generation failed for: %s", strings.Join(failed, ", "))
		}
		return nil
	},
}

func printSummary(cmd *cobra.Command, report *assemble.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Omitted classes:   %d\n", len(report.ClassErrors))
	fmt.Fprintf(out, "Omitted members:   %d\n", len(report.Extraction.Failures))
	fmt.Fprintf(out, "Customization:     %d problem(s)\n", len(report.Customization))
	fmt.Fprintf(out, "Invalid types:     %d\n", len(report.InvalidTypes))
	fmt.Fprintf(out, "Warnings:          %d\n", len(report.Warnings)+len(report.Extraction.Warnings))
}

func init() {
	addModuleFlags(generateCmd)
	generateCmd.Flags().StringSliceP("formats", "f", generator.Formats, "Output formats ("+strings.Join(generator.Formats, ", ")+")")
	generateCmd.Flags().StringP("outdir", "o", "jsdoc", "Root directory of the generated documentation")
}
