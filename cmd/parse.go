package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"doxy2js/pkg/assemble"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Assemble a module and output its documentation model as JSON",
	Long: `Assemble the documentation model of a module from its Doxygen XML and print it as
indented JSON. Keys keep the order of the XML, so the output is stable between runs.`,
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

		model, _, err := assemble.Assemble(opts)
		if err != nil {
			return fmt.Errorf("failed to assemble module %s: %w", cfg.Module, err)
		}

		data, err := model.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	addModuleFlags(parseCmd)
}
