package cmd

import (
	"fmt"

	"github.com/nikogura/cover-tailor/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter configuration file",
	Long: `Create a starter configuration file with placeholder values.

Fill in your contact details and Groq API key before running generate. The
API key can also be supplied via the GROQ_API_KEY environment variable or a
local .env file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	err = config.InitConfig(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to initialize config")
		return err
	}

	path := getConfigFile()
	if path == "" {
		path = "$HOME/.cover-tailor/config.json"
	}
	fmt.Printf("Created config at %s - fill in your contact details and API key.\n", path)

	return err
}
