package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/matzehuels/crossflow/pkg/config"
	"github.com/matzehuels/crossflow/pkg/errors"
)

// configCommand creates the config command for the application config file.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the application config",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand writes the default config to --config's path.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			printSuccess("Config written")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// configShowCommand prints the effective config after file and environment.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config (file plus CROSSFLOW_* overrides)",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yamlv3.Marshal(c.config)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			printKeyValue("Config file", c.configPath)
			printKeyValue("Cache backend", c.config.Cache.Backend)
			fmt.Fprintln(cmd.OutOrStdout())
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
