package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
	cfio "github.com/matzehuels/crossflow/pkg/io"
)

// sampleCounts is a lightly loaded crossing used by the template command.
var sampleCounts = crossflow.Crossroad{
	North: crossflow.Movements{Left: 12, Front: 48, Right: 9, Turn: 1},
	South: crossflow.Movements{Left: 7, Front: 52, Right: 14, Turn: 0},
	West:  crossflow.Movements{Left: 5, Front: 21, Right: 6, Turn: 2},
	East:  crossflow.Movements{Left: 8, Front: 19, Right: 4, Turn: 0},
}

// templateCommand creates the template command, which writes an example
// counts file to start from.
func (c *CLI) templateCommand() *cobra.Command {
	var (
		withStyle bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "template [file]",
		Short: "Write an example counts file (.json or .toml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := cfio.FormatFromPath(path)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}

			var style *crossflow.Config
			if withStyle {
				cfg := c.config.Style.WithDefaults()
				style = &cfg
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := cfio.WriteDocument(f, cfio.NewDocument(sampleCounts, style), format); err != nil {
				return err
			}

			printSuccess("Template written")
			printFile(path)
			printNextStep("Build the option", "crossflow option "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withStyle, "with-style", false, "include the current style as a config table")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
