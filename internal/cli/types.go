package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/packman/pkg/deps"
)

// typesCommand creates the types command, which lists the package-manager
// types accepted by --type-override.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported package-manager types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := c.out()
			for _, t := range deps.Types {
				printKeyValue(w, t.String(), t.Forge())
			}
		},
	}
}
