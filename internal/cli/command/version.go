package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microdog-go/internal/cli/output"
	"github.com/yndnr/microdog-go/internal/infra/buildinfo"
)

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()
			if ParseGlobalFlags(c).Output == output.FormatTable {
				_, err := fmt.Fprintf(c.App.Writer, "microdog-cli %s\n", info)
				return err
			}
			return render(c, info)
		},
	}
}
