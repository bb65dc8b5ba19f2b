package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microdog-go/internal/cli/output"
	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/core/loader"
)

// EntryRow is one convert table entry as printed by inspect --entries.
type EntryRow struct {
	Index    int    `json:"index" yaml:"index"`
	Length   int    `json:"length" yaml:"length"`
	Request  string `json:"request" yaml:"request"`
	Response string `json:"response" yaml:"response"`
}

func dumpFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "dump",
		Aliases: []string{"d"},
		Usage:   "Path to the device dump",
		EnvVars: []string{"MICRODOG_DUMP_PATH"},
		Value:   loader.DefaultDumpPath,
	}
}

// InspectCommand prints the identity and algorithm of a dump.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Load a dump and print the emulated device",
		Flags: []cli.Flag{
			dumpFlag(),
			&cli.BoolFlag{
				Name:  "entries",
				Usage: "List the convert table instead of the identity",
			},
		},
		Action: inspect,
	}
}

func inspect(c *cli.Context) error {
	rec, err := loader.Load(c.String("dump"), loader.WithLogger(cliLogger(c)))
	if err != nil {
		return fmt.Errorf("load dump: %w", err)
	}

	if c.Bool("entries") {
		return render(c, entryRows(rec))
	}
	if ParseGlobalFlags(c).Output == output.FormatTable {
		return loader.Describe(c.App.Writer, rec)
	}
	return render(c, rec.Summary())
}

func entryRows(rec *domain.TokenRecord) []EntryRow {
	rows := make([]EntryRow, rec.Len())
	for i := range rows {
		e := rec.Entry(i)
		rows[i] = EntryRow{
			Index:    i,
			Length:   e.RequestLen,
			Request:  domain.EncodeHex(e.Request),
			Response: fmt.Sprintf("%08X", e.Response),
		}
	}
	return rows
}
