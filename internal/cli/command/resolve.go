package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/core/loader"
	"github.com/yndnr/microdog-go/internal/core/service"
)

// ResultRow is the answer to one challenge.
type ResultRow struct {
	Request  string `json:"request" yaml:"request"`
	Found    bool   `json:"found" yaml:"found"`
	Response string `json:"response,omitempty" yaml:"response,omitempty"`
}

func newResultRow(request string, response uint32, ok bool) ResultRow {
	row := ResultRow{Request: strings.ToUpper(request), Found: ok}
	if ok {
		row.Response = fmt.Sprintf("%08X", response)
	}
	return row
}

// ResolveCommand answers challenges from a dump without a server.
func ResolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Answer challenges offline from a dump",
		ArgsUsage: "HEX...",
		Flags:     []cli.Flag{dumpFlag()},
		Action:    resolve,
	}
}

func resolve(c *cli.Context) error {
	requests, err := hexArgs(c)
	if err != nil {
		return err
	}

	rec, err := loader.Load(c.String("dump"), loader.WithLogger(cliLogger(c)))
	if err != nil {
		return fmt.Errorf("load dump: %w", err)
	}
	r := service.NewResolver(rec)

	rows := make([]ResultRow, len(requests))
	for i, req := range requests {
		resp, ok := r.Resolve(req)
		rows[i] = newResultRow(c.Args().Get(i), resp, ok)
	}
	return render(c, rows)
}

// hexArgs decodes every positional argument as a hex challenge.
func hexArgs(c *cli.Context) ([][]byte, error) {
	if c.NArg() == 0 {
		return nil, fmt.Errorf("at least one HEX challenge is required")
	}
	out := make([][]byte, c.NArg())
	for i, arg := range c.Args().Slice() {
		b, err := domain.DecodeHex(arg)
		if err != nil {
			return nil, fmt.Errorf("challenge %q: %w", arg, err)
		}
		out[i] = b
	}
	return out, nil
}
