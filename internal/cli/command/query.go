package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microdog-go/internal/cli/connection"
	"github.com/yndnr/microdog-go/internal/cli/output"
	"github.com/yndnr/microdog-go/internal/server/config"
)

// QueryCommand asks a running server.
func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Ask a running microdog-server",
		ArgsUsage: "HEX...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "socket",
				Aliases: []string{"s"},
				Usage:   "Local socket path",
				EnvVars: []string{"MICRODOG_SOCKET"},
				Value:   config.DefaultLocalSocket,
			},
			&cli.StringFlag{
				Name:  "http",
				Usage: "Use the HTTP API at this address instead of the socket",
			},
		},
		Action: query,
	}
}

type resolveFunc func(request []byte) (uint32, bool, error)

func query(c *cli.Context) error {
	requests, err := hexArgs(c)
	if err != nil {
		return err
	}

	var resolveOne resolveFunc
	if addr := c.String("http"); addr != "" {
		client := connection.NewHTTPClient(addr)
		resolveOne = func(req []byte) (uint32, bool, error) {
			ctx, cancel := context.WithTimeout(c.Context, 10*time.Second)
			defer cancel()
			return client.Resolve(ctx, req)
		}
	} else {
		client := connection.NewSocketClient(c.String("socket"))
		defer client.Close()
		resolveOne = client.Resolve
	}

	rows := make([]ResultRow, len(requests))
	for i, req := range requests {
		resp, ok, err := resolveOne(req)
		if err != nil {
			return fmt.Errorf("query %s: %w", c.Args().Get(i), err)
		}
		rows[i] = newResultRow(c.Args().Get(i), resp, ok)
	}
	return render(c, rows)
}

// HealthCommand checks a server's HTTP health endpoint.
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check server health over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "http",
				Usage: "HTTP API address",
				Value: config.DefaultHTTPAddr,
			},
		},
		Action: health,
	}
}

func health(c *cli.Context) error {
	client := connection.NewHTTPClient(c.String("http"))

	ctx, cancel := context.WithTimeout(c.Context, 10*time.Second)
	defer cancel()

	result, err := client.Health(ctx)
	if err != nil {
		PrintError(c, "health check failed: %v", err)
		return fmt.Errorf("server unhealthy")
	}

	if ParseGlobalFlags(c).Output != output.FormatTable {
		return render(c, result)
	}
	if result["status"] == "healthy" {
		fmt.Fprintf(c.App.Writer, "✓ Server is healthy\n")
	} else {
		fmt.Fprintf(c.App.Writer, "✗ Server is unhealthy: %v\n", result["status"])
	}
	fmt.Fprintf(c.App.Writer, "  Target: %s\n", client.BaseURL())
	if n, ok := result["convert_entries"].(float64); ok {
		fmt.Fprintf(c.App.Writer, "  Entries: %.0f\n", n)
	}
	return nil
}
