package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microdog-go/internal/cli/output"
	"github.com/yndnr/microdog-go/internal/infra/buildinfo"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "microdog-cli",
		Usage:   "inspect MicroDog dumps and query the emulator",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			InspectCommand(),
			ResolveCommand(),
			QueryCommand(),
			HealthCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (memory image)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log load diagnostics to stderr",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Output  output.Format
	Wide    bool
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	format, _ := output.ParseFormat(c.String("output"))
	return &GlobalFlags{
		Output:  format,
		Wide:    c.Bool("wide"),
		Verbose: c.Bool("verbose"),
	}
}

// render writes data with the selected formatter.
func render(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	return output.NewFormatter(flags.Output, flags.Wide).Format(c.App.Writer, data)
}

// stderr returns the app's error writer.
func stderr(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// cliLogger logs to stderr: debug with --verbose, warnings otherwise.
func cliLogger(c *cli.Context) logger.Logger {
	level := "warn"
	if c.Bool("verbose") {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:  level,
		Format: "text",
		Output: stderr(c),
	})
	if err != nil {
		return logger.Discard()
	}
	return log
}

// PrintError prints an error message to stderr.
func PrintError(c *cli.Context, format string, args ...any) {
	fmt.Fprintf(stderr(c), "error: "+format+"\n", args...)
}
