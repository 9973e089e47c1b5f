// Command asnops parses ASN.1 OPERATION and ERROR definitions and prints
// them as JSON, YAML, or CBOR.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asnops"
	"github.com/golangsnmp/asnops/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or processing failure
)

type cli struct {
	verbose    int
	configPath string
	cfg        Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{
		cfg:    defaultConfig(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		cliutil.PrintError(stderr, "%v", err)
		return exitError
	}
	return exitOK
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "asnops",
		Short: "Parse ASN.1 OPERATION and ERROR definitions",
		Long: `asnops reads remote-operation and error definitions written in the ASN.1
notation of ROS/MAP-style protocol specifications and prints them as an
ordered catalog of argument, result, and parameter types with their codes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.PersistentFlags().CountVarP(&c.verbose, "verbose", "v", "enable debug logging (-vv for trace)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML configuration file (default $"+ConfigEnv+" or ./"+defaultConfigFile+")")

	root.AddCommand(c.newParseCmd())
	root.AddCommand(c.newListCmd())
	root.AddCommand(c.newNormalizeCmd())
	root.AddCommand(c.newLoadCmd())
	root.AddCommand(c.newPathsCmd())
	root.AddCommand(c.newVersionCmd())
	return root
}

func (c *cli) loadConfig() error {
	path := findConfigFile(c.configPath)
	if path == "" {
		return nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if logger := c.setupLogger(); logger != nil {
		logger.Debug("config loaded", slog.String("path", path))
	}
	return nil
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = asnops.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// parseOptions builds library options from global flags, config, and the
// command's --strict-duplicates flag.
func (c *cli) parseOptions(cmd *cobra.Command) []asnops.ParseOption {
	var opts []asnops.ParseOption
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, asnops.WithLogger(logger))
	}

	strict := c.cfg.Parse.StrictDuplicates
	if cmd.Flags().Changed("strict-duplicates") {
		strict, _ = cmd.Flags().GetBool("strict-duplicates")
	}
	if strict {
		opts = append(opts, asnops.WithStrictDuplicates())
	}
	return opts
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version := "(devel)"
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				version = info.Main.Version
			}
			_, err := fmt.Fprintf(c.stdout, "asnops %s\n", version)
			return err
		},
	}
}
