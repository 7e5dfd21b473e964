package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zulandar/flightdesk/internal/airline"
	"github.com/zulandar/flightdesk/internal/config"
	"github.com/zulandar/flightdesk/internal/db"
	"github.com/zulandar/flightdesk/internal/logging"
	"github.com/zulandar/flightdesk/internal/prompt"
	"golang.org/x/term"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const defaultLogFile = "flightdesk.log"

// connOptions are the connection flags shared by every command that opens
// the database.
type connOptions struct {
	configPath     string
	driver         string
	host           string
	passwordPrompt bool
	logFile        string
}

// bind registers the connection flags on cmd and its subcommands.
func (o *connOptions) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "path to flightdesk config file")
	f.StringVar(&o.driver, "driver", "", "database driver: postgres, mysql or sqlite (overrides config)")
	f.StringVar(&o.host, "host", "", "database host (overrides config)")
	f.BoolVar(&o.passwordPrompt, "password-prompt", false, "read the database password from the terminal")
	f.StringVar(&o.logFile, "log-file", defaultLogFile, "session log file, overrides the config file's log.file when set; empty disables logging")
}

func newRootCmd() *cobra.Command {
	opts := &connOptions{}

	cmd := &cobra.Command{
		Use:   "fd <dbname> <port> <user>",
		Short: "Flightdesk: airline operations console",
		Long: `Flightdesk is a menu-driven console for airline operations staff.
It records planes, pilots, technicians and flights, books customers onto
flights and prints the standard maintenance and seating reports.`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts, args)
		},
	}

	opts.bind(cmd)
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd(opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fd %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

// readPassword reads a password from the terminal without echo.
var readPassword = func() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password-prompt needs an interactive terminal")
	}
	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// loadConfig builds the effective configuration: file (if any), flag
// overrides, then the positional <dbname> <port> <user>.
func loadConfig(cmd *cobra.Command, opts *connOptions, args []string) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Database.Driver = opts.driver
	}
	if flags.Changed("host") {
		cfg.Database.Host = opts.host
	}
	if flags.Changed("log-file") || opts.configPath == "" {
		cfg.Log.File = opts.logFile
	}

	if err := cfg.ApplyArgs(args[0], args[1], args[2]); err != nil {
		return nil, err
	}

	if opts.passwordPrompt {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		pw, err := readPassword()
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		cfg.Database.Password = pw
	}
	return cfg, nil
}

func runConsole(cmd *cobra.Command, opts *connOptions, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	fmt.Fprint(out, "Connecting to database...")
	gdb, err := db.Connect(cfg.Database)
	if err != nil {
		fmt.Fprintln(out, "failed")
		log.Errorw("connect failed", "target", db.Describe(cfg.Database), "error", err)
		return err
	}
	fmt.Fprintf(out, "Done\nConnected to %s\n\n", db.Describe(cfg.Database))
	log.Infow("connected", "target", db.Describe(cfg.Database))

	store := db.NewExecutor(gdb)
	defer func() {
		fmt.Fprint(out, "Disconnecting from database...")
		if err := store.Close(); err != nil {
			log.Warnw("close failed", "error", err)
		}
		fmt.Fprintln(out, "Done\n\nBye !")
	}()

	s := airline.NewSession(store, prompt.New(cmd.InOrStdin(), out), log, cfg.Limits)
	return runMenu(s)
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	color.NoColor = color.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(execute(newRootCmd()))
}
