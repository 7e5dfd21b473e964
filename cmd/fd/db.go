package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/flightdesk/internal/db"
	"gorm.io/gorm"
)

func newDBCmd(opts *connOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd(opts))
	cmd.AddCommand(newDBSeedCmd(opts))
	cmd.AddCommand(newDBResetCmd(opts))
	return cmd
}

// openDB loads the configuration for args and connects.
func openDB(cmd *cobra.Command, opts *connOptions, args []string) (*gorm.DB, string, error) {
	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return nil, "", err
	}
	target := db.Describe(cfg.Database)
	gdb, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, "", err
	}
	return gdb, target, nil
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
}

func newDBInitCmd(opts *connOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init <dbname> <port> <user>",
		Short: "Create the operations tables",
		Long:  "Creates or updates every operations table and index. Existing rows are kept.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, opts, args)
		},
	}
}

func runDBInit(cmd *cobra.Command, opts *connOptions, args []string) error {
	out := cmd.OutOrStdout()

	gdb, target, err := openDB(cmd, opts, args)
	if err != nil {
		return err
	}
	defer closeDB(gdb)
	fmt.Fprintf(out, "Connected to %s\n", target)

	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))
	fmt.Fprintln(out, "\nFlightdesk database initialized successfully.")
	return nil
}

func newDBSeedCmd(opts *connOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed <dbname> <port> <user>",
		Short: "Load reference data from a fixture file",
		Long: `Loads customers, planes, pilots, technicians and repairs from a YAML
fixture file. Rows whose id already exists are left unchanged.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBSeed(cmd, opts, file, args)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "path to fixture file")
	return cmd
}

func runDBSeed(cmd *cobra.Command, opts *connOptions, file string, args []string) error {
	out := cmd.OutOrStdout()

	fixtures, err := db.LoadFixtures(file)
	if err != nil {
		return err
	}

	gdb, target, err := openDB(cmd, opts, args)
	if err != nil {
		return err
	}
	defer closeDB(gdb)
	fmt.Fprintf(out, "Connected to %s\n", target)

	counts, err := db.Seed(gdb, fixtures)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d customers, %d planes, %d pilots, %d technicians, %d repairs from %s\n",
		counts.Customers, counts.Planes, counts.Pilots, counts.Technicians, counts.Repairs, file)
	return nil
}

func newDBResetCmd(opts *connOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset <dbname> <port> <user>",
		Short: "Drop and re-create the operations tables",
		Long: `Drops every operations table and creates them again, empty.
Asks for confirmation unless --yes is given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, opts, args, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, opts *connOptions, args []string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	if !skipConfirm && !confirmReset(cmd, args[0]) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	gdb, target, err := openDB(cmd, opts, args)
	if err != nil {
		return err
	}
	defer closeDB(gdb)
	fmt.Fprintf(out, "Connected to %s\n", target)

	if err := db.DropAll(gdb); err != nil {
		return err
	}
	fmt.Fprintf(out, "Dropped %d tables\n", len(db.AllModels()))
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))
	fmt.Fprintln(out, "\nFlightdesk database reset successfully.")
	return nil
}

func confirmReset(cmd *cobra.Command, dbName string) bool {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "WARNING: This will permanently delete all data in database %q.\n", dbName)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}
