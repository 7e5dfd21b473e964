package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runFD executes the root command with input on stdin and returns its output.
func runFD(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// sqliteArgs returns the flags and positional arguments for the sqlite
// database at path, with logging disabled. sub goes before the positionals.
func sqliteArgs(path string, sub ...string) []string {
	args := []string{"--driver", "sqlite", "--log-file", ""}
	args = append(args, sub...)
	return append(args, path, "1", "")
}

const testFixtures = `
customers:
  - {id: 7, first_name: Ada, last_name: Lovelace, gender: F, dob: 1990-12-10, zipcode: "92507"}
  - {id: 8, first_name: Alan, last_name: Turing, gender: M}
planes:
  - {id: 1, make: Boeing, model: "737", year: 2001, seats: 2}
pilots:
  - {id: 1, full_name: Amelia Earhart, nationality: American}
technicians:
  - {id: 1, full_name: Grace Hopper}
repairs:
  - {id: 1, date: 2019-05-01, code: MX1, plane_id: 1, technician_id: 1}
  - {id: 2, date: 2020-01-15, code: MX2, plane_id: 1}
`

// initDB creates and seeds a sqlite database and returns its path.
func initDB(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ops.db")
	fixtures := filepath.Join(dir, "fixtures.yaml")
	if err := os.WriteFile(fixtures, []byte(testFixtures), 0o644); err != nil {
		t.Fatal(err)
	}

	if out, err := runFD(t, "", sqliteArgs(path, "db", "init")...); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}
	out, err := runFD(t, "", sqliteArgs(path, "db", "seed", "--file", fixtures)...)
	if err != nil {
		t.Fatalf("db seed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Seeded 2 customers, 1 planes, 1 pilots, 1 technicians, 2 repairs") {
		t.Fatalf("unexpected seed output: %s", out)
	}
	return path
}

func TestDBCmd_Help(t *testing.T) {
	out, err := runFD(t, "", "db", "--help")
	if err != nil {
		t.Fatalf("db --help failed: %v", err)
	}
	for _, want := range []string{"Database management", "init", "seed", "reset"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected help to contain %q, got: %s", want, out)
		}
	}
}

func TestDBInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.db")
	out, err := runFD(t, "", sqliteArgs(path, "db", "init")...)
	if err != nil {
		t.Fatalf("db init: %v", err)
	}
	if !strings.Contains(out, "Connected to sqlite:"+path) {
		t.Errorf("expected connection line, got: %s", out)
	}
	if !strings.Contains(out, "Migrated 9 tables") {
		t.Errorf("expected migrated count, got: %s", out)
	}
}

func TestDBSeed_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.db")
	_, err := runFD(t, "", sqliteArgs(path, "db", "seed", "--file", "/nonexistent/fixtures.yaml")...)
	if err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}

func TestDBReset_Aborted(t *testing.T) {
	path := initDB(t)
	out, err := runFD(t, "no\n", sqliteArgs(path, "db", "reset")...)
	if err != nil {
		t.Fatalf("db reset: %v", err)
	}
	if !strings.Contains(out, "Type \"yes\" to confirm") || !strings.Contains(out, "Aborted.") {
		t.Errorf("expected confirmation and abort, got: %s", out)
	}

	// Data survives an aborted reset.
	out, _ = runFD(t, "7\n10\n", sqliteArgs(path)...)
	if !strings.Contains(out, "(1 rows)") {
		t.Errorf("expected repairs to survive, got: %s", out)
	}
}

func TestDBReset_Confirmed(t *testing.T) {
	path := initDB(t)
	out, err := runFD(t, "yes\n", sqliteArgs(path, "db", "reset")...)
	if err != nil {
		t.Fatalf("db reset: %v", err)
	}
	if !strings.Contains(out, "Dropped 9 tables") || !strings.Contains(out, "reset successfully") {
		t.Errorf("unexpected reset output: %s", out)
	}

	out, _ = runFD(t, "7\n10\n", sqliteArgs(path)...)
	if !strings.Contains(out, "No rows.") {
		t.Errorf("expected empty repairs after reset, got: %s", out)
	}
}

func TestDBReset_SkipConfirm(t *testing.T) {
	path := initDB(t)
	out, err := runFD(t, "", sqliteArgs(path, "db", "reset", "--yes")...)
	if err != nil {
		t.Fatalf("db reset --yes: %v", err)
	}
	if strings.Contains(out, "Type \"yes\"") {
		t.Errorf("--yes should skip confirmation, got: %s", out)
	}
}
