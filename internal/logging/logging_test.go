package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/zulandar/flightdesk/internal/config"
)

func TestNew_NoFileIsNop(t *testing.T) {
	log, err := New(config.LogConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Infow("ignored", "k", 1)
}

func TestNew_WritesJSONWithSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fd.log")
	log, err := New(config.LogConfig{File: path, Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debugw("below level")
	log.Infow("plane created", "id", 7)
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d:\n%s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "plane created" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["id"] != float64(7) {
		t.Errorf("id = %v", entry["id"])
	}
	session, _ := entry["session"].(string)
	if _, err := uuid.Parse(session); err != nil {
		t.Errorf("session %q is not a uuid", session)
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LogConfig{File: filepath.Join(t.TempDir(), "fd.log"), Level: "loud"})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}
