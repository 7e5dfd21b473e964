// Package airline implements the operator workflows: entity creation,
// flight booking and the fixed reports. Each workflow has a pure operation
// taking a *db.Executor and an interactive Add/Book/List shell driven by a
// Session.
package airline

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/flightdesk/internal/config"
	"github.com/zulandar/flightdesk/internal/db"
	"github.com/zulandar/flightdesk/internal/prompt"
	"github.com/zulandar/flightdesk/internal/validate"
	"go.uber.org/zap"
)

var (
	ErrDuplicate         = errors.New("airline: already exists")
	ErrNotFound          = errors.New("airline: not found")
	ErrNoPlaneAssigned   = errors.New("airline: flight has no assigned plane")
	ErrInvalidTransition = errors.New("airline: invalid reservation transition")
)

// Session carries everything a workflow needs. One Session lives for the
// whole menu loop.
type Session struct {
	Store  *db.Executor
	Prompt *prompt.Prompter
	Log    *zap.SugaredLogger
	Limits config.Limits
	Now    func() time.Time
}

// NewSession wires a session using the wall clock.
func NewSession(store *db.Executor, p *prompt.Prompter, log *zap.SugaredLogger, limits config.Limits) *Session {
	return &Session{Store: store, Prompt: p, Log: log, Limits: limits, Now: time.Now}
}

// Describe turns a workflow error into the one-line message shown to the
// operator.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrDuplicate):
		return "That record already exists; nothing was saved."
	case errors.Is(err, ErrNotFound):
		return "A referenced record no longer exists; nothing was saved."
	case errors.Is(err, ErrNoPlaneAssigned):
		return "The flight has no plane assigned, so its seats cannot be checked."
	case errors.Is(err, ErrInvalidTransition):
		return "The reservation changed while you were working; nothing was saved."
	default:
		return "The operation failed. Please try again."
	}
}

func (s *Session) intro() {
	s.Prompt.Println("Please enter the following information:")
}

// askNewID asks for a positive id that query (one ? for the id) does not find.
func (s *Session) askNewID(label, what, query string) (int, error) {
	positive := validate.IntAtLeast(1)
	return prompt.Ask(s.Prompt, label, func(raw string) (int, error) {
		id, err := positive(raw)
		if err != nil {
			return 0, err
		}
		exists, err := s.Store.Exists(query, id)
		if err != nil {
			return 0, err
		}
		if exists {
			return 0, validate.Errorf("%s %d already exists. Please enter a different %s", what, id, label)
		}
		return id, nil
	})
}

// askExistingID asks for an id that query (one ? for the id) finds.
func (s *Session) askExistingID(label, what, query string) (int, error) {
	return prompt.Ask(s.Prompt, label, func(raw string) (int, error) {
		id, err := validate.Int(raw)
		if err != nil {
			return 0, err
		}
		exists, err := s.Store.Exists(query, id)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, validate.Errorf("%s %d does not exist. Please enter a valid %s", what, id, label)
		}
		return id, nil
	})
}

// askDate asks for year, month and day separately and composes YYYY-M-D.
// Years are limited to the configured window starting at the current year.
func (s *Session) askDate(label string) (string, error) {
	current := s.Now().Year()
	return s.askDateParts(label, fmt.Sprintf("%s year (%d-%d)", label, current, current+s.Limits.DateWindowYears),
		validate.YearWindow(current, s.Limits.DateWindowYears))
}

// askPastOrFutureDate is askDate for looking up existing records: any
// positive year is accepted.
func (s *Session) askPastOrFutureDate(label string) (string, error) {
	return s.askDateParts(label, label+" year", validate.IntAtLeast(1))
}

func (s *Session) askDateParts(label, yearLabel string, yearRule validate.Func[int]) (string, error) {
	year, err := prompt.Ask(s.Prompt, yearLabel, yearRule)
	if err != nil {
		return "", err
	}
	month, err := prompt.Ask(s.Prompt, label+" month (1-12)", validate.Month)
	if err != nil {
		return "", err
	}
	day, err := prompt.Ask(s.Prompt, label+" day (1-31)", validate.Day)
	if err != nil {
		return "", err
	}
	return validate.ComposeDate(year, month, day), nil
}

// nextID returns MAX(column)+1 for table. Call it inside the transaction that
// inserts the row.
func nextID(tx *db.Executor, table, column string) (int, error) {
	var id int
	q := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) + 1 FROM %s", column, table)
	if err := tx.Row(q).Scan(&id); err != nil {
		return 0, fmt.Errorf("airline: next %s.%s: %w", table, column, err)
	}
	return id, nil
}

// insertErr classifies an insert failure.
func insertErr(what string, id int, err error) error {
	if db.IsDuplicateKey(err) {
		return fmt.Errorf("%w: %s %d", ErrDuplicate, what, id)
	}
	return fmt.Errorf("airline: insert %s %d: %w", what, id, err)
}
