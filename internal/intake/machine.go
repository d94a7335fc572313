package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/anketabot/core/logger"
	tghelpers "github.com/m3rciful/anketabot/core/telegram/helpers"
	"github.com/m3rciful/anketabot/internal/texts"
	"log/slog"
)

// Outcome classifies the result of feeding one message to a step.
type Outcome int

const (
	// OutcomeAdvanced means the input was accepted and the session moved to the next step.
	OutcomeAdvanced Outcome = iota
	// OutcomeRetry means validation failed; the session is untouched and the user is re-prompted.
	OutcomeRetry
	// OutcomeRejected means the age check failed; the session is cleared.
	OutcomeRejected
	// OutcomeCompleted means the form is done; the session is cleared and App carries the payload.
	OutcomeCompleted
)

// Input is one inbound text message attributed to a user.
type Input struct {
	UserID   int64
	Username string
	Text     string
}

// StepResult is the explicit product of one step: what to tell the user and,
// on completion, the assembled application.
type StepResult struct {
	Outcome Outcome
	Reply   string
	App     *Application
}

// Machine drives the application conversation. It owns no transport: it
// consumes Inputs and returns StepResults for the handler layer to deliver.
type Machine struct {
	store  Store
	minAge int
	now    func() time.Time
}

// NewMachine builds a Machine over the given store. A nil clock means time.Now.
func NewMachine(store Store, minAge int, now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{store: store, minAge: minAge, now: now}
}

// Start discards any previous session for the user and enters the name step.
func (m *Machine) Start(userID int64) {
	m.store.Clear(userID)
	m.store.Set(userID, Session{State: StateAwaitingName})
}

// InProgress reports whether the user has an active conversation.
func (m *Machine) InProgress(userID int64) bool {
	_, ok := m.store.Get(userID)
	return ok
}

// StateOf returns the user's current step, if any.
func (m *Machine) StateOf(userID int64) (State, bool) {
	sess, ok := m.store.Get(userID)
	return sess.State, ok
}

// Step consumes one input for the user's current step.
func (m *Machine) Step(ctx context.Context, in Input) StepResult {
	sess, ok := m.store.Get(in.UserID)
	if !ok {
		return StepResult{Outcome: OutcomeRetry, Reply: texts.UnknownText}
	}

	switch sess.State {
	case StateAwaitingName:
		return m.stepName(ctx, sess, in)
	case StateAwaitingBirthDate:
		return m.stepBirthDate(ctx, sess, in)
	case StateAwaitingNumber:
		return m.stepNumber(ctx, sess, in)
	default:
		logger.Warn(ctx, "intake", "fsm.unknown_state",
			slog.Int64("user_id", in.UserID),
			slog.String("state", string(sess.State)),
		)
		m.store.Clear(in.UserID)
		return StepResult{Outcome: OutcomeRetry, Reply: texts.UnknownText}
	}
}

func (m *Machine) stepName(ctx context.Context, sess Session, in Input) StepResult {
	tokens := strings.Fields(in.Text)
	if len(tokens) < 2 {
		return StepResult{Outcome: OutcomeRetry, Reply: texts.NameFormatError}
	}

	sess.UserID = in.UserID
	sess.Username = in.Username
	sess.FullName = in.Text
	sess.State = StateAwaitingBirthDate
	m.store.Set(in.UserID, sess)

	logger.Debug(ctx, "intake", "fsm.advance",
		slog.String("status", "ok"),
		slog.Int64("user_id", in.UserID),
		slog.String("state", string(StateAwaitingBirthDate)),
	)
	return StepResult{
		Outcome: OutcomeAdvanced,
		Reply:   fmt.Sprintf("Great, %s! %s", tokens[0], texts.NameOK),
	}
}

func (m *Machine) stepBirthDate(ctx context.Context, sess Session, in Input) StepResult {
	born, ok := tghelpers.ParseDayMonthYear(in.Text)
	if !ok {
		return StepResult{Outcome: OutcomeRetry, Reply: texts.DateFormatError}
	}

	age := ageAt(born, m.now())
	logger.Info(ctx, "intake", "age.computed",
		slog.Int64("user_id", in.UserID),
		slog.String("username", logger.SanitizeLimit(in.Username, 64)),
		slog.Int("age", age),
		slog.Int("min_age", m.minAge),
	)

	sess.BirthDate = in.Text
	sess.Age = age

	if age < m.minAge {
		// Terminal: the conversation ends here and the session is gone.
		m.store.Clear(in.UserID)
		logger.Info(ctx, "intake", "fsm.rejected",
			slog.Int64("user_id", in.UserID),
			slog.Int("age", age),
		)
		return StepResult{Outcome: OutcomeRejected, Reply: texts.BadBirthDate}
	}

	sess.State = StateAwaitingNumber
	m.store.Set(in.UserID, sess)
	return StepResult{Outcome: OutcomeAdvanced, Reply: texts.GoodBirthDate}
}

func (m *Machine) stepNumber(ctx context.Context, sess Session, in Input) StepResult {
	// Stored verbatim: phone formats vary too much to validate usefully here.
	sess.Phone = in.Text

	app := Application{
		UserID:    sess.UserID,
		Username:  sess.Username,
		FullName:  sess.FullName,
		BirthDate: sess.BirthDate,
		Age:       sess.Age,
		Phone:     sess.Phone,
	}
	m.store.Clear(in.UserID)

	logger.Info(ctx, "intake", "fsm.completed",
		slog.String("status", "ok"),
		slog.Int64("user_id", in.UserID),
	)
	return StepResult{Outcome: OutcomeCompleted, Reply: texts.End, App: &app}
}

// ageAt returns the age in whole years at the reference date: the year
// difference, minus one when the birthday has not yet occurred that year.
func ageAt(born, today time.Time) int {
	age := today.Year() - born.Year()
	if today.Month() < born.Month() ||
		(today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age
}
