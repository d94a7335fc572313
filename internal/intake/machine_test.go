package intake

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/anketabot/internal/texts"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	}
}

func newTestMachine(minAge int, now func() time.Time) (*Machine, Store) {
	store := NewMemoryStore()
	return NewMachine(store, minAge, now), store
}

func TestNameStepRejectsShortNames(t *testing.T) {
	inputs := []string{"", "Ivan", "  Ivan  ", "\t"}
	for _, input := range inputs {
		m, store := newTestMachine(18, nil)
		m.Start(7)

		res := m.Step(context.Background(), Input{UserID: 7, Username: "ivan", Text: input})
		if res.Outcome != OutcomeRetry {
			t.Fatalf("input %q: outcome = %v, want retry", input, res.Outcome)
		}
		if res.Reply != texts.NameFormatError {
			t.Fatalf("input %q: reply = %q", input, res.Reply)
		}

		sess, ok := store.Get(7)
		if !ok || sess.State != StateAwaitingName {
			t.Fatalf("input %q: state = %v (present=%v), want awaiting_name", input, sess.State, ok)
		}
		if sess.FullName != "" || sess.Username != "" || sess.UserID != 0 {
			t.Fatalf("input %q: session mutated: %+v", input, sess)
		}
	}
}

func TestNameStepAdvances(t *testing.T) {
	m, store := newTestMachine(18, nil)
	m.Start(7)

	res := m.Step(context.Background(), Input{UserID: 7, Username: "ivan", Text: "Ivan Ivanov Ivanovich"})
	if res.Outcome != OutcomeAdvanced {
		t.Fatalf("outcome = %v, want advanced", res.Outcome)
	}
	if !strings.Contains(res.Reply, "Ivan") {
		t.Fatalf("reply %q should greet by given name", res.Reply)
	}

	sess, _ := store.Get(7)
	if sess.State != StateAwaitingBirthDate {
		t.Fatalf("state = %v, want awaiting_birth_date", sess.State)
	}
	if sess.FullName != "Ivan Ivanov Ivanovich" || sess.Username != "ivan" || sess.UserID != 7 {
		t.Fatalf("session = %+v", sess)
	}
}

func TestAgeAt(t *testing.T) {
	born := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.Local)
	cases := []struct {
		today time.Time
		want  int
	}{
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), 23},
		{time.Date(2024, time.June, 14, 0, 0, 0, 0, time.Local), 23},
		{time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local), 24},
		{time.Date(2024, time.June, 20, 0, 0, 0, 0, time.Local), 24},
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.Local), 24},
	}
	for _, tc := range cases {
		if got := ageAt(born, tc.today); got != tc.want {
			t.Fatalf("ageAt(%s) = %d, want %d", tc.today.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestBirthDateStepUnparseable(t *testing.T) {
	m, store := newTestMachine(18, fixedClock(2024, time.January, 1))
	m.Start(7)
	m.Step(context.Background(), Input{UserID: 7, Username: "ivan", Text: "Ivan Ivanov"})

	res := m.Step(context.Background(), Input{UserID: 7, Text: "not a date"})
	if res.Outcome != OutcomeRetry || res.Reply != texts.DateFormatError {
		t.Fatalf("result = %+v, want retry with format error", res)
	}

	sess, _ := store.Get(7)
	if sess.State != StateAwaitingBirthDate {
		t.Fatalf("state = %v, want awaiting_birth_date", sess.State)
	}
	if sess.BirthDate != "" || sess.Age != 0 {
		t.Fatalf("session mutated on invalid date: %+v", sess)
	}
}

func TestBirthDateStepAgeThreshold(t *testing.T) {
	// Reference date 2024-01-01: born 2006-06-15 -> 17, born 2005-06-15 -> 18.
	cases := []struct {
		date     string
		rejected bool
	}{
		{"15.06.2006", true},
		{"15.06.2005", false},
	}
	for _, tc := range cases {
		m, store := newTestMachine(18, fixedClock(2024, time.January, 1))
		m.Start(7)
		m.Step(context.Background(), Input{UserID: 7, Username: "ivan", Text: "Ivan Ivanov"})

		res := m.Step(context.Background(), Input{UserID: 7, Text: tc.date})
		if tc.rejected {
			if res.Outcome != OutcomeRejected || res.Reply != texts.BadBirthDate {
				t.Fatalf("date %s: result = %+v, want rejection", tc.date, res)
			}
			if _, ok := store.Get(7); ok {
				t.Fatalf("date %s: session should be cleared after rejection", tc.date)
			}
			// Without a fresh /start the machine has nothing to resume.
			if m.InProgress(7) {
				t.Fatalf("date %s: conversation should not be in progress", tc.date)
			}
		} else {
			if res.Outcome != OutcomeAdvanced || res.Reply != texts.GoodBirthDate {
				t.Fatalf("date %s: result = %+v, want advance", tc.date, res)
			}
			sess, _ := store.Get(7)
			if sess.State != StateAwaitingNumber || sess.Age != 18 || sess.BirthDate != tc.date {
				t.Fatalf("date %s: session = %+v", tc.date, sess)
			}
		}
	}
}

func TestNumberStepCompletes(t *testing.T) {
	m, store := newTestMachine(18, fixedClock(2024, time.January, 1))
	m.Start(7)
	m.Step(context.Background(), Input{UserID: 7, Username: "ivan", Text: "Ivan Ivanov Ivanovich"})
	m.Step(context.Background(), Input{UserID: 7, Text: "15.06.2000"})

	res := m.Step(context.Background(), Input{UserID: 7, Text: "+1234567890"})
	if res.Outcome != OutcomeCompleted || res.Reply != texts.End {
		t.Fatalf("result = %+v, want completion", res)
	}
	if res.App == nil {
		t.Fatal("completed step must carry the application")
	}

	want := Application{
		UserID:    7,
		Username:  "ivan",
		FullName:  "Ivan Ivanov Ivanovich",
		BirthDate: "15.06.2000",
		Age:       23,
		Phone:     "+1234567890",
	}
	if *res.App != want {
		t.Fatalf("application = %+v, want %+v", *res.App, want)
	}
	if _, ok := store.Get(7); ok {
		t.Fatal("session should be cleared after completion")
	}
}

func TestStartDiscardsPreviousSession(t *testing.T) {
	m, store := newTestMachine(18, nil)
	m.Start(7)
	m.Step(context.Background(), Input{UserID: 7, Username: "ivan", Text: "Ivan Ivanov"})

	m.Start(7)
	sess, ok := store.Get(7)
	if !ok || sess.State != StateAwaitingName {
		t.Fatalf("state after restart = %v (present=%v), want awaiting_name", sess.State, ok)
	}
	if sess.FullName != "" {
		t.Fatalf("restart kept stale data: %+v", sess)
	}
}

func TestStepWithoutSession(t *testing.T) {
	m, _ := newTestMachine(18, nil)
	res := m.Step(context.Background(), Input{UserID: 7, Text: "hello"})
	if res.Outcome != OutcomeRetry || res.Reply != texts.UnknownText {
		t.Fatalf("result = %+v, want unknown-text nudge", res)
	}
}
