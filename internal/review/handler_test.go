package review

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/m3rciful/anketabot/internal/intake"
	"github.com/m3rciful/anketabot/internal/texts"

	tele "gopkg.in/telebot.v4"
)

type courierCall struct {
	to   tele.Recipient
	what interface{}
	opts []interface{}
}

type fakeCourier struct {
	calls []courierCall
	err   error
}

func (f *fakeCourier) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.calls = append(f.calls, courierCall{to: to, what: what, opts: opts})
	if f.err != nil {
		return nil, f.err
	}
	return &tele.Message{}, nil
}

// fakeCtx implements just enough of tele.Context for the handlers under test.
// Unoverridden methods panic via the nil embedded interface, which is the
// point: the handlers must not touch anything else.
type fakeCtx struct {
	tele.Context
	sender *tele.User
	cb     *tele.Callback
	store  map[string]interface{}
	sent   []interface{}
}

func (f *fakeCtx) Sender() *tele.User { return f.sender }

func (f *fakeCtx) Chat() *tele.Chat {
	if f.sender == nil {
		return nil
	}
	return &tele.Chat{ID: f.sender.ID}
}

func (f *fakeCtx) Update() tele.Update { return tele.Update{ID: 1} }

func (f *fakeCtx) Callback() *tele.Callback { return f.cb }

func (f *fakeCtx) Get(key string) interface{} { return f.store[key] }

func (f *fakeCtx) Set(key string, v interface{}) {
	if f.store == nil {
		f.store = make(map[string]interface{})
	}
	f.store[key] = v
}

func (f *fakeCtx) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func reviewerCtx(unique string, payload string) *fakeCtx {
	return &fakeCtx{
		sender: &tele.User{ID: 999, Username: "reviewer"},
		cb:     &tele.Callback{Data: "\f" + unique + "|" + payload},
	}
}

func recipientID(t *testing.T, r tele.Recipient) string {
	t.Helper()
	if r == nil {
		t.Fatal("nil recipient")
	}
	return r.Recipient()
}

func TestNotificationText(t *testing.T) {
	app := intake.Application{
		UserID:    42,
		Username:  "ivan",
		FullName:  "Ivan Ivanov Ivanovich",
		BirthDate: "15.06.2000",
		Age:       23,
		Phone:     "+1234567890",
	}
	want := "✅ New application\nUser: @ivan\nName: Ivan Ivanov Ivanovich\nBirth date: 15.06.2000 (23)\nPhone: +1234567890"
	if got := NotificationText(app); got != want {
		t.Fatalf("notification text:\n got %q\nwant %q", got, want)
	}
}

func TestDecisionKeyboard(t *testing.T) {
	markup := DecisionKeyboard(42)
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	accept := markup.InlineKeyboard[0][0]
	decline := markup.InlineKeyboard[1][0]

	if accept.Unique != CallbackAccept || accept.Data != "42" {
		t.Fatalf("accept button = %+v", accept)
	}
	if decline.Unique != CallbackDecline || decline.Data != "42" {
		t.Fatalf("decline button = %+v", decline)
	}
	if !strings.Contains(accept.Text, "Accept") || !strings.Contains(decline.Text, "Decline") {
		t.Fatalf("button labels = %q / %q", accept.Text, decline.Text)
	}
}

func TestForwardApplicationDeliversToReviewer(t *testing.T) {
	courier := &fakeCourier{}
	h := &Handler{ReviewerID: 999, Courier: courier}
	app := intake.Application{UserID: 42, Username: "ivan", FullName: "Ivan Ivanov", BirthDate: "15.06.2000", Age: 23, Phone: "+1"}

	if err := h.ForwardApplication(&fakeCtx{sender: &tele.User{ID: 42}}, app); err != nil {
		t.Fatalf("forward: %v", err)
	}
	if len(courier.calls) != 1 {
		t.Fatalf("courier calls = %d, want 1", len(courier.calls))
	}

	call := courier.calls[0]
	if got := recipientID(t, call.to); got != "999" {
		t.Fatalf("recipient = %s, want reviewer 999", got)
	}
	if call.what != NotificationText(app) {
		t.Fatalf("body = %v", call.what)
	}
	if len(call.opts) != 1 {
		t.Fatalf("opts = %d, want decision keyboard", len(call.opts))
	}
	if _, ok := call.opts[0].(*tele.ReplyMarkup); !ok {
		t.Fatalf("opt = %T, want *tele.ReplyMarkup", call.opts[0])
	}
}

func TestForwardApplicationSwallowsDeliveryFailure(t *testing.T) {
	courier := &fakeCourier{err: errors.New("telegram: Forbidden")}
	h := &Handler{ReviewerID: 999, Courier: courier}

	err := h.ForwardApplication(&fakeCtx{sender: &tele.User{ID: 42}}, intake.Application{UserID: 42})
	if err != nil {
		t.Fatalf("delivery failure must not propagate, got %v", err)
	}
}

func TestAcceptIssuesTokenAndNotifies(t *testing.T) {
	courier := &fakeCourier{}
	h := &Handler{
		ReviewerID:    999,
		Issuer:        StaticIssuer{Token: "ABRAKADABRA-sd-125xx-a"},
		OnboardingURL: "https://example.com",
		Courier:       courier,
	}
	c := reviewerCtx(CallbackAccept, "42")

	if err := h.Accept(c); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// Reviewer sees the issued token in the handled chat.
	if len(c.sent) != 1 {
		t.Fatalf("reviewer replies = %d, want 1", len(c.sent))
	}
	if got := c.sent[0].(string); got != fmt.Sprintf(texts.ReviewerToken, "ABRAKADABRA-sd-125xx-a") {
		t.Fatalf("reviewer reply = %q", got)
	}

	// Applicant gets the congratulation with token and link.
	if len(courier.calls) != 1 {
		t.Fatalf("courier calls = %d, want 1", len(courier.calls))
	}
	call := courier.calls[0]
	if got := recipientID(t, call.to); got != "42" {
		t.Fatalf("recipient = %s, want applicant 42", got)
	}
	body := call.what.(string)
	if !strings.Contains(body, "ABRAKADABRA-sd-125xx-a") || !strings.Contains(body, "https://example.com") {
		t.Fatalf("applicant body = %q", body)
	}
}

func TestAcceptTwiceNotifiesTwice(t *testing.T) {
	courier := &fakeCourier{}
	h := &Handler{ReviewerID: 999, Issuer: StaticIssuer{Token: "t"}, OnboardingURL: "u", Courier: courier}
	c := reviewerCtx(CallbackAccept, "42")

	if err := h.Accept(c); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if err := h.Accept(c); err != nil {
		t.Fatalf("second accept: %v", err)
	}
	if len(courier.calls) != 2 {
		t.Fatalf("courier calls = %d, want 2 (no dedup)", len(courier.calls))
	}
}

func TestAcceptSwallowsApplicantDeliveryFailure(t *testing.T) {
	courier := &fakeCourier{err: errors.New("telegram: blocked")}
	h := &Handler{ReviewerID: 999, Issuer: StaticIssuer{Token: "t"}, OnboardingURL: "u", Courier: courier}
	c := reviewerCtx(CallbackAccept, "42")

	if err := h.Accept(c); err != nil {
		t.Fatalf("delivery failure must not propagate, got %v", err)
	}
	if len(c.sent) != 1 {
		t.Fatal("reviewer confirmation should still be sent")
	}
}

func TestAcceptBadPayload(t *testing.T) {
	courier := &fakeCourier{}
	h := &Handler{ReviewerID: 999, Issuer: StaticIssuer{Token: "t"}, Courier: courier}
	c := reviewerCtx(CallbackAccept, "not-a-number")

	if err := h.Accept(c); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if len(c.sent) != 0 || len(courier.calls) != 0 {
		t.Fatal("bad payload must produce no messages")
	}
}

func TestDeclineNotifiesBothSides(t *testing.T) {
	courier := &fakeCourier{}
	h := &Handler{ReviewerID: 999, Courier: courier}
	c := reviewerCtx(CallbackDecline, "42")

	if err := h.Decline(c); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if len(c.sent) != 1 || c.sent[0].(string) != texts.ReviewerDeclined {
		t.Fatalf("reviewer replies = %v", c.sent)
	}
	if len(courier.calls) != 1 {
		t.Fatalf("courier calls = %d, want 1", len(courier.calls))
	}
	call := courier.calls[0]
	if got := recipientID(t, call.to); got != "42" {
		t.Fatalf("recipient = %s, want applicant 42", got)
	}
	if call.what.(string) != texts.Declined {
		t.Fatalf("applicant body = %v", call.what)
	}
}
