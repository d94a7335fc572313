package review

import (
	"fmt"

	"github.com/m3rciful/anketabot/core/logger"
	"github.com/m3rciful/anketabot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/anketabot/core/telegram/helpers"
	"github.com/m3rciful/anketabot/internal/intake"
	"github.com/m3rciful/anketabot/internal/texts"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Courier delivers messages to chats other than the one being handled.
// *tele.Bot satisfies it; tests substitute a recorder.
type Courier interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler owns the review side of the flow: forwarding completed
// applications to the reviewer and reacting to the decision buttons.
//
// Decision callbacks are deliberately not idempotent: pressing accept twice
// re-runs the whole side-effect sequence, including the applicant message.
// Deduplication would need decision storage this bot does not keep.
type Handler struct {
	ReviewerID    int64
	Issuer        TokenIssuer
	OnboardingURL string

	// Courier overrides the update's bot for cross-chat delivery; nil means c.Bot().
	Courier Courier
}

func (h *Handler) courier(c tele.Context) Courier {
	if h.Courier != nil {
		return h.Courier
	}
	return c.Bot()
}

// ForwardApplication sends the completed application to the reviewer with the
// decision keyboard. A delivery failure is logged together with the rendered
// payload so it can be recovered manually; it is never surfaced to the
// applicant and never retried.
func (h *Handler) ForwardApplication(c tele.Context, app intake.Application) error {
	ctx := tghelpers.BuildContext(c)
	body := NotificationText(app)

	_, err := h.courier(c).Send(&tele.User{ID: h.ReviewerID}, body, DecisionKeyboard(app.UserID))
	if err != nil {
		logger.Error(ctx, "review", "forward.fail",
			slog.Int64("applicant_id", app.UserID),
			slog.Int64("chat_id", h.ReviewerID),
			slog.String("err", err.Error()),
			slog.String("payload", logger.SanitizeLimit(body, 512)),
		)
		return nil
	}

	logger.Info(ctx, "review", "forward.sent",
		slog.String("status", "ok"),
		slog.Int64("applicant_id", app.UserID),
	)
	return nil
}

// Accept handles the reviewer pressing the accept button: issues a token,
// shows it to the reviewer, and tries to deliver it to the applicant.
func (h *Handler) Accept(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	applicantID, err := callbacks.PayloadInt64(c)
	if err != nil {
		logger.Warn(ctx, "review", "accept.bad_payload",
			slog.String("err", err.Error()),
		)
		return nil
	}

	token, err := h.Issuer.Issue()
	if err != nil {
		return fmt.Errorf("accept applicant %d: %w", applicantID, err)
	}

	if err := tghelpers.SendMD(c, fmt.Sprintf(texts.ReviewerToken, token)); err != nil {
		return err
	}

	body := fmt.Sprintf(texts.Accepted, token, h.OnboardingURL)
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown}
	if _, err := h.courier(c).Send(&tele.User{ID: applicantID}, body, opts); err != nil {
		logger.Error(ctx, "review", "accept.notify_fail",
			slog.Int64("applicant_id", applicantID),
			slog.String("err", err.Error()),
			slog.String("payload", logger.SanitizeLimit(body, 512)),
		)
		return nil
	}

	logger.Info(ctx, "review", "accept.notified",
		slog.String("status", "ok"),
		slog.Int64("applicant_id", applicantID),
	)
	return nil
}

// Decline handles the reviewer pressing the decline button.
func (h *Handler) Decline(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	applicantID, err := callbacks.PayloadInt64(c)
	if err != nil {
		logger.Warn(ctx, "review", "decline.bad_payload",
			slog.String("err", err.Error()),
		)
		return nil
	}

	if err := tghelpers.SendText(c, texts.ReviewerDeclined); err != nil {
		return err
	}

	if _, err := h.courier(c).Send(&tele.User{ID: applicantID}, texts.Declined); err != nil {
		logger.Error(ctx, "review", "decline.notify_fail",
			slog.Int64("applicant_id", applicantID),
			slog.String("err", err.Error()),
		)
		return nil
	}

	logger.Info(ctx, "review", "decline.notified",
		slog.String("status", "ok"),
		slog.Int64("applicant_id", applicantID),
	)
	return nil
}
