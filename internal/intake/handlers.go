package intake

import (
	"github.com/m3rciful/anketabot/core/logger"
	tghelpers "github.com/m3rciful/anketabot/core/telegram/helpers"
	"github.com/m3rciful/anketabot/internal/texts"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Handlers binds the conversation machine to the Telegram transport.
// Forward hands a completed application to the review flow; it must swallow
// delivery problems itself, completion is terminal either way.
type Handlers struct {
	Machine *Machine
	Forward func(c tele.Context, app Application) error
}

// Start handles /start: any previous session is discarded.
func (h *Handlers) Start(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	h.Machine.Start(sender.ID)

	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "intake", "conversation.started",
		slog.Int64("user_id", sender.ID),
		slog.String("username", logger.SanitizeLimit(sender.Username, 64)),
	)
	return tghelpers.SendText(c, texts.Hello)
}

// InProgress reports whether the sender has an active conversation.
// Satisfies the text router's FSM contract.
func (h *Handlers) InProgress(userID int64) bool {
	return h.Machine.InProgress(userID)
}

// HandleText feeds one text message to the machine and delivers the result.
func (h *Handlers) HandleText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	res := h.Machine.Step(ctx, Input{
		UserID:   sender.ID,
		Username: sender.Username,
		Text:     c.Text(),
	})

	if res.Reply != "" {
		if err := tghelpers.SendText(c, res.Reply); err != nil {
			return err
		}
	}

	if res.Outcome == OutcomeCompleted && res.App != nil && h.Forward != nil {
		return h.Forward(c, *res.App)
	}
	return nil
}
