package review

import (
	"fmt"
	"strconv"

	"github.com/m3rciful/anketabot/core/telegram/keyboard"
	"github.com/m3rciful/anketabot/internal/intake"

	tele "gopkg.in/telebot.v4"
)

// Callback keys for the reviewer's decision buttons. The applicant's user ID
// travels as the callback payload; nothing is parsed out of display strings.
const (
	CallbackAccept  = "accept"
	CallbackDecline = "decline"
)

// NotificationText renders the reviewer notification for a completed application.
func NotificationText(app intake.Application) string {
	return fmt.Sprintf(
		"✅ New application\nUser: @%s\nName: %s\nBirth date: %s (%d)\nPhone: %s",
		app.Username, app.FullName, app.BirthDate, app.Age, app.Phone,
	)
}

// DecisionKeyboard builds the accept/decline buttons carrying the applicant's ID.
func DecisionKeyboard(applicantID int64) *tele.ReplyMarkup {
	payload := strconv.FormatInt(applicantID, 10)
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Accept ✅", Unique: CallbackAccept, Data: payload},
		{Text: "Decline ❌", Unique: CallbackDecline, Data: payload},
	})
}
