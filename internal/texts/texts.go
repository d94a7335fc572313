// Package texts holds every scripted message the bot sends. Keeping them in
// one place makes the conversation reviewable without reading handler code.
package texts

const (
	// Hello greets the user after /start and asks for the full name.
	Hello = "Hi! Let's fill in your application.\nPlease send your full name (given name first)."

	// NameFormatError re-prompts when the name has fewer than two words.
	NameFormatError = "Please send your full name separated by spaces (for example: Ivan Ivanov Ivanovich)."

	// NameOK follows the personalized greeting and asks for the birth date.
	NameOK = "Now send your birth date in the DD.MM.YYYY format."

	// GoodBirthDate confirms the age check passed and asks for the phone number.
	GoodBirthDate = "Great! Now send your phone number."

	// BadBirthDate is the terminal reply for underage applicants.
	BadBirthDate = "Unfortunately we cannot accept your application: you do not meet the minimum age requirement."

	// DateFormatError re-prompts on an unparseable birth date.
	DateFormatError = "Invalid date format. Please use DD.MM.YYYY."

	// End acknowledges the completed form.
	End = "Thank you! Your application has been submitted for review."

	// Accepted is sent to the applicant on approval. Format verbs: token, onboarding URL.
	Accepted = "Congratulations, your application has been accepted!\nYour token: `%s`\n\nTo get started, open [the site](%s) and enter the token."

	// ReviewerToken shows the issued token to the reviewer.
	ReviewerToken = "Token: `%s`"

	// ReviewerDeclined confirms the decline action to the reviewer.
	ReviewerDeclined = "Application declined"

	// Declined is sent to the applicant on rejection.
	Declined = "We are sorry, but your application has been declined."

	// UnknownText nudges users who message the bot outside a conversation.
	UnknownText = "Send /start to begin a new application."
)
