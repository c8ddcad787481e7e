package reward

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// Callback data tags routed by the bot.
const (
	CallbackAboutCourse     = "about_course"
	CallbackTellMore        = "tell_more"
	CallbackResults         = "results"
	CallbackWantToLearn     = "want_to_learn"
	CallbackAchievements    = "achievements"
	CallbackStats           = "stats"
	CallbackBackToStart     = "back_to_start"
	CallbackCheckCompletion = "check_lesson_completion"
	CallbackContinueNow     = "continue_now"
	CallbackRemindTomorrow  = "remind_tomorrow"
	CallbackPayCard         = "pay_card"
	CallbackPayStars        = "pay_stars"
	CallbackAboutFullCourse = "about_full_course"

	// CallbackGift prefixes gift selections: gift:<gift_id>:<token>.
	// The token ties the selection to one completion event.
	CallbackGift = "gift:"
)

// Motivation and experience answer tags.
var (
	MotivationTags = []string{"stress_relief", "focus", "sleep"}
	ExperienceTags = []string{"beginner", "intermediate", "advanced"}
)

// GiftCallback builds the callback data for selecting a gift against a
// specific reward token.
func GiftCallback(id GiftID, token string) string {
	return fmt.Sprintf("%s%s:%s", CallbackGift, id, token)
}

// BuildStartMenu creates the main menu shown on /start.
func BuildStartMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🧘 About the course", CallbackAboutCourse)),
		markup.Row(markup.Data("🎯 My achievements", CallbackAchievements)),
		markup.Row(markup.Data("📊 My statistics", CallbackStats)),
	)
	return markup
}

// BuildCourseIntro creates the course introduction menu.
func BuildCourseIntro() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🌟 Yes, I want to learn!", CallbackWantToLearn)),
		markup.Row(markup.Data("🤔 Tell me more", CallbackTellMore)),
		markup.Row(markup.Data("📈 What results to expect?", CallbackResults)),
	)
	return markup
}

// BuildMotivationMenu creates the motivation selection menu.
func BuildMotivationMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("😌 Reduce stress", "stress_relief")),
		markup.Row(markup.Data("🧠 Improve focus", "focus")),
		markup.Row(markup.Data("😴 Sleep better", "sleep")),
	)
	return markup
}

// BuildExperienceMenu creates the experience level menu.
func BuildExperienceMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🆕 Beginner", "beginner")),
		markup.Row(markup.Data("🌱 Some experience", "intermediate")),
		markup.Row(markup.Data("🧘‍♂️ Experienced", "advanced")),
	)
	return markup
}

// BuildReadyToStart creates the menu launching lesson 1 in the webapp.
func BuildReadyToStart(lessonURL string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.WebApp("🚀 Start the first lesson!", &tele.WebApp{URL: lessonURL})),
		markup.Row(markup.Data("🎁 Claim my lesson reward", CallbackCheckCompletion)),
	)
	return markup
}

// BuildGiftSelection creates the gift choice keyboard for one
// completion event. Every button carries the event's reward token.
func BuildGiftSelection(token string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	gifts := GetAllGifts()
	rows := make([]tele.Row, 0, len(gifts))
	for _, g := range gifts {
		rows = append(rows, markup.Row(markup.Data(g.Name, GiftCallback(g.ID, token))))
	}
	markup.Inline(rows...)
	return markup
}

// BuildContinueMenu creates the continue-now / remind-tomorrow menu.
func BuildContinueMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("▶️ Continue now", CallbackContinueNow)),
		markup.Row(markup.Data("⏰ Remind me tomorrow", CallbackRemindTomorrow)),
	)
	return markup
}

// BuildLesson2Menu creates the menu launching lesson 2 in the webapp.
func BuildLesson2Menu(lessonURL string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.WebApp("🎥 Lesson 2: Practice", &tele.WebApp{URL: lessonURL})),
		markup.Row(markup.Data("🎁 Claim my lesson reward", CallbackCheckCompletion)),
	)
	return markup
}

// BuildPaymentMenu creates the payment options menu.
func BuildPaymentMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("💳 Pay by card", CallbackPayCard)),
		markup.Row(markup.Data("⭐ Pay with Stars", CallbackPayStars)),
		markup.Row(markup.Data("ℹ️ About the full course", CallbackAboutFullCourse)),
	)
	return markup
}

// BuildBackMenu creates a single back button.
func BuildBackMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("⬅️ Back", CallbackBackToStart)))
	return markup
}
