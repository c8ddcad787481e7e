// Package handler provides Telegram bot command and callback handlers.
package handler

import (
	"fmt"
	"math/rand"

	tele "gopkg.in/telebot.v3"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/reward"
	"meditation-course-bot/internal/webapp"
)

// meditationImages are the header photos rotated on the welcome screen.
var meditationImages = []string{
	"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
	"https://images.unsplash.com/photo-1545389336-cf090694435e?w=800",
	"https://images.unsplash.com/photo-1508672019048-805c876b67e2?w=800",
}

// FunnelHandler handles the intro funnel: welcome, motivation and
// experience capture, achievements and statistics screens.
type FunnelHandler struct {
	progress ProgressService
	webapp   *webapp.Client
}

// NewFunnelHandler creates a new FunnelHandler.
func NewFunnelHandler(progress ProgressService, webappClient *webapp.Client) *FunnelHandler {
	return &FunnelHandler{progress: progress, webapp: webappClient}
}

// HandleStart handles /start: initializes the record on first contact
// and shows the welcome screen with current progress.
func (h *FunnelHandler) HandleStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := UserID(sender)

	rec, err := h.progress.EnsureUser(userID)
	if err != nil {
		return c.Send("❌ Something went wrong, please try /start again")
	}

	welcome := fmt.Sprintf(`🌸 Welcome to *The Path to Inner Harmony*!

Hi, %s! 👋

This interactive meditation course will help you:
• Find inner calm 🕊
• Reduce stress 😌
• Improve focus 🎯

💎 *Lessons completed:* %d
🏆 *Achievements:* %d
🪙 *Meditation coins:* %d

What would you like to do?`,
		sender.FirstName,
		len(rec.CompletedLessons), len(rec.Achievements), rec.Coins)

	photo := &tele.Photo{
		File:    tele.FromURL(meditationImages[rand.Intn(len(meditationImages))]),
		Caption: welcome,
	}
	return c.Send(photo, reward.BuildStartMenu(), tele.ModeMarkdown)
}

// HandleAboutCourse shows the course introduction.
func (h *FunnelHandler) HandleAboutCourse(c tele.Context) error {
	text := `🧘 *About "The Path to Inner Harmony"*

What you get:
• 3 interactive lessons with video
• Practical meditation techniques
• Nature sounds for practice
• Achievements and progress tracking

⏱ 15-20 minutes per lesson
🎯 Suitable for complete beginners

Ready to start your path to harmony?`
	return c.EditCaption(text, reward.BuildCourseIntro(), tele.ModeMarkdown)
}

// HandleTellMore shows the benefits screen.
func (h *FunnelHandler) HandleTellMore(c tele.Context) error {
	text := `🌈 *Why meditation works:*

• Lowers cortisol, the stress hormone 📉
• Improves memory and attention 🧠
• Better sleep quality 😴

Our approach:
🎵 Nature sounds and relaxing music
🎮 Achievements and gamification
📱 Everything inside Telegram

What is your main goal?`
	return c.EditCaption(text, reward.BuildMotivationMenu(), tele.ModeMarkdown)
}

// HandleResults shows the expected-results screen.
func (h *FunnelHandler) HandleResults(c tele.Context) error {
	text := `📈 *What you will get:*

After lesson 1:
✨ A basic breathing technique and your first real relaxation

After lesson 2:
🌊 The 4-7-8 technique and 5-10 minute sits

After the full course:
🏆 A steady practice, stress under control, inner harmony

Let's find your level:`
	return c.EditCaption(text, reward.BuildExperienceMenu(), tele.ModeMarkdown)
}

// HandleWantToLearn handles the direct "I want to learn" branch.
func (h *FunnelHandler) HandleWantToLearn(c tele.Context) error {
	text := `🔥 *Motivation is the first step!*

Meditation gives you practical tools for:
💫 Managing stress and emotions
💫 Raising awareness
💫 Finding inner strength

What is your main goal?`
	return c.EditCaption(text, reward.BuildMotivationMenu(), tele.ModeMarkdown)
}

// HandleMotivation persists the selected motivation.
func (h *FunnelHandler) HandleMotivation(c tele.Context, tag string) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	goals := map[string]string{
		"stress_relief": "reduce stress and find calm 😌",
		"focus":         "improve focus and mental clarity 🧠",
		"sleep":         "sleep and rest better 😴",
	}

	if _, err := h.progress.SetMotivation(UserID(sender), tag); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Could not save your answer, please try again", ShowAlert: true})
	}

	text := fmt.Sprintf(`Great! Your goal is to %s

Meditation is especially effective for exactly that.

Now let's find your experience level:`, goals[tag])
	return c.EditCaption(text, reward.BuildExperienceMenu(), tele.ModeMarkdown)
}

// HandleExperience persists the selected experience level and closes
// the personalization step.
func (h *FunnelHandler) HandleExperience(c tele.Context, tag string) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := UserID(sender)

	levels := map[string]string{
		"beginner":     "a beginner 🆕 - we start from the very basics!",
		"intermediate": "somewhat experienced 🌱 - we will deepen your practice!",
		"advanced":     "an experienced practitioner 🧘‍♂️ - new depths await!",
	}

	if _, err := h.progress.SetExperience(userID, tag); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Could not save your answer, please try again", ShowAlert: true})
	}

	text := fmt.Sprintf(`Got it, you are %s

🎉 *Personalization complete!*

What comes next:
1. Learn the basics of meditation
2. Do the first exercises
3. Pick up a gift for your progress

🚀 The first lesson takes only 7-10 minutes!`, levels[tag])
	return c.EditCaption(text, reward.BuildReadyToStart(h.webapp.LessonURL(1, userID)), tele.ModeMarkdown)
}

// HandleAchievements shows the user's achievements screen.
func (h *FunnelHandler) HandleAchievements(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	rec := h.progress.Get(UserID(sender))

	text := "🏆 *Your achievements:*\n\n"
	if len(rec.Achievements) == 0 {
		text += "No achievements yet, but every path starts somewhere! 🌱\n"
	}
	for _, tag := range rec.Achievements {
		if title, ok := model.AchievementTitles[tag]; ok {
			text += "✅ " + title + "\n"
		}
	}

	text += fmt.Sprintf(`
📊 *Progress:*
• Lessons completed: %d/%d
• Meditation coins: %d 🪙
• Total practice time: %d min`,
		len(rec.CompletedLessons), model.TotalLessons, rec.Coins, rec.TotalTime)

	return c.EditCaption(text, reward.BuildBackMenu(), tele.ModeMarkdown)
}

// HandleStats shows the user's statistics screen.
func (h *FunnelHandler) HandleStats(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	rec := h.progress.Get(UserID(sender))

	status := "🆓 Free"
	if rec.PaymentStatus == model.PaymentPaid {
		status = "💎 Premium"
	}

	text := fmt.Sprintf(`📊 *Your statistics:*

• Lessons completed: %d/%d
• Meditation streak: %d days 🔥
• Coins: %d 🪙
• Status: %s

*Quiz results:*
`, len(rec.CompletedLessons), model.TotalLessons, rec.MeditationStreak, rec.Coins, status)

	if len(rec.QuizScores) == 0 {
		text += "No quiz results yet\n"
	}
	for _, lessonID := range model.CourseLessons {
		if score, ok := rec.QuizScores[fmt.Sprint(lessonID)]; ok {
			text += fmt.Sprintf("• Lesson %d: %d/3 ⭐\n", lessonID, score)
		}
	}

	return c.EditCaption(text, reward.BuildBackMenu(), tele.ModeMarkdown)
}

// HandleBackToStart returns to the welcome screen.
func (h *FunnelHandler) HandleBackToStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	rec := h.progress.Get(UserID(sender))

	text := fmt.Sprintf(`🌸 *The Path to Inner Harmony*

Hi again! 👋

💎 *Lessons completed:* %d
🏆 *Achievements:* %d
🪙 *Meditation coins:* %d

What would you like to do?`,
		len(rec.CompletedLessons), len(rec.Achievements), rec.Coins)

	return c.EditCaption(text, reward.BuildStartMenu(), tele.ModeMarkdown)
}
