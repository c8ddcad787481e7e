// Package model defines the data models for the meditation course bot.
package model

import "time"

// PaymentStatus is the payment dimension of a user's progression.
// The only legal transition is free -> paid; it never reverses.
type PaymentStatus string

const (
	PaymentFree PaymentStatus = "free"
	PaymentPaid PaymentStatus = "paid"
)

// UserRecord holds the full progression state for one user.
// Records are persisted as one JSON table keyed by user id, so the
// field layout doubles as the on-disk format and must stay
// human-inspectable.
type UserRecord struct {
	UserID           string         `json:"user_id"`
	CurrentLesson    int            `json:"current_lesson"`
	CompletedLessons []int          `json:"completed_lessons"`
	Achievements     []string       `json:"achievements"`
	TotalTime        int            `json:"total_time"` // accumulated practice minutes
	LastActivity     *time.Time     `json:"last_activity"`
	MeditationStreak int            `json:"meditation_streak"`
	Coins            int64          `json:"coins"`
	GiftsReceived    []string       `json:"gifts_received"`
	QuizScores       map[string]int `json:"quiz_scores"` // lesson id (decimal string) -> last score
	PaymentStatus    PaymentStatus  `json:"payment_status"`

	// Onboarding answers captured during the intro funnel.
	Motivation string `json:"motivation,omitempty"`
	Experience string `json:"experience,omitempty"`

	// Reward bookkeeping. A lesson enters RewardedLessons exactly once,
	// when the reconciler issues its one-time gift token; the token sits
	// in RewardTokens until the gift resolver consumes it.
	RewardedLessons []int    `json:"rewarded_lessons,omitempty"`
	RewardTokens    []string `json:"reward_tokens,omitempty"`
	RewardSeq       int      `json:"reward_seq,omitempty"`
}

// NewUserRecord returns the default record for a user that has not been
// seen before. Every collaborator that needs the default shape goes
// through here.
func NewUserRecord(userID string) UserRecord {
	return UserRecord{
		UserID:           userID,
		CompletedLessons: []int{},
		Achievements:     []string{},
		GiftsReceived:    []string{},
		QuizScores:       map[string]int{},
		PaymentStatus:    PaymentFree,
	}
}

// Clone returns a deep copy so transition functions can stay pure.
func (r UserRecord) Clone() UserRecord {
	c := r
	c.CompletedLessons = append([]int(nil), r.CompletedLessons...)
	c.Achievements = append([]string(nil), r.Achievements...)
	c.GiftsReceived = append([]string(nil), r.GiftsReceived...)
	c.RewardedLessons = append([]int(nil), r.RewardedLessons...)
	c.RewardTokens = append([]string(nil), r.RewardTokens...)
	c.QuizScores = make(map[string]int, len(r.QuizScores))
	for k, v := range r.QuizScores {
		c.QuizScores[k] = v
	}
	if r.LastActivity != nil {
		t := *r.LastActivity
		c.LastActivity = &t
	}
	return c
}

// HasCompleted reports whether the lesson is in the completed set.
func (r UserRecord) HasCompleted(lessonID int) bool {
	for _, id := range r.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// HasAchievement reports whether the tag has already been granted.
func (r UserRecord) HasAchievement(tag string) bool {
	for _, a := range r.Achievements {
		if a == tag {
			return true
		}
	}
	return false
}

// HasRewarded reports whether a gift token was already issued for the lesson.
func (r UserRecord) HasRewarded(lessonID int) bool {
	for _, id := range r.RewardedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// Achievement tags. The catalog is fixed; granting an unknown tag is an error.
const (
	AchFirstLesson      = "first_lesson"
	AchQuizMaster       = "quiz_master"
	AchDailyPractice    = "daily_practice"
	AchMeditationStreak = "meditation_streak"
	AchCourseComplete   = "course_complete"
)

// AchievementTitles maps tags to their display names.
var AchievementTitles = map[string]string{
	AchFirstLesson:      "🎓 First Lesson",
	AchQuizMaster:       "🧠 Quiz Master",
	AchDailyPractice:    "📅 Daily Practice",
	AchMeditationStreak: "🔥 Meditation Streak",
	AchCourseComplete:   "🏆 Course Complete",
}

// KnownAchievement reports whether the tag is in the fixed catalog.
func KnownAchievement(tag string) bool {
	_, ok := AchievementTitles[tag]
	return ok
}

// LessonAchievements maps course lessons to the achievement unlocked by
// completing them.
var LessonAchievements = map[int]string{
	1: AchFirstLesson,
	2: AchQuizMaster,
}

// CourseLessons is the fixed, ordered list of lessons the reconciler
// checks against the companion webapp.
var CourseLessons = []int{1, 2}

// TotalLessons is the size of the intro funnel shown in progress screens.
const TotalLessons = 3
