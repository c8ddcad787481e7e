// Package progress implements the per-user progression state machine.
//
// Every function here is a pure transition: it takes a record, returns
// an updated copy, and never touches storage. Callers fold the result
// back through the store's update cycle.
package progress

import (
	"errors"
	"fmt"
	"strconv"

	"meditation-course-bot/internal/model"
)

// Transition errors. These are the only failure modes of the state
// machine; everything else is a no-op by construction.
var (
	ErrUnknownAchievement = errors.New("unknown achievement tag")
	ErrNegativeAmount     = errors.New("coin amount must be non-negative")
)

// CompleteLesson records a finished lesson. Adding to the completed set
// is idempotent; the quiz score is last-write-wins; current_lesson
// advances to max(current, lessonID+1) and never regresses, so a retry
// or out-of-order delivery with a smaller lesson id cannot move the
// user backwards.
func CompleteLesson(rec model.UserRecord, lessonID, score int) model.UserRecord {
	out := rec.Clone()
	if !out.HasCompleted(lessonID) {
		out.CompletedLessons = append(out.CompletedLessons, lessonID)
	}
	out.QuizScores[strconv.Itoa(lessonID)] = score
	if next := lessonID + 1; next > out.CurrentLesson {
		out.CurrentLesson = next
	}
	return out
}

// GrantAchievement adds the tag to the achievement set if absent.
// The boolean reports whether this call actually performed the grant,
// so callers can suppress duplicate first-time notifications.
// Re-granting a held achievement is a safe no-op. Tags outside the
// fixed catalog are rejected, never silently defaulted.
func GrantAchievement(rec model.UserRecord, tag string) (model.UserRecord, bool, error) {
	if !model.KnownAchievement(tag) {
		return rec, false, fmt.Errorf("%w: %q", ErrUnknownAchievement, tag)
	}
	if rec.HasAchievement(tag) {
		return rec.Clone(), false, nil
	}
	out := rec.Clone()
	out.Achievements = append(out.Achievements, tag)
	return out, true, nil
}

// AddCoins increases the balance by exactly amount. The balance only
// ever grows in this core; spending is out of scope.
func AddCoins(rec model.UserRecord, amount int64) (model.UserRecord, error) {
	if amount < 0 {
		return rec, fmt.Errorf("%w: %d", ErrNegativeAmount, amount)
	}
	out := rec.Clone()
	out.Coins += amount
	return out, nil
}

// MarkPaid moves the payment status to paid. This is the only
// transition out of free, and it is absorbing: there is no way back.
func MarkPaid(rec model.UserRecord) model.UserRecord {
	out := rec.Clone()
	out.PaymentStatus = model.PaymentPaid
	return out
}

// IssueRewardToken mints the one-time gift token for a completed lesson
// and marks the lesson rewarded. At most one token is ever issued per
// lesson; a second call for the same lesson returns ok=false with no
// change. The token is derived from user id, lesson id and a monotonic
// per-record counter, so replays are distinguishable from fresh grants.
func IssueRewardToken(rec model.UserRecord, lessonID int) (model.UserRecord, string, bool) {
	if rec.HasRewarded(lessonID) {
		return rec.Clone(), "", false
	}
	out := rec.Clone()
	out.RewardSeq++
	token := fmt.Sprintf("%s:%d:%d", out.UserID, lessonID, out.RewardSeq)
	out.RewardedLessons = append(out.RewardedLessons, lessonID)
	out.RewardTokens = append(out.RewardTokens, token)
	return out, token, true
}

// ConsumeRewardToken removes a pending token. ok=false means the token
// was never issued or was already consumed (a replayed button press).
func ConsumeRewardToken(rec model.UserRecord, token string) (model.UserRecord, bool) {
	for i, t := range rec.RewardTokens {
		if t == token {
			out := rec.Clone()
			out.RewardTokens = append(out.RewardTokens[:i], out.RewardTokens[i+1:]...)
			return out, true
		}
	}
	return rec.Clone(), false
}
