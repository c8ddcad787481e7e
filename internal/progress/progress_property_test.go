// Property-based tests for the progression state machine.
package progress

import (
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"meditation-course-bot/internal/model"
)

// TestGrantAchievementIdempotentProperty checks that for any sequence of
// grants drawn from the fixed catalog, each tag appears in the achievement
// set at most once and repeat grants report granted=false.
func TestGrantAchievementIdempotentProperty(t *testing.T) {
	catalog := make([]string, 0, len(model.AchievementTitles))
	for tag := range model.AchievementTitles {
		catalog = append(catalog, tag)
	}

	rapid.Check(t, func(rt *rapid.T) {
		rec := model.NewUserRecord("u1")
		seen := map[string]bool{}

		numGrants := rapid.IntRange(1, 30).Draw(rt, "numGrants")
		for i := 0; i < numGrants; i++ {
			tag := rapid.SampledFrom(catalog).Draw(rt, "tag")

			var granted bool
			var err error
			rec, granted, err = GrantAchievement(rec, tag)
			if err != nil {
				rt.Fatalf("grant of catalog tag %q failed: %v", tag, err)
			}
			if granted == seen[tag] {
				rt.Fatalf("granted=%v for tag %q, but seen=%v", granted, tag, seen[tag])
			}
			seen[tag] = true
		}

		counts := map[string]int{}
		for _, tag := range rec.Achievements {
			counts[tag]++
		}
		for tag, n := range counts {
			if n != 1 {
				rt.Fatalf("tag %q appears %d times in achievement set", tag, n)
			}
		}
		if len(rec.Achievements) != len(seen) {
			rt.Fatalf("achievement set has %d entries, expected %d", len(rec.Achievements), len(seen))
		}
	})
}

// TestCompleteLessonMonotonicProperty checks that for any sequence of
// lesson completions, current_lesson never decreases and always equals
// max over completed ids plus one.
func TestCompleteLessonMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rec := model.NewUserRecord("u1")
		maxLesson := 0

		numCompletions := rapid.IntRange(1, 20).Draw(rt, "numCompletions")
		for i := 0; i < numCompletions; i++ {
			lessonID := rapid.IntRange(1, 5).Draw(rt, "lessonID")
			score := rapid.IntRange(0, 10).Draw(rt, "score")

			before := rec.CurrentLesson
			rec = CompleteLesson(rec, lessonID, score)
			if rec.CurrentLesson < before {
				rt.Fatalf("current_lesson regressed from %d to %d", before, rec.CurrentLesson)
			}
			if lessonID > maxLesson {
				maxLesson = lessonID
			}
			if rec.CurrentLesson != maxLesson+1 {
				rt.Fatalf("current_lesson=%d, expected %d", rec.CurrentLesson, maxLesson+1)
			}
			if rec.QuizScores[strconv.Itoa(lessonID)] != score {
				rt.Fatalf("quiz score for lesson %d not last-write-wins", lessonID)
			}
		}

		// Completed set stays a set regardless of duplicates drawn
		counts := map[int]int{}
		for _, id := range rec.CompletedLessons {
			counts[id]++
		}
		for id, n := range counts {
			if n != 1 {
				rt.Fatalf("lesson %d appears %d times in completed set", id, n)
			}
		}
	})
}

// TestRewardTokenLifecycleProperty checks that a lesson yields at most one
// token ever, and each token can be consumed exactly once.
func TestRewardTokenLifecycleProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rec := model.NewUserRecord("u1")
		issuedFor := map[int]string{}

		numOps := rapid.IntRange(1, 30).Draw(rt, "numOps")
		for i := 0; i < numOps; i++ {
			lessonID := rapid.IntRange(1, 4).Draw(rt, "lessonID")

			var token string
			var issued bool
			rec, token, issued = IssueRewardToken(rec, lessonID)
			if _, already := issuedFor[lessonID]; already {
				if issued {
					rt.Fatalf("lesson %d issued a second token %q", lessonID, token)
				}
				continue
			}
			if !issued {
				rt.Fatalf("first issue for lesson %d refused", lessonID)
			}
			issuedFor[lessonID] = token
		}

		for lessonID, token := range issuedFor {
			var ok bool
			rec, ok = ConsumeRewardToken(rec, token)
			if !ok {
				rt.Fatalf("fresh token for lesson %d refused", lessonID)
			}
			_, ok = ConsumeRewardToken(rec, token)
			if ok {
				rt.Fatalf("token for lesson %d consumed twice", lessonID)
			}
		}
		if len(rec.RewardTokens) != 0 {
			rt.Fatalf("%d tokens left pending after consuming all", len(rec.RewardTokens))
		}
	})
}
