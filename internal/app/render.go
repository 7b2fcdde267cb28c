package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/mastery"
	"github.com/abhisek/greekquiz/internal/session"
	"github.com/abhisek/greekquiz/internal/store"
	"github.com/abhisek/greekquiz/internal/ui/components"
	"github.com/abhisek/greekquiz/internal/ui/layout"
	"github.com/abhisek/greekquiz/internal/ui/theme"
)

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func ratio(t session.TypeTotals) float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Scored) / float64(t.Total)
}

// RenderOverview renders the learner-wide totals.
func RenderOverview(ov session.Overview, totalWords int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Progress") + "\n")
	fmt.Fprintf(&b, "Letters  %d/%d correct (%s)\n", ov.Letters.Scored, ov.Letters.Total, percent(ratio(ov.Letters)))
	fmt.Fprintf(&b, "Words    %d/%d correct (%s)\n", ov.Words.Scored, ov.Words.Total, percent(ratio(ov.Words)))
	b.WriteString(components.NewProgressBar("Learned ", components.Ratio(ov.LearnedWords, totalWords), true, layout.Width).View())
	fmt.Fprintf(&b, "\n%d of %d words learned, %d of %d groups complete, focus group %d",
		ov.LearnedWords, totalWords, len(ov.LearnedGroups), ov.TotalGroups, ov.FocusGroup)
	return b.String()
}

// RenderGroups renders the per-group progress table.
func RenderGroups(groups []mastery.GroupProgress) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		done := ""
		if g.Complete() {
			done = theme.Correct.Render("✓")
		}
		rows = append(rows, []string{
			strconv.Itoa(g.Group),
			fmt.Sprintf("%d/%d", g.Learned, g.Words),
			fmt.Sprintf("%d/%d", g.Correct, g.Attempts),
			percent(g.Accuracy()),
			done,
		})
	}
	return components.Table([]string{"Group", "Learned", "Correct", "Accuracy", ""}, rows)
}

// RenderItems renders per-item statistics.
func RenderItems(items []session.ItemStat) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		last := "never"
		if !it.Record.LastSeen.IsZero() {
			last = it.Record.LastSeen.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{
			it.Item.Key(),
			describe(it.Item),
			fmt.Sprintf("%d/%d", it.Record.CorrectAttempts, it.Record.TotalAttempts),
			strconv.Itoa(it.Record.ConsecutiveCorrect),
			recent(it.Record.RecentPerformance),
			string(it.State),
			last,
		})
	}
	return components.Table([]string{"Item", "Answer", "Correct", "Streak", "Recent", "State", "Last seen"}, rows)
}

func describe(it catalog.Item) string {
	switch v := it.(type) {
	case catalog.Letter:
		return v.Name + " / " + v.Sound
	case catalog.Word:
		return v.Pronunciation + " / " + v.English
	}
	return ""
}

func recent(window []bool) string {
	var b strings.Builder
	for _, ok := range window {
		if ok {
			b.WriteString("✓")
		} else {
			b.WriteString("✗")
		}
	}
	return b.String()
}

// RenderHistory renders the learned-word history.
func RenderHistory(points []mastery.HistoryPoint) string {
	if len(points) == 0 {
		return theme.Hint.Render("No words learned yet.")
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Timestamp.Local().Format(time.DateTime), strconv.Itoa(p.Count)})
	}
	return components.Table([]string{"When", "Learned words"}, rows)
}

// RenderAnswers renders answer events, newest first.
func RenderAnswers(events []store.AnswerEvent) string {
	if len(events) == 0 {
		return theme.Hint.Render("No answers logged yet.")
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		result := theme.Incorrect.Render("✗")
		if e.Correct {
			result = theme.Correct.Render("✓")
		}
		mode := e.Mode
		if e.Review {
			mode += " (review)"
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.Sequence, 10),
			e.Timestamp.Local().Format(time.DateTime),
			e.ItemKey,
			mode,
			e.Answer,
			result,
		})
	}
	return components.Table([]string{"#", "When", "Item", "Mode", "Answer", ""}, rows)
}

// RenderSessions renders session lifecycle events, newest first.
func RenderSessions(events []store.SessionEvent) string {
	if len(events) == 0 {
		return theme.Hint.Render("No session events logged yet.")
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		remaining := ""
		if e.Action == store.ActionReviewStart {
			remaining = strconv.Itoa(e.Remaining)
		}
		sid := e.SessionID
		if len(sid) > 8 {
			sid = sid[:8]
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.Sequence, 10),
			e.Timestamp.Local().Format(time.DateTime),
			sid,
			e.Action,
			e.Mode,
			remaining,
		})
	}
	return components.Table([]string{"#", "When", "Session", "Event", "Mode", "Review"}, rows)
}

// RenderSummary renders the end-of-session summary.
func RenderSummary(s *session.SessionSummary) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Session summary") + "\n")
	fmt.Fprintf(&b, "%d answers, %d correct (%s) in %s\n",
		s.TotalQuestions, s.TotalCorrect, percent(s.Accuracy), s.Duration.Round(time.Second))
	if len(s.NewlyLearned) > 0 {
		b.WriteString("Newly learned: " + theme.Correct.Render(strings.Join(s.NewlyLearned, ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}
