package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/scoring"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	cardWidth := layout.CardWidth(width)

	var body string
	switch s.view.Stage {
	case session.StageLoading:
		body = s.renderLoading()
	case session.StageTheory:
		body = s.renderTheory(cardWidth, height)
	case session.StageQuiz:
		if _, ok := s.view.Lesson(); ok {
			body = s.renderQuestion(cardWidth)
		} else {
			body = s.renderCard(cardWidth)
		}
	case session.StageResults:
		body = s.renderResults(cardWidth)
	case session.StageError:
		body = s.renderError(cardWidth)
	default:
		body = theme.Hint.Render("No session running.")
	}

	if s.notice != "" {
		body += "\n\n" + theme.Incorrect.Render(s.notice)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 0).
		Align(lipgloss.Center).
		Render(body)
}

func (s *StudyScreen) renderLoading() string {
	what := "session"
	if cfg := s.view.Config; cfg != nil {
		what = strings.ToLower(cfg.Focus.Label()) + " session"
	}
	return "\n\n" + s.spinner.View() + " " +
		theme.Body.Render(fmt.Sprintf("Preparing your %s...", what))
}

func (s *StudyScreen) renderTheory(width, height int) string {
	l, ok := s.view.Lesson()
	if !ok {
		return ""
	}
	th := l.Theory
	inner := width - 6

	var b strings.Builder
	b.WriteString(theme.Title.Width(inner).Render(th.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(inner).Render(th.Overview))
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("Key points"))
	b.WriteString("\n")
	for _, p := range th.KeyPoints {
		b.WriteString(theme.Body.Width(inner).Render("• " + p))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Examples"))
	b.WriteString("\n")
	for _, e := range th.Examples {
		b.WriteString(theme.Hint.Width(inner).Render("“" + e + "”"))
		b.WriteString("\n")
	}

	s.theory.SetWidth(inner)
	s.theory.SetHeight(max(height-8, 3))
	s.theory.SetContent(b.String())

	return theme.Card.Width(width).Render(s.theory.View()) + "\n\n" +
		theme.Hint.Render("Press Enter to start the practice")
}

func (s *StudyScreen) renderQuestion(width int) string {
	l, _ := s.view.Lesson()

	var b strings.Builder
	b.WriteString(components.NewProgressBar("Question", s.view.Index+1, l.Len(), width).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Card.Width(width).Render(s.quiz.View(width - 6)))
	if s.reviewing {
		b.WriteString("\n\n" + theme.Hint.Render("Press Enter to continue"))
	}
	return b.String()
}

func (s *StudyScreen) renderCard(width int) string {
	card, ok := s.view.Card()
	if !ok {
		return ""
	}
	d, _ := s.view.Deck()
	inner := width - 6

	var b strings.Builder
	b.WriteString(theme.Label.Render(content.TranslationLanguage))
	b.WriteString("\n")
	b.WriteString(theme.Body.Bold(true).Render(card.Translation))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(inner).Render(highlightBlank(card.SentenceWithBlank)))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())

	if res, ok := s.view.CardScore(); ok && s.scored() {
		b.WriteString("\n\n")
		b.WriteString(feedback(res, card.Word))
		b.WriteString("\n\n")
		b.WriteString(s.buttons.View())
	}

	return components.NewProgressBar("Word", s.view.Index+1, d.Len(), width).View() +
		"\n\n" + theme.Card.Width(width).Render(b.String())
}

func highlightBlank(sentence string) string {
	before, after, found := strings.Cut(sentence, content.BlankToken)
	if !found {
		return sentence
	}
	return before + theme.Blank.Render(content.BlankToken) + after
}

func feedback(res scoring.Result, word string) string {
	if res.GaveUp {
		return theme.Hint.Render("The answer was ") + theme.Blank.Render(word)
	}
	switch scoring.ClosenessOf(res) {
	case scoring.Exact:
		return theme.Correct.Render("Perfect! " + word)
	case scoring.Close:
		return theme.Partial.Render(fmt.Sprintf("So close! %d%% match.", res.Percentage))
	case scoring.Partial:
		return theme.Partial.Render(fmt.Sprintf("Partly right, %d%% match.", res.Percentage))
	}
	return theme.Incorrect.Render(fmt.Sprintf("Not quite, %d%% match.", res.Percentage))
}

func (s *StudyScreen) renderResults(width int) string {
	var b strings.Builder

	if l, ok := s.view.Lesson(); ok {
		score := s.view.QuizScore()
		b.WriteString(theme.Title.Render(fmt.Sprintf("You scored %d/%d (%d%%)", score.Correct, score.Total, score.Percentage)))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(score.Tier.Feedback()))
		b.WriteString("\n\n")

		for i, q := range l.Questions {
			chosen, answered := s.view.Choices[i]
			mark := theme.Incorrect.Render("✗")
			if answered && chosen == q.CorrectIndex {
				mark = theme.Correct.Render("✓")
			}
			b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, i+1, q.Text))
			if answered && chosen != q.CorrectIndex {
				b.WriteString(theme.Hint.Render("   Your answer: "+q.Options[chosen]) + "\n")
			}
			b.WriteString(theme.Hint.Render("   Answer: "+q.Options[q.CorrectIndex]) + "\n")
		}
	} else if d, ok := s.view.Deck(); ok {
		sum := s.view.DeckSummary()
		b.WriteString(theme.Title.Render(fmt.Sprintf("%d of %d perfect", sum.Perfect, sum.Total)))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Average match %d%% · gave up on %d", sum.AveragePercentage, sum.GaveUp)))
		b.WriteString("\n\n")

		for i, item := range d.Items {
			res, ok := s.view.Scores[i]
			var status string
			switch {
			case !ok:
				status = theme.Hint.Render("skipped")
			case res.GaveUp:
				status = theme.Incorrect.Render("gave up")
			case res.IsPerfectMatch:
				status = theme.Correct.Render("100%")
			default:
				status = theme.Partial.Render(fmt.Sprintf("%d%%", res.Percentage))
			}
			b.WriteString(fmt.Sprintf("%-20s %s\n", item.Word, status))
		}
	}

	return theme.Card.Width(width).Render(strings.TrimRight(b.String(), "\n")) +
		"\n\n" + s.buttons.View()
}

func (s *StudyScreen) renderError(width int) string {
	msg := s.view.ErrorMessage
	if msg == "" {
		msg = session.GenerationFailedMessage
	}
	return theme.ErrorCard.Width(width).Render(theme.Incorrect.Render("Something went wrong")+"\n\n"+theme.Body.Render(msg)) +
		"\n\n" + s.buttons.View()
}
