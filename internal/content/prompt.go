package content

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert English teacher. You write accurate, level-appropriate study material for learners of English as a foreign language.`

func buildLessonUserMessage(sc SessionConfig, questions int) string {
	var b strings.Builder

	b.WriteString("Create a study session for a student.\n\n")
	fmt.Fprintf(&b, "Level: %s\n", sc.Level.Label())
	fmt.Fprintf(&b, "Type: %s\n", sc.Focus.Label())
	writeTopic(&b, sc.Topic)

	fmt.Fprintf(&b, `
Instructions:
1. Write a concise "Textbook Section" (theory) about the topic: a catchy title, a 2-3 sentence overview, 3-5 key points and 3 clear usage examples.
2. The key points must state the formal grammatical patterns (for example "Subject + have/has + past participle") whenever the topic has them.
3. Write a multiple-choice quiz with exactly %d questions that test this specific theory. Number the questions 1 to %d.
4. Every question has exactly 4 options and exactly one correct answer. correctAnswerIndex is the 0-based index (0-3) of that option.
5. Vary the context and structure of the questions.
6. Give a short explanation of why the correct answer is correct.
7. Pitch vocabulary and sentence length at the %s level.`, questions, questions, sc.Level.Label())

	return b.String()
}

func buildDeckUserMessage(sc SessionConfig, items int) string {
	var b strings.Builder

	b.WriteString("Create a vocabulary study session for a student.\n\n")
	fmt.Fprintf(&b, "Level: %s\n", sc.Level.Label())
	writeTopic(&b, sc.Topic)

	fmt.Fprintf(&b, `
Instructions:
1. Choose exactly %d English words or short expressions a learner at this level should know.
2. For each word give its translation into %s.
3. For each word write one natural English sentence that uses it, with the word itself replaced by %s. The blank must stand for the exact word as given, not an inflected form.
4. Do not repeat words.
5. Return an empty questions list.`, items, TranslationLanguage, BlankToken)

	return b.String()
}

func writeTopic(b *strings.Builder, topic string) {
	if t := strings.TrimSpace(topic); t != "" {
		fmt.Fprintf(b, "Topic: specifically focusing on %q\n", t)
	}
}
