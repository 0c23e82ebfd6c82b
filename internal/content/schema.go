package content

import "github.com/abhisek/lingua/internal/llm"

// Counts and option lengths are requested in the prompt and enforced in
// validate.go; providers disagree on minItems/maxItems support.

var questionItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type":        "integer",
			"description": "Sequential question number starting at 1",
		},
		"questionText": map[string]any{
			"type":        "string",
			"description": "The question to ask the student",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Exactly 4 potential answers",
		},
		"correctAnswerIndex": map[string]any{
			"type":        "integer",
			"description": "The index (0-3) of the correct answer in the options array",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "A short explanation of why the correct answer is correct",
		},
	},
	"required":             []any{"id", "questionText", "options", "correctAnswerIndex", "explanation"},
	"additionalProperties": false,
}

// LessonSchema is the output shape for Grammar, Idioms and Phrasal Verbs
// sessions.
var LessonSchema = &llm.Schema{
	Name:        "lesson-content",
	Description: "A textbook-style theory section followed by a multiple-choice quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"theory": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "A catchy title for the lesson topic",
					},
					"overview": map[string]any{
						"type":        "string",
						"description": "A brief 2-3 sentence introduction to the concept",
					},
					"keyPoints": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "3-5 important rules or facts, including formal grammatical patterns where the topic has them",
					},
					"examples": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "3 clear usage examples",
					},
				},
				"required":             []any{"title", "overview", "keyPoints", "examples"},
				"additionalProperties": false,
			},
			"questions": map[string]any{
				"type":  "array",
				"items": questionItemSchema,
			},
		},
		"required":             []any{"theory", "questions"},
		"additionalProperties": false,
	},
}

// DeckSchema is the output shape for Vocabulary sessions. questions is
// declared so the shape matches the lesson branch, and requested empty.
var DeckSchema = &llm.Schema{
	Name:        "vocabulary-deck",
	Description: "A list of vocabulary flashcards with translations and masked example sentences",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"vocabulary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word": map[string]any{
							"type":        "string",
							"description": "The English target word or expression",
						},
						"translation": map[string]any{
							"type":        "string",
							"description": "Translation of the word into " + TranslationLanguage,
						},
						"sentenceWithBlank": map[string]any{
							"type":        "string",
							"description": "An English sentence using the word, with the word replaced by " + BlankToken,
						},
					},
					"required":             []any{"word", "translation", "sentenceWithBlank"},
					"additionalProperties": false,
				},
			},
			"questions": map[string]any{
				"type":        "array",
				"items":       questionItemSchema,
				"description": "Always an empty list",
			},
		},
		"required":             []any{"vocabulary", "questions"},
		"additionalProperties": false,
	},
}
