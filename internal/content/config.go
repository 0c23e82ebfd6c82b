package content

import "fmt"

const (
	// DefaultQuestionCount is the quiz length of a standard session.
	DefaultQuestionCount = 5

	// DefaultVocabularyCount is the flashcard count of a vocabulary session.
	DefaultVocabularyCount = 20

	// BlankToken replaces the target word in a flashcard sentence.
	BlankToken = "_____"

	// TranslationLanguage is the fixed language of flashcard translations.
	TranslationLanguage = "Spanish"
)

// Config holds content generation settings.
type Config struct {
	// Model overrides the provider's default model. Empty uses the default.
	Model string `yaml:"model" env:"LINGUA_CONTENT_MODEL"`

	QuestionCount   int     `yaml:"question_count"   env:"LINGUA_QUESTION_COUNT"     env-default:"5"`
	VocabularyCount int     `yaml:"vocabulary_count" env:"LINGUA_VOCABULARY_COUNT"   env-default:"20"`
	MaxTokens       int     `yaml:"max_tokens"       env:"LINGUA_CONTENT_MAX_TOKENS" env-default:"8192"`
	Temperature     float64 `yaml:"temperature"      env:"LINGUA_CONTENT_TEMPERATURE" env-default:"0.7"`
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		QuestionCount:   DefaultQuestionCount,
		VocabularyCount: DefaultVocabularyCount,
		MaxTokens:       8192,
		Temperature:     0.7,
	}
}

// Validate checks counts and sampling settings.
func (c Config) Validate() error {
	if c.QuestionCount < 1 {
		return fmt.Errorf("question_count must be > 0 (got %d)", c.QuestionCount)
	}
	if c.VocabularyCount < 1 {
		return fmt.Errorf("vocabulary_count must be > 0 (got %d)", c.VocabularyCount)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0, 1] (got %v)", c.Temperature)
	}
	return nil
}
