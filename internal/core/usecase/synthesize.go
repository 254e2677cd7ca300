package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/karimelsayed/ragkb/internal/core/domain"
	"github.com/karimelsayed/ragkb/internal/core/ports"
)

const defaultMaxAttempts = 2

// Synthesizer turns retrieved context into an answer in the requested
// language. Drafts that fail the language check are regenerated with a
// stricter prompt, bounded by maxAttempts; an exhausted budget returns the
// last draft as-is. The caller reads the attempt count to detect degradation.
type Synthesizer struct {
	generator   ports.Generator
	maxAttempts int
}

func NewSynthesizer(generator ports.Generator, maxAttempts int) *Synthesizer {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Synthesizer{generator: generator, maxAttempts: maxAttempts}
}

// Synthesize returns the answer text and the number of generation calls made.
// A generator failure is fatal for the query and is never retried here; the
// retry loop exists only for language mismatch.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	question string,
	chunks []domain.RetrievedChunk,
	language domain.Language,
) (string, int, error) {
	profile, ok := languageProfiles[language]
	if !ok {
		return "", 0, domain.WrapError(domain.ErrInvalidInput, "synthesize answer",
			fmt.Errorf("no profile for language %q", language))
	}

	contextText := buildContext(chunks)

	var text string
	for attempt := 1; ; attempt++ {
		prompt := profile.draft(question, contextText)
		if attempt > 1 {
			prompt = profile.strict(question, contextText)
		}

		out, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return "", attempt, domain.WrapError(domain.ErrGeneration, "generate answer", err)
		}
		text = out

		if profile.conforms(text) || attempt == s.maxAttempts {
			return text, attempt, nil
		}
	}
}

func buildContext(chunks []domain.RetrievedChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}

// languageProfile bundles the prompt templates and the conformance check for
// one answer language. Adding a language means adding one entry here.
type languageProfile struct {
	draft    func(question, context string) string
	strict   func(question, context string) string
	conforms func(text string) bool
}

var languageProfiles = map[domain.Language]languageProfile{
	domain.LanguageEnglish: {
		draft:  buildEnglishPrompt,
		strict: buildEnglishPrompt,
		// Generation defaults to English, so the first draft is accepted.
		conforms: func(string) bool { return true },
	},
	domain.LanguageArabic: {
		draft:    buildArabicPrompt,
		strict:   buildArabicStrictPrompt,
		conforms: domain.ContainsArabicScript,
	},
}

func buildEnglishPrompt(question, context string) string {
	return fmt.Sprintf(`You are a helpful assistant. Answer the question based ONLY on the provided context.

CONTEXT:
%s

QUESTION: %s

ANSWER:`, context, question)
}

func buildArabicPrompt(question, context string) string {
	return fmt.Sprintf(`أنت مساعد يتحدث العربية. أجب على السؤال باللغة العربية فقط بناءً على المعلومات المقدمة. لا تستخدم الإنجليزية مطلقاً.

المعلومات:
%s

السؤال: %s

الإجابة (يجب أن تكون باللغة العربية فقط):`, context, question)
}

func buildArabicStrictPrompt(question, context string) string {
	return fmt.Sprintf(`أجب باللغة العربية فقط! لا تستخدم الإنجليزية!

المعلومات: %s

السؤال: %s

الإجابة (عربي فقط):`, context, question)
}
