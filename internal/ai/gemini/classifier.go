package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/ecolink/ecolink/internal/ai"
	"github.com/ecolink/ecolink/internal/logger"
	"github.com/ecolink/ecolink/internal/utils"
	"github.com/ecolink/ecolink/internal/waste"
)

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	retryBackoff        = time.Second
)

// wait is swapped in tests to skip backoff delays.
var wait = utils.WaitFor

// Options tunes a Classifier. Zero values mean: default timeout, no retries,
// default log preview length.
type Options struct {
	Timeout      time.Duration
	MaxRetries   int
	MaxLogLength int
}

// Classifier asks a generative model which vocabulary items a bio implies.
type Classifier struct {
	generator  ai.Generator
	logger     *zap.Logger
	timeout    time.Duration
	maxRetries int
	maxLogLen  int
}

func NewClassifier(generator ai.Generator, log *zap.Logger, opts Options) *Classifier {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}

	return &Classifier{
		generator:  generator,
		logger:     logger.WithCommonFields(log, "gemini", generator.Model()),
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		maxLogLen:  opts.MaxLogLength,
	}
}

// Classify returns the vocabulary tags the model assigns to bio, in reply
// order without duplicates. An empty bio fails with ai.ErrValidation before
// any request is made.
func (c *Classifier) Classify(ctx context.Context, bio string) ([]waste.Tag, error) {
	bio = strings.TrimSpace(bio)
	if bio == "" {
		return nil, fmt.Errorf("%w: bio is required", ai.ErrValidation)
	}

	prompt := BuildPrompt(bio)

	c.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	tags, dropped := ParseTags(raw)
	if len(dropped) > 0 {
		c.logger.Debug("dropping items outside the vocabulary", zap.Strings("dropped", dropped))
	}

	if len(tags) == 0 {
		return nil, ai.NewEmptyResultError(fmt.Errorf("%d item(s) returned, none in the vocabulary", len(dropped)))
	}

	c.logger.Info("bio classified", zap.Int("tags", len(tags)), zap.Int("dropped", len(dropped)))

	return tags, nil
}

func (c *Classifier) generate(ctx context.Context, prompt string) (string, error) {
	attempts := c.maxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if attempt == attempts || !ai.IsTemporary(err) {
			break
		}

		delay := time.Duration(attempt) * retryBackoff
		c.logger.Warn("gemini request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := wait(ctx, delay); err != nil {
			return "", ai.NewTransportError(0, false, err)
		}
	}

	return "", lastErr
}

// generateOnce bounds a single attempt by the classifier timeout. Bare errors
// from the generator become transport errors; an attempt that ran out of time
// while the caller is still waiting is temporary.
func (c *Classifier) generateOnce(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.generator.GenerateContent(attemptCtx, prompt)
	if err == nil {
		return raw, nil
	}

	var cerr *ai.ClassificationError
	if errors.As(err, &cerr) {
		return "", err
	}

	temporary := errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil
	return "", ai.NewTransportError(0, temporary, fmt.Errorf("generate content: %w", err))
}

// BuildPrompt embeds the vocabulary and the bio into the classification prompt.
func BuildPrompt(bio string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Return only items from this list, comma separated:\n{{VOCABULARY}}\n\nBio: {{BIO}}"
	}
	prompt := strings.ReplaceAll(template, "{{VOCABULARY}}", waste.VocabularyList())
	prompt = strings.ReplaceAll(prompt, "{{BIO}}", bio)
	return prompt
}

// ParseTags splits a comma separated reply into vocabulary tags. Fragments are
// trimmed, blanks skipped, and anything outside the vocabulary is returned in
// dropped. Matching ignores case; tags come back in canonical spelling.
func ParseTags(raw string) (tags []waste.Tag, dropped []string) {
	var set waste.Set
	for _, fragment := range strings.Split(raw, ",") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		tag, ok := waste.Lookup(fragment)
		if !ok {
			dropped = append(dropped, fragment)
			continue
		}
		set.Add(tag)
	}

	return set.Tags(), dropped
}
