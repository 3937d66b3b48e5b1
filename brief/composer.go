package brief

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"contentbrief/scraper"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// MaxFragmentsPerTag limits how many heading texts per level go into the
// prompt. It keeps the prompt small; later fragments are dropped.
const MaxFragmentsPerTag = 5

const SystemPrompt = "You are a seasoned SEO expert and content strategist. Your task is to analyze the following consolidated data from top-ranking websites and provide a hyper-optimized content brief & optimal structure outline with the data of the heading given. This brief should be actionable and clear for content writers, highlighting key points and takeaways.\n\n Use the keyword's intent & context. Generate an optimized content brief with content idea thesis, specifying whether it's a content piece, a calculator, a landing page, or other. Format the brief in Markdown."

var ErrBriefGenerationFailed = errors.New("brief generation failed")

type Composer struct {
	model  llms.Model
	logger *zap.Logger
}

func NewComposer(model llms.Model, logger *zap.Logger) *Composer {
	return &Composer{
		model:  model,
		logger: logger,
	}
}

// BuildPrompt renders the user message for keyword. Levels without any
// fragment are left out.
func BuildPrompt(keyword string, headings scraper.ConsolidatedHeadings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Consider the most relevant information, avoid fluff, and provide a concise yet comprehensive brief about the intent & content using the top ranking sites, focusing particularly on the keyword: '%s': \n\n", keyword)

	for _, tag := range scraper.HeadingTags {
		texts := headings[tag]
		if len(texts) == 0 {
			continue
		}
		if len(texts) > MaxFragmentsPerTag {
			texts = texts[:MaxFragmentsPerTag]
		}
		fmt.Fprintf(&b, "%s: %s\n\n", strings.ToUpper(tag.String()), strings.Join(texts, " "))
	}

	return b.String()
}

// Compose asks the model for a markdown brief and returns the first
// completion unchanged.
func (c *Composer) Compose(ctx context.Context, keyword string, headings scraper.ConsolidatedHeadings) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, BuildPrompt(keyword, headings)),
	}

	resp, err := c.model.GenerateContent(ctx, messages)
	if err != nil {
		c.logger.Error("Error generating content brief", zap.String("keyword", keyword), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrBriefGenerationFailed, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		c.logger.Error("Error generating content brief: empty response", zap.String("keyword", keyword))
		return "", fmt.Errorf("%w: no completion choices", ErrBriefGenerationFailed)
	}

	c.logger.Info("Content brief generated", zap.String("keyword", keyword))
	return resp.Choices[0].Content, nil
}
