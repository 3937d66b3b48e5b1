package brief

import (
	"context"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const DefaultModel = "gpt-4-1106-preview"

type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewOpenAIModel builds the chat-completion client used by the Composer.
func NewOpenAIModel(opts OpenAIOptions) (llms.Model, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	options := []openai.Option{
		openai.WithToken(opts.APIKey),
		openai.WithModel(opts.Model),
	}
	if opts.BaseURL != "" {
		options = append(options, openai.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		options = append(options, openai.WithHTTPClient(opts.HTTPClient))
	}

	llm, err := openai.New(options...)
	if err != nil {
		return nil, err
	}
	return llm, nil
}

// UnavailableModel fails every call with Err. It stands in for a model that
// could not be built at startup, e.g. without an API key.
type UnavailableModel struct {
	Err error
}

func (m UnavailableModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return nil, m.Err
}

func (m UnavailableModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", m.Err
}
