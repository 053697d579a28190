package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samzong/hookmsg/internal/formatter"
	"github.com/sashabaranov/go-openai"
)

const defaultTimeout = 30 * time.Second

// ChatCompleter is the subset of the go-openai client used here.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Options configures a Client.
type Options struct {
	APIKey  string
	APIBase string
	Model   string
	Timeout time.Duration
	Prompt  formatter.PromptOptions
}

// Client turns staged diffs into commit messages through a chat completion API.
type Client struct {
	completer ChatCompleter
	opts      Options
}

// NewClient builds a client backed by the OpenAI-compatible endpoint in opts.
func NewClient(opts Options) *Client {
	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.APIBase != "" {
		clientConfig.BaseURL = opts.APIBase
	}
	return NewClientWithCompleter(openai.NewClientWithConfig(clientConfig), opts)
}

// NewClientWithCompleter builds a client on top of an existing completer.
func NewClientWithCompleter(completer ChatCompleter, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{completer: completer, opts: opts}
}

// Result is either a generated message or a generation error, never both.
type Result struct {
	Message string
	Err     *GenerationError
}

// Success wraps a generated message.
func Success(message string) Result {
	return Result{Message: message}
}

// Failure wraps a generation error.
func Failure(err *GenerationError) Result {
	return Result{Err: err}
}

// OK reports whether the result carries a message.
func (r Result) OK() bool {
	return r.Err == nil
}

// GenerationError describes why no message could be produced.
type GenerationError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Generate asks the model for a commit message describing diff. Transport
// and API failures are reported through the Result, not returned.
func (c *Client) Generate(ctx context.Context, diff string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	resp, err := c.completer.CreateChatCompletion(ctx, c.request(diff))
	if err != nil {
		return Failure(describe(err))
	}

	if len(resp.Choices) == 0 {
		return Failure(&GenerationError{Message: "LLM returned empty response"})
	}

	message := formatter.FormatMessage(resp.Choices[0].Message.Content, c.opts.Prompt)
	if message == "" {
		return Failure(&GenerationError{Message: "LLM returned an empty commit message"})
	}
	return Success(message)
}

func (c *Client) request(diff string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: formatter.SystemPrompt(c.opts.Prompt),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: formatter.UserPrompt(diff, c.opts.Prompt),
			},
		},
	}
}

func describe(err error) *GenerationError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &GenerationError{
			Message:    "LLM API error: " + apiErr.Message,
			StatusCode: apiErr.HTTPStatusCode,
			Cause:      err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &GenerationError{
			Message:    "LLM request failed",
			StatusCode: reqErr.HTTPStatusCode,
			Cause:      err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &GenerationError{Message: "LLM request timed out", Cause: err}
	}

	return &GenerationError{Message: "failed to call LLM: " + err.Error(), Cause: err}
}
