package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
)

type OllamaProvider struct {
	defaultModel string
	client       *resty.Client
}

func NewOllamaProvider(baseURL, defaultModel string, timeout time.Duration) *OllamaProvider {
	if defaultModel == "" {
		defaultModel = "llama3"
	}
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &OllamaProvider{
		defaultModel: defaultModel,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) DefaultModel() string { return p.defaultModel }

type ollamaChatReq struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

type ollamaChatResp struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}

func (p *OllamaProvider) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	msgs := make([]ollamaMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = ollamaMessage{Role: m.Role, Content: m.Content}
	}

	oReq := ollamaChatReq{
		Model:    model,
		Messages: msgs,
		Stream:   false,
	}
	temperature := req.Temperature
	oReq.Options = &ollamaOptions{
		Temperature: &temperature,
		NumPredict:  req.MaxTokens,
	}

	var oResp ollamaChatResp
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(oReq).
		SetResult(&oResp).
		Post("/api/chat")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "ollama.chat", "chat request", err)
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.KindProvider, "ollama.chat",
			fmt.Sprintf("chat failed (status %d): %s", resp.StatusCode(), resp.String()))
	}

	return &ChatResponse{
		Provider:     "ollama",
		Model:        model,
		Content:      oResp.Message.Content,
		InputTokens:  oResp.PromptEvalCount,
		OutputTokens: oResp.EvalCount,
		TotalTokens:  oResp.PromptEvalCount + oResp.EvalCount,
		CostUSD:      0, // local models are free
		LatencyMs:    time.Since(start).Milliseconds(),
	}, nil
}
