// Package agent implements the reasoning engine and the gateway loop.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/WaClaw/WaClaw/internal/policy"
	"github.com/WaClaw/WaClaw/internal/provider"
	"github.com/WaClaw/WaClaw/internal/tools"
)

// Engine runs one bounded reasoning pass: it calls the provider with the
// policy's instructions and tool subset, executes any tool calls inline,
// feeds the results back, and repeats until the model produces a final
// textual reply or the iteration cap is hit.
type Engine struct {
	provider      provider.LLMProvider
	registry      *tools.Registry
	model         string
	maxIterations int
}

// NewEngine creates an engine over the given provider and tool registry.
// The registry holds every tool the process knows; each run only sees the
// subset the policy allows.
func NewEngine(prov provider.LLMProvider, registry *tools.Registry, model string, maxIterations int) *Engine {
	if maxIterations <= 0 {
		maxIterations = 8
	}
	return &Engine{
		provider:      prov,
		registry:      registry,
		model:         model,
		maxIterations: maxIterations,
	}
}

// Run executes one reasoning pass for the given policy and input text.
// Tool side effects complete before Run returns. Stateless across calls.
func (e *Engine) Run(ctx context.Context, pol policy.Policy, inputText string) (string, error) {
	allowed := e.registry.Subset(pol.AllowedTools)

	toolDefs := make([]provider.ToolDefinition, 0, len(pol.AllowedTools))
	for _, t := range allowed.List() {
		toolDefs = append(toolDefs, provider.ToolDefinition{
			Type: "function",
			Function: provider.FunctionDef{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}

	messages := []provider.Message{
		{Role: "system", Content: pol.Instructions},
		{Role: "user", Content: inputText},
	}

	for i := 0; i < e.maxIterations; i++ {
		resp, err := e.provider.Chat(ctx, &provider.ChatRequest{
			Messages:         messages,
			Tools:            toolDefs,
			Model:            e.model,
			MaxTokens:        pol.Sampling.MaxTokens,
			Temperature:      pol.Sampling.Temperature,
			TopP:             pol.Sampling.TopP,
			PresencePenalty:  pol.Sampling.PresencePenalty,
			FrequencyPenalty: pol.Sampling.FrequencyPenalty,
		})
		if err != nil {
			return "", fmt.Errorf("chat call: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, provider.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, tc := range resp.ToolCalls {
			result, err := allowed.Execute(ctx, tc.Name, tc.Arguments)
			if err != nil {
				result = fmt.Sprintf("Error: %v", err)
			}
			slog.Debug("tool executed", "name", tc.Name, "result_length", len(result))

			messages = append(messages, provider.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	return "", fmt.Errorf("max reasoning iterations (%d) reached", e.maxIterations)
}
