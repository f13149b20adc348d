// Package parser turns free-text journal entries into structured activity
// records by asking an LLM to classify them into the tracked categories.
package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"livslogg/pkg/llm"
)

// Categories are the activity labels the model is allowed to emit.
var Categories = []string{"Water", "Cannabis", "Cigarette", "Alcohol", "Sex", "Walk", "Food"}

const systemPrompt = `You are an assistant that converts user's journal entries into structured data.
Analyze the text and identify all trackable activities.
Return a JSON list of objects, where each object contains 'activity', 'quantity', and 'unit'.
Use these categories for 'activity': 'Water', 'Cannabis', 'Cigarette', 'Alcohol', 'Sex', 'Walk', 'Food'.
If quantity is not specified, set it to 1.

Example:
User: "drank a large glass of water, about 500ml, and smoked a joint"
You respond:
[
  {"activity": "Water", "quantity": 500, "unit": "ml"},
  {"activity": "Cannabis", "quantity": 1, "unit": "unit"}
]`

// ErrEmptyInput indicates there was no text to analyze.
var ErrEmptyInput = errors.New("parser: input text is empty")

// ParsedActivity is one activity extracted from the journal text.
type ParsedActivity struct {
	Activity string  `json:"activity"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ChatClient is the slice of the LLM client the parser needs.
type ChatClient interface {
	Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)
	ChatStructured(ctx context.Context, req *llm.ChatRequest, target any) error
}

// activityList is the schema-constrained reply shape; json_schema mode
// requires a top-level object, so the list rides under one key.
type activityList struct {
	Activities []ParsedActivity `json:"activities" description:"Trackable activities extracted from the journal text"`
}

// Parser extracts activities from journal text via an LLM.
type Parser struct {
	client ChatClient
	model  string
}

// Option configures optional parser behaviour.
type Option func(*Parser)

// WithModel overrides the model alias used for parse calls.
func WithModel(model string) Option {
	return func(p *Parser) {
		p.model = model
	}
}

// New constructs a Parser over the given chat client.
func New(client ChatClient, opts ...Option) *Parser {
	p := &Parser{client: client}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse sends text to the model and returns the extracted activities.
// It first requests schema-constrained output; providers that reject
// json_schema mode fall back to json_object with a tolerant decode,
// where a reply that is not a JSON list (after unwrapping an
// "activities"-keyed object) yields an empty slice, not an error.
func (p *Parser) Parse(ctx context.Context, text string) ([]ParsedActivity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: text},
	}

	var wrapped activityList
	err := p.client.ChatStructured(ctx, &llm.ChatRequest{
		Model:    p.model,
		Messages: messages,
	}, &wrapped)
	if err == nil {
		return cleanActivities(wrapped.Activities), nil
	}

	resp, err := p.client.Chat(ctx, &llm.ChatRequest{
		Model:          p.model,
		Messages:       messages,
		ResponseFormat: &llm.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("parser: analyze text: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("parser: response has no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return []ParsedActivity{}, nil
	}
	return decodeActivities(content)
}

// cleanActivities trims the schema-mode reply the same way the tolerant
// decode does: blank activity labels are dropped and a missing quantity
// becomes 1.
func cleanActivities(list []ParsedActivity) []ParsedActivity {
	out := make([]ParsedActivity, 0, len(list))
	for _, a := range list {
		a.Activity = strings.TrimSpace(a.Activity)
		if a.Activity == "" {
			continue
		}
		a.Unit = strings.TrimSpace(a.Unit)
		if a.Quantity == 0 {
			a.Quantity = 1
		}
		out = append(out, a)
	}
	return out
}

// decodeActivities accepts either a bare JSON array or an object wrapping
// one; some models insist on a top-level object under json_object mode.
func decodeActivities(content string) ([]ParsedActivity, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parser: decode model reply %q: %w", truncate(content, 200), err)
	}

	list, ok := raw.([]any)
	if !ok {
		if obj, isObj := raw.(map[string]any); isObj {
			list = unwrapList(obj)
		}
	}
	if list == nil {
		return []ParsedActivity{}, nil
	}

	out := make([]ParsedActivity, 0, len(list))
	for _, item := range list {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		activity := strings.TrimSpace(stringField(fields, "activity"))
		if activity == "" {
			continue
		}
		out = append(out, ParsedActivity{
			Activity: activity,
			Quantity: quantityField(fields),
			Unit:     strings.TrimSpace(stringField(fields, "unit")),
		})
	}
	return out, nil
}

// unwrapList extracts the list from an {"activities": [...]} wrapper.
// Arrays under any other key are not ours to ingest.
func unwrapList(obj map[string]any) []any {
	if v, ok := obj["activities"]; ok {
		if list, ok := v.([]any); ok {
			return list
		}
	}
	return nil
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// quantityField coerces the quantity value, defaulting to 1 when the
// model leaves it out or sends something unusable.
func quantityField(fields map[string]any) float64 {
	v, ok := fields["quantity"]
	if !ok || v == nil {
		return 1
	}
	switch q := v.(type) {
	case json.Number:
		if f, err := q.Float64(); err == nil {
			return f
		}
	case float64:
		return q
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(q), 64); err == nil {
			return f
		}
	}
	return 1
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
