// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/go-a2a/kbcache/internal/pool"
	"github.com/go-a2a/kbcache/provider"
)

// session is a [provider.Session] grounded in one cached content.
type session struct {
	models *genai.Models
	chat   *genai.Chat
	model  string
	config *genai.GenerateContentConfig
}

var _ provider.Session = (*session)(nil)

// Generate implements [provider.Session].
func (s *session) Generate(ctx context.Context, text string) (string, error) {
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(text), s.config)
	if err != nil {
		return "", translateError("generate content", err)
	}
	return responseText(resp)
}

// Send implements [provider.Session].
func (s *session) Send(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.Send(ctx, genai.NewPartFromText(text))
	if err != nil {
		return "", translateError("send message", err)
	}
	return responseText(resp)
}

// responseText concatenates the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", errors.New("prompt blocked: " + string(resp.PromptFeedback.BlockReason))
		}
		return "", errors.New("model returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", nil
	}

	sb := pool.String.Get()
	defer pool.String.Put(sb)
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
