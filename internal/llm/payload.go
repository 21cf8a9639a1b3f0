// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when model output holds no valid JSON payload.
var ErrNoJSON = errors.New("no JSON payload in model output")

const fence = "```"

// ExtractJSON returns the JSON payload of possibly decorated model output.
//
// The text is trimmed. When it is wrapped in a code fence (```json or a
// bare ```), the fenced content is used; otherwise the text itself. The
// result must be valid JSON, else the decode error is returned wrapped in
// ErrNoJSON.
func ExtractJSON(raw string) ([]byte, error) {
	payload := StripFence(raw)
	if payload == "" {
		return nil, fmt.Errorf("%w: output is empty", ErrNoJSON)
	}

	var probe json.RawMessage
	if err := json.Unmarshal([]byte(payload), &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoJSON, err)
	}
	return []byte(payload), nil
}

// StripFence removes one surrounding code fence, with or without a
// language tag, and trims whitespace. Text without a leading fence is only
// trimmed.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, fence) {
		return s
	}

	s = strings.TrimPrefix(s, fence)
	// Drop the info string ("json", "JSON", ...) up to the first newline.
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		if info := strings.TrimSpace(s[:nl]); !strings.ContainsAny(info, "{[") {
			s = s[nl+1:]
		}
	} else {
		s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}

	s = strings.TrimSpace(s)
	if end := strings.LastIndex(s, fence); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}
