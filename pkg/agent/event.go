package agent

import (
	"encoding/json"
)

type Part struct {
	Text string `json:"text"`
}

// EventContent is either a bare string or a structured {role, parts} object
// on the wire. Decoding keeps track of which form was received so the value
// round-trips unchanged.
type EventContent struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`

	text   string
	isText bool
}

func TextContent(text string) *EventContent {
	return &EventContent{text: text, isText: true}
}

func (c *EventContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.text = s
		c.isText = true
		return nil
	}

	type structured EventContent
	var v structured
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.Role = v.Role
	c.Parts = v.Parts
	c.isText = false
	return nil
}

func (c EventContent) MarshalJSON() ([]byte, error) {
	if c.isText {
		return json.Marshal(c.text)
	}
	type structured struct {
		Role  string `json:"role,omitempty"`
		Parts []Part `json:"parts"`
	}
	return json.Marshal(structured{Role: c.Role, Parts: c.Parts})
}

// Event is one increment of agent output, decoded from a "data: " frame.
// Metadata fields are passed through unmodified.
type Event struct {
	ID            string         `json:"id,omitempty"`
	Type          string         `json:"type,omitempty"`
	Content       *EventContent  `json:"content,omitempty"`
	Timestamp     string         `json:"timestamp,omitempty"`
	Author        string         `json:"author,omitempty"`
	InvocationID  string         `json:"invocationId,omitempty"`
	Partial       bool           `json:"partial,omitempty"`
	UsageMetadata map[string]any `json:"usageMetadata,omitempty"`
	Actions       map[string]any `json:"actions,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ExtractText returns the displayable text of a content payload. An event
// carries displayable text only when the content is a non-empty string, or a
// structured form with at least one part holding non-empty text. Everything
// else yields ok=false and must be ignored by consumers.
func ExtractText(c *EventContent) (string, bool) {
	if c == nil {
		return "", false
	}
	if c.isText {
		if c.text == "" {
			return "", false
		}
		return c.text, true
	}
	for _, part := range c.Parts {
		if part.Text != "" {
			return part.Text, true
		}
	}
	return "", false
}

type Session struct {
	ID        string         `json:"id"`
	AppName   string         `json:"app_name"`
	UserID    string         `json:"user_id"`
	State     map[string]any `json:"state"`
	Events    []Event        `json:"events"`
	CreatedAt json.Number    `json:"created_at"`
	UpdatedAt json.Number    `json:"updated_at"`
}
