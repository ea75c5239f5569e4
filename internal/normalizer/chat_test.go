package normalizer

import (
	"context"
	"strings"
	"testing"
	"time"
)

const chatExportJSON = `{
	"guild": {"id": "g1", "name": "Test Guild"},
	"channel": {"id": "c1", "name": "general", "category": "Text"},
	"exportedAt": "2024-03-05T00:00:00Z",
	"messages": [
		{
			"id": "m1",
			"timestamp": "2024-03-01T10:00:00",
			"content": "Hello",
			"author": {"name": "alice"}
		},
		{
			"id": "m2",
			"timestamp": "2024-03-01T23:59:00",
			"content": "Late reply",
			"author": {"name": "bob"},
			"reactions": [{"emoji": {"name": "thumbsup"}, "count": 2}]
		},
		{
			"id": "m3",
			"timestamp": "2024-03-02T08:00:00",
			"content": "Next day",
			"author": {"name": "alice"}
		},
		{
			"id": "m4",
			"timestamp": "2024-03-02T08:01:00",
			"content": "   ",
			"author": {"name": "bob"}
		}
	]
}`

func TestChat_Normalize_GroupsByDay(t *testing.T) {
	c := NewChat()

	blocks, err := c.Normalize(context.Background(), RawFile{Path: "export.json", Content: []byte(chatExportJSON)})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("Normalize() returned %d blocks, want 2 (one per day)", len(blocks))
	}

	if day, _ := blocks[0].Meta["day"].(string); day != "2024-03-01" {
		t.Errorf("block 0 day = %q, want 2024-03-01", day)
	}
	if day, _ := blocks[1].Meta["day"].(string); day != "2024-03-02" {
		t.Errorf("block 1 day = %q, want 2024-03-02", day)
	}

	// m4 is whitespace-only and must be dropped.
	if count, _ := blocks[1].Meta["messageCount"].(int); count != 1 {
		t.Errorf("block 1 messageCount = %d, want 1", count)
	}

	if guild, _ := blocks[0].Meta["guildName"].(string); guild != "Test Guild" {
		t.Errorf("guildName = %q, want Test Guild", guild)
	}
}

func TestChat_Normalize_ConversationFormat(t *testing.T) {
	c := NewChat()

	blocks, err := c.Normalize(context.Background(), RawFile{Path: "export.json", Content: []byte(chatExportJSON)})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	text := blocks[0].Text
	if !strings.HasPrefix(text, "Channel: general\n\n") {
		t.Errorf("conversation missing channel header: %q", text)
	}
	if !strings.Contains(text, "[3/1/2024, 10:00:00 AM] alice: Hello") {
		t.Errorf("conversation missing localized message line: %q", text)
	}
	if !strings.Contains(text, "[3/1/2024, 11:59:00 PM] bob: Late reply\n[Reactions: thumbsup(2)]") {
		t.Errorf("conversation missing reactions summary: %q", text)
	}
}

func TestChat_Normalize_TimestampFallback(t *testing.T) {
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	c := &Chat{now: func() time.Time { return fixed }}

	export := `{
		"guild": {"id": "g1", "name": "G"},
		"channel": {"id": "c1", "name": "general"},
		"messages": [
			{"id": "m1", "timestamp": "not-a-date", "content": "kept anyway", "author": {"name": "alice"}}
		]
	}`

	blocks, err := c.Normalize(context.Background(), RawFile{Path: "export.json", Content: []byte(export)})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("Normalize() returned %d blocks, want 1", len(blocks))
	}
	if day, _ := blocks[0].Meta["day"].(string); day != "2024-06-15" {
		t.Errorf("fallback day = %q, want 2024-06-15", day)
	}
	if !strings.Contains(blocks[0].Text, "kept anyway") {
		t.Error("message with unparseable timestamp was dropped")
	}
	// The raw timestamp survives in the rendered line.
	if !strings.Contains(blocks[0].Text, "[not-a-date]") {
		t.Errorf("unparseable timestamp not kept as-is: %q", blocks[0].Text)
	}
}

func TestChat_Normalize_Errors(t *testing.T) {
	c := NewChat()

	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid json", content: "{not json"},
		{name: "missing guild", content: `{"guild": {}, "channel": {"id": "c1"}, "messages": [{"id": "m", "content": "x"}]}`},
		{name: "missing channel", content: `{"guild": {"id": "g1"}, "channel": {}, "messages": [{"id": "m", "content": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Normalize(context.Background(), RawFile{Path: "export.json", Content: []byte(tt.content)})
			if err == nil {
				t.Error("Normalize() expected error, got nil")
			}
		})
	}
}

func TestChat_Normalize_EmptyExport(t *testing.T) {
	c := NewChat()

	export := `{"guild": {"id": "g1"}, "channel": {"id": "c1"}, "messages": []}`
	blocks, err := c.Normalize(context.Background(), RawFile{Path: "export.json", Content: []byte(export)})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("Normalize() returned %d blocks for empty export, want 0", len(blocks))
	}
}

func TestLocalizeTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2024-03-01T10:00:00", want: "3/1/2024, 10:00:00 AM"},
		{in: "2024-03-01T23:59:00Z", want: "3/1/2024, 11:59:00 PM"},
		{in: "garbage", want: "garbage"},
		{in: "", want: "Unknown time"},
	}

	for _, tt := range tests {
		if got := localizeTimestamp(tt.in); got != tt.want {
			t.Errorf("localizeTimestamp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
