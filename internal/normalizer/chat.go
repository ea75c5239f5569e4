package normalizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"corpussearch/internal/contextutil"
)

// chatExport mirrors the structure of a chat transcript export file.
type chatExport struct {
	Guild      chatGuild     `json:"guild"`
	Channel    chatChannel   `json:"channel"`
	ExportedAt string        `json:"exportedAt"`
	Messages   []chatMessage `json:"messages"`
}

type chatGuild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type chatChannel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type chatMessage struct {
	ID        string         `json:"id"`
	Timestamp string         `json:"timestamp"`
	Content   string         `json:"content"`
	Author    chatAuthor     `json:"author"`
	Reactions []chatReaction `json:"reactions"`
}

type chatAuthor struct {
	Name string `json:"name"`
}

type chatReaction struct {
	Emoji chatEmoji `json:"emoji"`
	Count int       `json:"count"`
}

type chatEmoji struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// dayGroup collects the messages of one calendar day, in original order.
type dayGroup struct {
	day      string
	messages []chatMessage
}

// Chat normalizes chat transcript exports. Messages are grouped by calendar
// day and each day becomes one conversational text block.
type Chat struct {
	// now supplies the fallback date for unparseable timestamps.
	now func() time.Time
}

// NewChat creates a chat normalizer.
func NewChat() *Chat {
	return &Chat{now: time.Now}
}

// Type returns the corpus type this normalizer handles.
func (c *Chat) Type() CorpusType {
	return CorpusChat
}

// Normalize parses the export and returns one block per conversation day.
// Empty or whitespace-only messages are discarded. A message whose timestamp
// cannot be parsed is kept under the current processing date with a warning.
func (c *Chat) Normalize(ctx context.Context, file RawFile) ([]Block, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var export chatExport
	if err := json.Unmarshal(file.Content, &export); err != nil {
		return nil, fmt.Errorf("invalid chat export: %w", err)
	}
	if export.Guild.ID == "" || export.Channel.ID == "" {
		return nil, fmt.Errorf("chat export missing guild or channel identity")
	}
	if len(export.Messages) == 0 {
		logger.InfoContext(ctx, "no messages in chat export", "file", file.Path)
		return nil, nil
	}

	groups := c.groupByDay(ctx, export.Messages, file.Path)

	blocks := make([]Block, 0, len(groups))
	for _, group := range groups {
		blocks = append(blocks, Block{
			Text: formatConversation(group.messages, export.Channel.Name),
			Meta: map[string]any{
				"guildId":         export.Guild.ID,
				"guildName":       export.Guild.Name,
				"channelId":       export.Channel.ID,
				"channelName":     export.Channel.Name,
				"channelCategory": export.Channel.Category,
				"day":             group.day,
				"messageCount":    len(group.messages),
				"exportDate":      export.ExportedAt,
			},
		})
	}
	return blocks, nil
}

// groupByDay buckets messages by the date portion of their timestamp,
// preserving message order within a day and first-seen day order.
func (c *Chat) groupByDay(ctx context.Context, messages []chatMessage, path string) []dayGroup {
	logger := contextutil.LoggerFromContext(ctx)

	var groups []dayGroup
	index := make(map[string]int)

	for _, msg := range messages {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}

		day := dayOf(msg.Timestamp)
		if day == "" {
			day = c.now().Format("2006-01-02")
			logger.WarnContext(ctx, "failed to parse message timestamp, using current date",
				"file", path, "message_id", msg.ID, "timestamp", msg.Timestamp, "fallback_day", day)
		}

		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, dayGroup{day: day})
		}
		groups[i].messages = append(groups[i].messages, msg)
	}
	return groups
}

// dayOf extracts the YYYY-MM-DD prefix of a timestamp, or "" if the
// timestamp has no valid date portion.
func dayOf(timestamp string) string {
	day, _, _ := strings.Cut(timestamp, "T")
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return ""
	}
	return day
}

// formatConversation serializes one day of messages into a single text
// block: a channel header line, then one line per message with any
// reactions appended as a bracketed summary.
func formatConversation(messages []chatMessage, channelName string) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		content := msg.Content
		if len(msg.Reactions) > 0 {
			reactions := make([]string, 0, len(msg.Reactions))
			for _, r := range msg.Reactions {
				name := r.Emoji.Name
				if name == "" {
					name = r.Emoji.Code
				}
				reactions = append(reactions, fmt.Sprintf("%s(%d)", name, r.Count))
			}
			content += fmt.Sprintf("\n[Reactions: %s]", strings.Join(reactions, ", "))
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", localizeTimestamp(msg.Timestamp), msg.Author.Name, content))
	}
	return fmt.Sprintf("Channel: %s\n\n%s", channelName, strings.Join(lines, "\n\n"))
}

// localizeTimestamp renders an RFC3339-ish timestamp in a human-readable
// form. Unparseable timestamps are kept as-is.
func localizeTimestamp(timestamp string) string {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t.Format("1/2/2006, 3:04:05 PM")
		}
	}
	if timestamp == "" {
		return "Unknown time"
	}
	return timestamp
}
