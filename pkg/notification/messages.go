package notification

import (
	"fmt"
	"strings"
	"time"
)

// NewEntryMessage builds the message announcing an entry event
func NewEntryMessage(event *EntryEvent) *Message {
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}

	fields := map[string]any{
		"Type":    event.Kind,
		"Account": event.Account,
	}

	if event.ResourceID != "" {
		fields["Resource ID"] = event.ResourceID
	}

	if event.Link != "" {
		fields["Link"] = event.Link
	}

	if event.Failed() {
		fields["Error"] = event.Error

		return &Message{
			Type:      MessageTypeError,
			Title:     fmt.Sprintf("%s failed: %s", capitalise(verbFor(event.Action)), event.Title),
			Text:      fmt.Sprintf("Could not %s '%s'", verbFor(event.Action), event.Title),
			Fields:    fields,
			Timestamp: at,
		}
	}

	return &Message{
		Type:      MessageTypeSuccess,
		Title:     fmt.Sprintf("%s: %s", capitalise(string(event.Action)), event.Title),
		Text:      fmt.Sprintf("'%s' was %s", event.Title, event.Action),
		Fields:    fields,
		Timestamp: at,
	}
}

func verbFor(action Action) string {
	switch action {
	case ActionCreated:
		return "create"
	case ActionTrashed:
		return "trash"
	default:
		return string(action)
	}
}

func capitalise(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
