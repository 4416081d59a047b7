package notification

import (
	"context"
	"time"
)

// NotificationChannel represents the type of notification channel
type NotificationChannel string

const (
	ChannelChatwork NotificationChannel = "chatwork"
	ChannelDiscord  NotificationChannel = "discord"
	ChannelSlack    NotificationChannel = "slack"
)

// MessageType represents the type of notification message
type MessageType string

const (
	MessageTypeSuccess MessageType = "success"
	MessageTypeError   MessageType = "error"
	MessageTypeInfo    MessageType = "info"
	MessageTypeWarning MessageType = "warning"
)

// Message represents a notification message to be sent
type Message struct {
	Type       MessageType    `json:"type"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Fields     map[string]any `json:"fields,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	ConfigName string         `json:"config_name,omitempty"`
}

// Action is the remote operation an event reports on
type Action string

const (
	ActionCreated Action = "created"
	ActionTrashed Action = "trashed"
)

// EntryEvent describes the outcome of a create or trash operation
type EntryEvent struct {
	Action     Action    `json:"action"`
	Account    string    `json:"account"`
	Title      string    `json:"title"`
	Kind       string    `json:"kind"`
	ResourceID string    `json:"resource_id,omitempty"`
	Link       string    `json:"link,omitempty"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// Failed reports whether the operation failed
func (e *EntryEvent) Failed() bool {
	return e.Error != ""
}

// Notifier interface defines the methods that all notification implementations must provide
type Notifier interface {
	// Send sends a notification message
	Send(ctx context.Context, message *Message) error

	// GetChannelType returns the notification channel type
	GetChannelType() NotificationChannel
}

// ChatworkConfig holds Chatwork-specific configuration
type ChatworkConfig struct {
	APIToken string `json:"api_token"`
	RoomID   string `json:"room_id"`
	// BaseURL overrides the Chatwork API root
	BaseURL string `json:"base_url,omitempty"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	WebhookURL string `json:"webhook_url"`
	Username   string `json:"username,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// SlackConfig holds Slack-specific configuration
type SlackConfig struct {
	WebhookURL string `json:"webhook_url"`
	Channel    string `json:"channel,omitempty"`
	Username   string `json:"username,omitempty"`
	IconEmoji  string `json:"icon_emoji,omitempty"`
}

// Config describes one notification target
type Config struct {
	Name            string         `json:"name" yaml:"name"`
	Channel         string         `json:"channel" yaml:"channel"`
	Config          map[string]any `json:"config" yaml:"config"`
	NotifyOnSuccess bool           `json:"notify_on_success" yaml:"notify_on_success"`
	NotifyOnError   bool           `json:"notify_on_error" yaml:"notify_on_error"`
	Enabled         bool           `json:"enabled" yaml:"enabled"`
}
