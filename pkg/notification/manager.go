package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

type target struct {
	config   Config
	notifier Notifier
}

// Manager fans entry events out to the configured channels
type Manager struct {
	targets []target
	log     hclog.Logger
}

// NewManager builds notifiers for every enabled configuration
func NewManager(configs []Config, log hclog.Logger) (*Manager, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	m := &Manager{log: log.Named("notify")}

	var result *multierror.Error
	for _, config := range configs {
		if !config.Enabled {
			continue
		}

		notifier, err := NewNotifier(config)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("notification '%s': %w", config.Name, err))
			continue
		}

		m.AddNotifier(config, notifier)
	}

	return m, result.ErrorOrNil()
}

// AddNotifier registers a notifier under a configuration
func (m *Manager) AddNotifier(config Config, notifier Notifier) {
	m.targets = append(m.targets, target{config: config, notifier: notifier})
	m.log.Debug("added notifier", "channel", notifier.GetChannelType(), "config", config.Name)
}

// GetNotifierCount returns the number of active notifiers
func (m *Manager) GetNotifierCount() int {
	return len(m.targets)
}

// Notify sends an entry event to every channel subscribed to its outcome. Channels are
// tried in configuration order and every failure is returned.
func (m *Manager) Notify(ctx context.Context, event *EntryEvent) error {
	var result *multierror.Error

	for _, t := range m.targets {
		if event.Failed() && !t.config.NotifyOnError {
			continue
		}
		if !event.Failed() && !t.config.NotifyOnSuccess {
			continue
		}

		message := NewEntryMessage(event)
		message.ConfigName = t.config.Name

		if err := t.notifier.Send(ctx, message); err != nil {
			m.log.Warn("notification failed", "channel", t.notifier.GetChannelType(), "config", t.config.Name, "error", err)
			result = multierror.Append(result, fmt.Errorf("%s (%s): %w", t.config.Name, t.notifier.GetChannelType(), err))
			continue
		}

		m.log.Debug("notification sent", "channel", t.notifier.GetChannelType(), "config", t.config.Name)
	}

	return result.ErrorOrNil()
}

// NewNotifier creates a notifier from a configuration
func NewNotifier(config Config) (Notifier, error) {
	switch NotificationChannel(config.Channel) {
	case ChannelChatwork:
		var c ChatworkConfig
		if err := decode(config.Config, &c); err != nil {
			return nil, fmt.Errorf("failed to parse Chatwork config: %w", err)
		}
		if c.APIToken == "" || c.RoomID == "" {
			return nil, fmt.Errorf("api_token and room_id are required for Chatwork")
		}
		return NewChatworkNotifier(c), nil

	case ChannelDiscord:
		var c DiscordConfig
		if err := decode(config.Config, &c); err != nil {
			return nil, fmt.Errorf("failed to parse Discord config: %w", err)
		}
		if c.WebhookURL == "" {
			return nil, fmt.Errorf("webhook_url is required for Discord")
		}
		return NewDiscordNotifier(c), nil

	case ChannelSlack:
		var c SlackConfig
		if err := decode(config.Config, &c); err != nil {
			return nil, fmt.Errorf("failed to parse Slack config: %w", err)
		}
		if c.WebhookURL == "" {
			return nil, fmt.Errorf("webhook_url is required for Slack")
		}
		return NewSlackNotifier(c), nil

	default:
		return nil, fmt.Errorf("unsupported notification channel: %s", config.Channel)
	}
}

// decode converts a loosely typed configuration map into a channel specific struct
func decode(config map[string]any, v any) error {
	b, err := json.Marshal(config)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}
