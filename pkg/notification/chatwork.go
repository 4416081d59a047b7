package notification

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const chatworkAPI = "https://api.chatwork.com/v2"

// ChatworkNotifier posts messages to a Chatwork room
type ChatworkNotifier struct {
	config ChatworkConfig
}

// NewChatworkNotifier creates a new Chatwork notifier
func NewChatworkNotifier(config ChatworkConfig) *ChatworkNotifier {
	if config.BaseURL == "" {
		config.BaseURL = chatworkAPI
	}

	return &ChatworkNotifier{
		config: config,
	}
}

// Send sends a notification message to Chatwork
func (c *ChatworkNotifier) Send(ctx context.Context, message *Message) error {
	apiURL := fmt.Sprintf("%s/rooms/%s/messages", strings.TrimSuffix(c.config.BaseURL, "/"), c.config.RoomID)

	data := url.Values{}
	data.Set("body", c.formatMessage(message))
	data.Set("self_unread", "0")

	headers := map[string]string{"X-ChatWorkToken": c.config.APIToken}

	resp, err := post(ctx, apiURL, "application/x-www-form-urlencoded", strings.NewReader(data.Encode()), headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chatwork API returned status %d", resp.StatusCode)
	}

	return nil
}

// GetChannelType returns the notification channel type
func (c *ChatworkNotifier) GetChannelType() NotificationChannel {
	return ChannelChatwork
}

func (c *ChatworkNotifier) formatMessage(message *Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[info][title]%s %s[/title]\n", c.getEmojiForType(message.Type), message.Title)
	fmt.Fprintf(&b, "Time: %s\n", message.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString("[hr]\n")

	if message.Text != "" {
		fmt.Fprintf(&b, "%s\n", message.Text)
	}

	for _, key := range sortedKeys(message.Fields) {
		fmt.Fprintf(&b, "• %s: %v\n", key, message.Fields[key])
	}

	if message.ConfigName != "" {
		b.WriteString("[hr]\n")
		fmt.Fprintf(&b, "Config: %s\n", message.ConfigName)
	}

	b.WriteString("[/info]")

	return b.String()
}

func (c *ChatworkNotifier) getEmojiForType(msgType MessageType) string {
	switch msgType {
	case MessageTypeSuccess:
		return "✅"
	case MessageTypeError:
		return "❌"
	case MessageTypeWarning:
		return "⚠️"
	case MessageTypeInfo:
		return "ℹ️"
	default:
		return "📝"
	}
}
