// Package notification delivers finished reports to Telegram.
package notification

import (
	"fmt"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/colinmakerofthings/logpilot-cli/internal/ai"
	internalerrors "github.com/colinmakerofthings/logpilot-cli/internal/errors"
)

const (
	// maxMessageLength is Telegram's hard limit per message.
	maxMessageLength = 4096
	// minMessageInterval spaces out consecutive messages to the same
	// channel to stay under Telegram's rate limits.
	minMessageInterval = 1 * time.Second
)

// TelegramClient posts analysis reports to a Telegram channel.
type TelegramClient struct {
	bot             *tgbotapi.BotAPI
	archiveChannel  int64
	hostname        string
	lastMessageTime time.Time
}

// NewTelegramClient creates a Telegram client for the given bot token and
// archive channel.
func NewTelegramClient(botToken string, archiveChannel int64) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		// Telegram errors can embed the bot token from the request URL.
		return nil, internalerrors.Wrapf(err, "failed to create Telegram bot")
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &TelegramClient{
		bot:            bot,
		archiveChannel: archiveChannel,
		hostname:       hostname,
	}, nil
}

// SendReport posts the aggregated analysis report with a header carrying
// run metadata. Long reports are split across multiple messages.
func (t *TelegramClient) SendReport(summary string, files, entries, chunks int, stats *ai.Stats) error {
	message := t.formatMessage(summary, files, entries, chunks, stats)
	if err := t.sendToChannel(t.archiveChannel, message); err != nil {
		return fmt.Errorf("failed to send to archive channel: %w", err)
	}
	return nil
}

// formatMessage renders the report header and body in MarkdownV2.
func (t *TelegramClient) formatMessage(summary string, files, entries, chunks int, stats *ai.Stats) string {
	var msg strings.Builder

	msg.WriteString("🔍 *Log Analysis Report*\n")
	msg.WriteString(fmt.Sprintf("🖥 Host\\: %s\n", escapeMarkdown(t.hostname)))
	msg.WriteString(fmt.Sprintf("📅 Date\\: %s\n", escapeMarkdown(time.Now().Format("2006-01-02 15:04:05"))))
	if stats != nil && stats.Provider != "" {
		msg.WriteString(fmt.Sprintf("🤖 Provider\\: %s\n", escapeMarkdown(stats.Provider)))
		msg.WriteString(fmt.Sprintf("🧠 Model\\: %s\n", escapeMarkdown(stats.Model)))
	}
	msg.WriteString("\n📋 *Run Stats*\n")
	msg.WriteString(fmt.Sprintf("• Files\\: %d\n", files))
	msg.WriteString(fmt.Sprintf("• Entries\\: %d\n", entries))
	msg.WriteString(fmt.Sprintf("• Chunks\\: %d\n", chunks))
	if stats != nil {
		msg.WriteString(fmt.Sprintf("• Tokens\\: %d in / %d out\n", stats.InputTokens, stats.OutputTokens))
		msg.WriteString(fmt.Sprintf("• Cost\\: %s\n", escapeMarkdown(fmt.Sprintf("$%.4f", stats.CostUSD))))
		msg.WriteString(fmt.Sprintf("• Duration\\: %s\n", escapeMarkdown(fmt.Sprintf("%.2fs", stats.DurationSeconds))))
	}
	msg.WriteString("\n📊 *Summary*\n")
	msg.WriteString(escapeMarkdown(summary))
	msg.WriteString("\n")

	return msg.String()
}

// sendToChannel sends a message, splitting it at Telegram's size limit and
// pacing consecutive sends.
func (t *TelegramClient) sendToChannel(channelID int64, message string) error {
	for _, msg := range t.splitMessage(message) {
		t.waitForRateLimit()

		msgConfig := tgbotapi.NewMessage(channelID, msg)
		msgConfig.ParseMode = "MarkdownV2"
		if _, err := t.bot.Send(msgConfig); err != nil {
			return internalerrors.Wrapf(err, "failed to send message")
		}

		t.lastMessageTime = time.Now()
	}
	return nil
}

func (t *TelegramClient) waitForRateLimit() {
	if t.lastMessageTime.IsZero() {
		return
	}
	if elapsed := time.Since(t.lastMessageTime); elapsed < minMessageInterval {
		time.Sleep(minMessageInterval - elapsed)
	}
}

// splitMessage breaks a long message into chunks under Telegram's limit,
// preferring line boundaries.
func (t *TelegramClient) splitMessage(message string) []string {
	if len(message) <= maxMessageLength {
		return []string{message}
	}

	var messages []string
	var current strings.Builder
	for _, line := range strings.Split(message, "\n") {
		if current.Len()+len(line)+1 > maxMessageLength {
			if current.Len() > 0 {
				messages = append(messages, current.String())
				current.Reset()
			}
			// A single overlong line is split mid-line.
			if len(line) > maxMessageLength {
				for i := 0; i < len(line); i += maxMessageLength {
					end := i + maxMessageLength
					if end > len(line) {
						end = len(line)
					}
					messages = append(messages, line[i:end])
				}
				continue
			}
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		messages = append(messages, current.String())
	}
	return messages
}

// escapeMarkdown escapes the characters MarkdownV2 reserves.
func escapeMarkdown(text string) string {
	specialChars := []string{
		"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!", ":",
	}
	result := text
	for _, char := range specialChars {
		result = strings.ReplaceAll(result, char, "\\"+char)
	}
	return result
}

// GetBotInfo returns information about the connected bot.
func (t *TelegramClient) GetBotInfo() map[string]interface{} {
	return map[string]interface{}{
		"username":        t.bot.Self.UserName,
		"archive_channel": t.archiveChannel,
		"hostname":        t.hostname,
	}
}

// Close stops the underlying bot client.
func (t *TelegramClient) Close() error {
	t.bot.StopReceivingUpdates()
	return nil
}
