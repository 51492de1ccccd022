// Package delivery formats and sends the prediction report.
package delivery

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/MoodTracker/models"
)

// TelegramSender delivers prediction reports to the configured chats
type TelegramSender struct {
	bot     *tgbotapi.BotAPI
	chatIDs []int64
	dryRun  bool
	logger  zerolog.Logger
}

func NewTelegramSender(token string, chatIDs []int64, dryRun bool) (*TelegramSender, error) {
	sender := &TelegramSender{
		chatIDs: chatIDs,
		dryRun:  dryRun,
		logger:  log.With().Str("component", "telegram").Logger(),
	}
	if dryRun || token == "" {
		sender.dryRun = true
		return sender, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	sender.bot = bot
	return sender, nil
}

// SendPrediction formats the prediction with the rolling accuracy footer
// and sends it to every configured chat. In dry-run mode the message is
// logged instead of sent.
func (s *TelegramSender) SendPrediction(prediction models.Prediction, stats models.AccuracyStats) error {
	text := FormatPrediction(prediction, stats)

	if s.dryRun {
		s.logger.Info().Str("message", text).Msg("dry run, skipping telegram delivery")
		return nil
	}

	for _, chatID := range s.chatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := s.bot.Send(msg); err != nil {
			return fmt.Errorf("sending to chat %d: %w", chatID, err)
		}
	}
	s.logger.Info().Int("chats", len(s.chatIDs)).Msg("prediction delivered")
	return nil
}

// FormatPrediction renders the HTML prediction report
func FormatPrediction(p models.Prediction, stats models.AccuracyStats) string {
	var sb strings.Builder

	emoji := "⚪"
	switch p.Direction {
	case models.DirectionLong:
		emoji = "🟢"
	case models.DirectionShort:
		emoji = "🔴"
	}

	sb.WriteString(fmt.Sprintf("%s <b>%s</b> - %.1f%% confidence (%s)\n",
		emoji, p.Direction, p.Confidence, p.Strength))
	sb.WriteString(fmt.Sprintf("Weighted score: %+.3f | Price: $%.2f | Timeframe: %s\n",
		p.WeightedScore, p.CurrentPrice, p.Timeframe))
	sb.WriteString(fmt.Sprintf("Signals: %d bullish / %d bearish (agreement %.0f%%)\n",
		p.SignalsBullish, p.SignalsBearish, p.SignalAgreement*100))

	if len(p.TopFactors) > 0 {
		sb.WriteString("\n<b>Key factors</b>\n")
		for _, f := range p.TopFactors {
			sb.WriteString(fmt.Sprintf("• %s\n", f.Description))
		}
	}

	if stats.Checked > 0 {
		sb.WriteString(fmt.Sprintf("\n📊 Track record: %.1f%% over %d checked predictions",
			stats.OverallAccuracy, stats.Checked))
		if stats.Accuracy7d != nil {
			sb.WriteString(fmt.Sprintf(" | 7d: %.1f%%", *stats.Accuracy7d))
		}
		if stats.Accuracy30d != nil {
			sb.WriteString(fmt.Sprintf(" | 30d: %.1f%%", *stats.Accuracy30d))
		}
	}

	return sb.String()
}
