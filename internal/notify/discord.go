package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"remindd/internal/digest"
)

// Discord posts payloads as embed messages through a discordgo session.
type Discord struct {
	session *discordgo.Session
	log     *zap.Logger
}

// NewDiscord wraps an open session as a Dispatcher.
func NewDiscord(session *discordgo.Session, logger *zap.Logger) *Discord {
	return &Discord{
		session: session,
		log:     logger.Named("notify"),
	}
}

// Send posts the payload to channelID. Unless suppressEveryone is set,
// the message opens with an @everyone mention, matching the daily
// broadcast behavior. The request is bounded by ctx.
func (d *Discord) Send(ctx context.Context, channelID string, p digest.Payload, suppressEveryone bool) error {
	content := ReminderContent
	if !suppressEveryone {
		content = "@everyone " + content
	}

	_, err := d.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{Embed(p)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send reminder to channel %s: %w", channelID, err)
	}

	d.log.Info("reminder sent",
		zap.String("channel_id", channelID),
		zap.Int("fields", len(p.Fields)))
	return nil
}
