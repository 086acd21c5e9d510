// Package notify delivers built payloads to the chat channel.
package notify

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"remindd/internal/digest"
)

// ReminderContent is the message body framing the scheduled embed.
const ReminderContent = "I remind you of upcoming events!"

// Dispatcher delivers a payload to a destination channel. The core
// builds payloads and calls Send; it does not implement transport.
type Dispatcher interface {
	Send(ctx context.Context, channelID string, p digest.Payload, suppressEveryone bool) error
}

// Embed converts a payload into a Discord embed.
func Embed(p digest.Payload) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(p.Fields))
	for _, f := range p.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  f.Name,
			Value: f.Body,
		})
	}
	return &discordgo.MessageEmbed{
		Title:  p.Title,
		Color:  p.Color,
		Fields: fields,
	}
}
