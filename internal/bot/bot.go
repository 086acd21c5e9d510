// Package bot wires the command handlers to Discord slash commands.
package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"remindd/internal/command"
	"remindd/internal/notify"
)

// commandDefinitions are the slash commands registered on startup.
var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        "add",
		Description: "Add new events",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "title",
				Description: "Event title",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date",
				Description: "Event due date (YYYY-MM-DD)",
				Required:    true,
			},
		},
	},
	{
		Name:        "show",
		Description: "Show upcoming events",
	},
}

// Bot owns the Discord session and routes interactions to the command
// handler.
type Bot struct {
	session *discordgo.Session
	handler *command.Handler
	log     *zap.Logger
}

// New creates a Bot with a configured but unopened session.
func New(token string, handler *command.Handler, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		session: session,
		handler: handler,
		log:     logger.Named("bot"),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Open connects the gateway and registers the slash commands.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	appID := b.session.State.User.ID
	for _, def := range commandDefinitions {
		if _, err := b.session.ApplicationCommandCreate(appID, "", def); err != nil {
			b.session.Close()
			return fmt.Errorf("register command %q: %w", def.Name, err)
		}
	}
	return nil
}

// Close disconnects the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}

// Session exposes the underlying session for the notification
// dispatcher.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("bot is ready", zap.String("user", r.User.Username))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	req, ok := parseInteraction(data)
	if !ok {
		return
	}

	res := b.handler.Handle(req)
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(res),
	}); err != nil {
		b.log.Error("failed to respond to interaction",
			zap.String("command", data.Name),
			zap.Error(err))
	}
}

// parseInteraction maps interaction data onto the closed command set.
// Unknown command names are ignored.
func parseInteraction(data discordgo.ApplicationCommandInteractionData) (command.Request, bool) {
	switch data.Name {
	case "add":
		return command.Request{
			Kind:     command.KindAdd,
			Title:    optionString(data.Options, "title"),
			DateText: optionString(data.Options, "date"),
		}, true
	case "show":
		return command.Request{Kind: command.KindShow}, true
	default:
		return command.Request{}, false
	}
}

// responseData turns a command result into an interaction response,
// attaching the payload as an embed when present.
func responseData(res command.Result) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{Content: res.Content}
	if res.Payload != nil {
		data.Embeds = []*discordgo.MessageEmbed{notify.Embed(*res.Payload)}
	}
	return data
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range options {
		if o.Name == name {
			return o.StringValue()
		}
	}
	return ""
}
