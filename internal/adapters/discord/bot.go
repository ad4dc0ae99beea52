package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const interactionTimeout = 3 * time.Second

// Bot is the Discord gateway adapter serving slash commands.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	logger  *zap.Logger
}

// NewBot creates a Bot session; Start connects it.
func NewBot(token string, handler *Handler, logger *zap.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bot := &Bot{session: s, handler: handler, logger: logger}
	s.AddHandler(bot.handleInteraction)
	return bot, nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	switch i.ApplicationCommandData().Name {
	case commandOccupancy:
		b.handler.HandleOccupancy(ctx, s, i)
	}
}

// Start opens the gateway, registers the slash commands and blocks until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			b.logger.Warn("register slash command", zap.String("command", cmd.Name), zap.Error(err))
		}
	}

	b.logger.Info("🤖 Discord bot online")
	<-ctx.Done()
	return nil
}
