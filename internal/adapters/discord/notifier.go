// Package discord connects the congress to the organizers' Discord server:
// promotion announcements and the /cupo slash command.
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"congreso/internal/domain/entities"
	"congreso/internal/ports/output"
	pkgdiscord "congreso/pkg/discord"
	"congreso/pkg/tz"
)

var _ output.Notifier = (*Notifier)(nil)

// messageSender is the part of *discordgo.Session the notifier uses.
type messageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Notifier struct {
	sender    messageSender
	channelID string
	tr        output.T
	locale    string
	loc       *time.Location
}

// NewNotifier builds a bot-token session. It does not open the gateway;
// sending channel messages only needs the REST API.
func NewNotifier(token, channelID string, tr output.T, locale string, loc *time.Location) (*Notifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return newNotifier(s, channelID, tr, locale, loc), nil
}

func newNotifier(sender messageSender, channelID string, tr output.T, locale string, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{sender: sender, channelID: channelID, tr: tr, locale: locale, loc: loc}
}

func (n *Notifier) WaitlistPromoted(ctx context.Context, activity *entities.Activity, participant *entities.Participant) error {
	embed := n.promotionEmbed(activity, participant)
	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send promotion message: %w", err)
	}
	return nil
}

func (n *Notifier) promotionEmbed(activity *entities.Activity, participant *entities.Participant) *discordgo.MessageEmbed {
	desc := n.tr.T(n.locale, "notify.promoted", map[string]any{
		"Name":  participant.FullName(),
		"Title": activity.Title,
	})
	fields := []*discordgo.MessageEmbedField{
		{Name: "📅", Value: tz.Format(activity.StartsAt, n.loc), Inline: true},
	}
	if activity.Location != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "📍", Value: activity.Location, Inline: true})
	}
	return &discordgo.MessageEmbed{
		Title:       activity.Title,
		Description: desc,
		Color:       pkgdiscord.EmbedColor,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: participant.Email},
	}
}
