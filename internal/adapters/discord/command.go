package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/ports/input"
	pkgdiscord "congreso/pkg/discord"
	"congreso/pkg/tz"
)

const (
	commandOccupancy = "cupo"
	optionWorkshop   = "taller"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        commandOccupancy,
		Description: "Muestra el cupo de los talleres",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optionWorkshop,
				Description: "ID del taller",
				Required:    false,
			},
		},
	},
}

// HandleOccupancy answers /cupo [taller] with the seat ledger of every
// active workshop, or of one when the option is given.
func (h *Handler) HandleOccupancy(ctx context.Context, r interactionResponder, i *discordgo.InteractionCreate) {
	locale := h.localeOf(i)

	list, err := h.enrollments.WorkshopOccupancy(ctx)
	if err == nil {
		if id, ok := pkgdiscord.IntegerOption(i.ApplicationCommandData().Options, optionWorkshop); ok {
			list, err = only(list, id)
		}
	}
	if err != nil {
		if domain.Code(err) == "" {
			h.logger.Error("workshop occupancy", zap.Error(err))
		}
		h.respond(respondEphemeral(r, i.Interaction, pkgdiscord.ErrorMessage(h.tr, locale, err)))
		return
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(list))
	for _, w := range list {
		detail := h.tr.T(locale, "occupancy.line", map[string]any{
			"Places":   pkgdiscord.FormatPlaces(w.Occupancy),
			"Waitlist": w.Occupancy.WaitlistCount,
			"Starts":   tz.Format(w.Activity.StartsAt, h.loc),
		})
		fields = append(fields, pkgdiscord.OccupancyField(w.Activity.Title, detail, w.Occupancy))
	}
	description := ""
	if len(fields) == 0 {
		description = h.tr.T(locale, "occupancy.empty", nil)
	}
	embed := pkgdiscord.OccupancyEmbed(h.tr.T(locale, "occupancy.title", nil), description, fields)
	h.respond(respondEmbed(r, i.Interaction, embed))
}

func only(list []input.WorkshopOccupancy, id int64) ([]input.WorkshopOccupancy, error) {
	if id <= 0 {
		return nil, domain.Invalid(optionWorkshop, "must be a positive integer")
	}
	for _, w := range list {
		if int64(w.Activity.ID) == id {
			return []input.WorkshopOccupancy{w}, nil
		}
	}
	return nil, domain.ErrWorkshopNotFound
}

// localeOf prefers the locale of the Discord client.
func (h *Handler) localeOf(i *discordgo.InteractionCreate) string {
	if i.Locale != "" {
		return string(i.Locale)
	}
	return h.defaultLocale
}

func (h *Handler) respond(err error) {
	if err != nil {
		h.logger.Warn("interaction response failed", zap.Error(err))
	}
}
