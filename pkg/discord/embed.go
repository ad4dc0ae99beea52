// Package discord holds the message building blocks shared by the Discord adapters.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"congreso/internal/domain"
)

// EmbedColor is the accent used on every embed the bot posts.
const EmbedColor = 0x5865F2

// MaxEmbedFields is Discord's limit of fields per embed.
const MaxEmbedFields = 25

// StatusEmoji maps an occupancy color to a traffic light.
func StatusEmoji(color string) string {
	switch color {
	case "red":
		return "🔴"
	case "yellow":
		return "🟡"
	}
	return "🟢"
}

// FormatPlaces renders "enrolled/capacity".
func FormatPlaces(o domain.Occupancy) string {
	return fmt.Sprintf("%d/%d", o.EnrolledCount, o.MaxCapacity)
}

// OccupancyField renders one workshop; detail is the translated seat line.
func OccupancyField(title, detail string, o domain.Occupancy) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("%s %s", StatusEmoji(o.Color()), title),
		Value: detail,
	}
}

// OccupancyEmbed wraps the fields, keeping the first MaxEmbedFields.
func OccupancyEmbed(title, description string, fields []*discordgo.MessageEmbedField) *discordgo.MessageEmbed {
	if len(fields) > MaxEmbedFields {
		fields = fields[:MaxEmbedFields]
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       EmbedColor,
		Fields:      fields,
	}
}
