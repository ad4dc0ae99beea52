package discord

import "github.com/bwmarrin/discordgo"

// IntegerOption returns the named integer option of a slash command.
func IntegerOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, bool) {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return opt.IntValue(), true
		}
	}
	return 0, false
}
