package api

import "github.com/bwmarrin/discordgo"

// Module is a feature that can be attached to the bot session.
// Load is called once during startup, before the gateway connection opens.
type Module interface {
	Load(ds *discordgo.Session)
	Name() string
}
