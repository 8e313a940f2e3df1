package api

import (
	"github.com/bwmarrin/discordgo"
	"strings"
)

type CommandFunc func(session *discordgo.Session, message *discordgo.MessageCreate, cmd string, args []string)

var registeredCommands = make(map[string]CommandFunc)

// RegisterCommand binds a prefix command name to its executor. Registering ""
// installs a fallback executor for unknown commands.
func RegisterCommand(cmd string, commandFunc CommandFunc) {
	registeredCommands[strings.ToLower(cmd)] = commandFunc
}

func GetCommand(cmd string) CommandFunc {
	executor := registeredCommands[strings.ToLower(cmd)]
	if executor == nil {
		return registeredCommands[""]
	}
	return executor
}
