package main

import (
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/cheevoguild/uwcbot/api"
	"github.com/cheevoguild/uwcbot/api/database"
	"github.com/cheevoguild/uwcbot/api/env"
	"github.com/cheevoguild/uwcbot/api/logger"
	"github.com/cheevoguild/uwcbot/modules"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var Session *discordgo.Session

func main() {
	moduleNames := os.Args[1:]
	if len(moduleNames) == 0 {
		moduleNames = []string{"all"}
	}

	token := env.Get("discord.token")

	if token == "" {
		logger.Err().Print("DISCORD_TOKEN must be set in the environment to run this process")
		return
	}

	defer func() {
		err := logger.Close()
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error closing logger: %s", err.Error())
		}
	}()

	defer database.Close()

	Session, _ = discordgo.New("")
	defer Session.Close()

	modules.Load(Session, moduleNames)

	OpenConnection(token)

	// Wait for a CTRL-C
	fmt.Println(`Now running. Press CTRL-C to exit.`)
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	fmt.Println("Shutting down")
}

func OpenConnection(token string) {
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}
	Session.Token = token
	Session.Identify.Intents = api.GetIntent()

	EnableCommands(Session)

	err := Session.Open()
	if err != nil {
		logger.Err().Print(err.Error())
		os.Exit(1)
	}
}
