package polls

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/cheevoguild/uwcbot/api"
	"github.com/cheevoguild/uwcbot/api/database"
	"github.com/cheevoguild/uwcbot/api/env"
	"github.com/cheevoguild/uwcbot/api/logger"
)

type Module struct {
	api.Module
}

var appId string
var service *Service

func (*Module) Load(ds *discordgo.Session) {
	appId = env.Get("app.id")

	var guilds []string
	for _, v := range env.GetStringArray("polls.guilds", ";") {
		if v == "" {
			continue
		}
		guilds = append(guilds, v)
	}

	ds.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		for _, guild := range guilds {
			for _, v := range []*discordgo.ApplicationCommand{createPollOperation, pollResultsOperation} {
				logger.Out().Printf("Registering %s for guild %s\n", v.Name, guild)
				_, err := s.ApplicationCommandCreate(appId, guild, v)
				if err != nil {
					logger.Err().Printf("Cannot create slash command %q: %v", v.Name, err)
				}
			}
		}
	})

	ds.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			{
				if i.ApplicationCommandData().Name == createPollOperation.Name {
					runCreateCommand(s, i)
				}
				if i.ApplicationCommandData().Name == pollResultsOperation.Name {
					runResultsCommand(s, i)
				}
			}
		case discordgo.InteractionMessageComponent:
			{
				if strings.HasPrefix(i.Interaction.MessageComponentData().CustomID, "vote:") {
					_ = ds.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
						Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
						Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
					})

					runVoteCast(ds, i)
				}
			}
		}
	})

	db, err := database.Get()
	if err != nil {
		logger.Err().Println(err.Error())
		return
	}

	err = db.AutoMigrate(&Poll{}, &Vote{})
	if err != nil {
		logger.Err().Println(err.Error())
	}

	service = NewService(db)
}

func splitToRows(choices []string) []discordgo.MessageComponent {
	limit := 5

	components := make([]discordgo.MessageComponent, 0)
	row := discordgo.ActionsRow{}

	for k, v := range choices {
		row.Components = append(row.Components, discordgo.Button{CustomID: "vote:" + strconv.Itoa(k), Style: discordgo.PrimaryButton, Label: v})

		if len(row.Components) == limit {
			components = append(components, row)
			row = discordgo.ActionsRow{}
		}
	}

	if len(row.Components) > 0 {
		components = append(components, row)
	}

	return components
}

func hasDupes(choices []string) bool {
	for k, v := range choices {
		index := k + 1

		for ; index < len(choices); index++ {
			if v == choices[index] {
				return true
			}
		}
	}

	return false
}

func (Module) Name() string {
	return "polls"
}
