package polls

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/cheevoguild/uwcbot/api"
	"github.com/cheevoguild/uwcbot/api/logger"
)

var pollResultsOperation = &discordgo.ApplicationCommand{
	Name:        "pollresults",
	Description: "Show the current tally for a poll",
	Type:        discordgo.ChatApplicationCommand,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        "id",
			Description: "Message ID for the poll",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    true,
		},
	},
}

func runResultsCommand(ds *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = ds.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})

	messageId := i.ApplicationCommandData().Options[0].StringValue()

	poll, err := service.GetPoll(messageId)
	if err != nil {
		logger.Err().Println(err.Error())
		respond(ds, i, "Unable to get poll")
		return
	}
	if poll == nil {
		respond(ds, i, "No poll found for that message")
		return
	}

	tallies, err := service.GetPollResults(poll.ID)
	if err != nil {
		logger.Err().Println(err.Error())
		respond(ds, i, "Unable to get poll results")
		return
	}

	lines := make([]string, 0, len(poll.Options))
	for k, option := range poll.Options {
		lines = append(lines, fmt.Sprintf("%s: %d", option.Text, tallies[k]))
	}

	embed := &discordgo.MessageEmbed{
		Title:       poll.Question,
		Description: strings.Join(lines, "\n"),
	}

	// post into the channel the poll lives in, not where the command ran
	target := i.ChannelID
	if c := api.GetChannel(ds, poll.ChannelId); c != nil {
		target = c.ID
	}

	_, _ = ds.ChannelMessageSendEmbed(target, embed)
	respond(ds, i, "Results posted")
}
