package polls

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

var createPollOperation = &discordgo.ApplicationCommand{
	Name:        "createpoll",
	Description: "Create a poll with a bunch of options",
	Type:        discordgo.ChatApplicationCommand,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        "title",
			Description: "Title for the poll",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    true,
		},
		{
			Name:        "choices",
			Description: "Allowed choices, separated by |",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    true,
		},
		{
			Name:        "timeout",
			Description: "How long the poll should be valid for (default is 1 day)",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    false,
		},
	},
}

func runCreateCommand(ds *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = ds.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})

	commandData := i.ApplicationCommandData()

	var title string
	var choices []string
	var timeout string

	for _, v := range commandData.Options {
		switch v.Name {
		case "title":
			{
				title = v.StringValue()
			}
		case "choices":
			{
				for _, c := range strings.Split(v.StringValue(), "|") {
					c = strings.TrimSpace(c)
					if c != "" {
						choices = append(choices, c)
					}
				}
			}
		case "timeout":
			{
				timeout = v.StringValue()
			}
		}
	}

	if len(choices) < 2 {
		respond(ds, i, "You need at least 2 choices")
		return
	}

	if len(choices) > 15 {
		respond(ds, i, "Limit of 15 choices")
		return
	}

	if hasDupes(choices) {
		respond(ds, i, "Choices cannot repeat")
		return
	}

	for _, v := range choices {
		if len(v) > 50 {
			respond(ds, i, "Choices can be at most 50 characters")
			return
		}
	}

	endDate := time.Now().AddDate(0, 0, 1)
	if timeout != "" {
		if strings.HasSuffix(timeout, "d") {
			//parse as days
			part := strings.TrimSuffix(timeout, "d")
			numDays, err := strconv.Atoi(part)
			if err != nil {
				respond(ds, i, "Timeout is invalid")
				return
			}
			endDate = time.Now().AddDate(0, 0, numDays)
		} else {
			timer, err := time.ParseDuration(timeout)
			if err != nil {
				respond(ds, i, "Timeout is invalid")
				return
			}
			endDate = time.Now().Add(timer)
		}
	}

	endDate = endDate.UTC()

	description := fmt.Sprintf("Poll ends <t:%d:R>", endDate.Unix())

	embeds := []*discordgo.MessageEmbed{{
		Title:       title,
		Description: description,
	}}

	m := &discordgo.MessageSend{
		Embeds:     embeds,
		Components: splitToRows(choices),
	}

	message, err := ds.ChannelMessageSendComplex(i.ChannelID, m)
	if err != nil {
		respond(ds, i, "Error sending poll: "+err.Error())
		return
	}

	_, err = service.CreatePoll(message.ID, i.ChannelID, interactionUserId(i), title, choices, &endDate)
	if err != nil {
		respond(ds, i, "Error saving poll to database: "+err.Error())
		_ = ds.ChannelMessageDelete(message.ChannelID, message.ID)
		return
	}

	respond(ds, i, "Poll created")
}

func respond(ds *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	_, _ = ds.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
}

func interactionUserId(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
