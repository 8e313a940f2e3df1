package uwc

import (
	"errors"
	"fmt"
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
var historyLimit int

var uwcOperation = &discordgo.ApplicationCommand{
	Name:        "uwc",
	Description: "Unworthy Cheevo review polls",
	Type:        discordgo.ChatApplicationCommand,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        "start",
			Description: "Track a new UWC review poll",
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "message", Description: "Message ID of the poll", Type: discordgo.ApplicationCommandOptionString, Required: true},
				{Name: "url", Description: "Link to the poll", Type: discordgo.ApplicationCommandOptionString, Required: true},
				{Name: "achievement-id", Description: "Achievement under review", Type: discordgo.ApplicationCommandOptionString, Required: false},
				{Name: "achievement-name", Description: "Achievement name", Type: discordgo.ApplicationCommandOptionString, Required: false},
				{Name: "game-id", Description: "Game the achievement belongs to", Type: discordgo.ApplicationCommandOptionString, Required: false},
				{Name: "game-name", Description: "Game name", Type: discordgo.ApplicationCommandOptionString, Required: false},
				{Name: "thread", Description: "Discussion thread ID", Type: discordgo.ApplicationCommandOptionString, Required: false},
			},
		},
		{
			Name:        "complete",
			Description: "Record the results of a UWC poll and close it",
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "message", Description: "Message ID of the poll", Type: discordgo.ApplicationCommandOptionString, Required: true},
				{Name: "results", Description: "Tallies as option=count, separated by |", Type: discordgo.ApplicationCommandOptionString, Required: false},
			},
		},
		{
			Name:        "history",
			Description: "Past UWC polls for an achievement",
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "achievement-id", Description: "Achievement to look up", Type: discordgo.ApplicationCommandOptionString, Required: true},
			},
		},
		{
			Name:        "search",
			Description: "Search completed UWC polls by achievement or game name",
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "term", Description: "Name fragment to search for", Type: discordgo.ApplicationCommandOptionString, Required: true},
			},
		},
	},
}

func (*Module) Load(ds *discordgo.Session) {
	appId = env.Get("app.id")
	historyLimit = env.GetIntOr("uwc.historylimit", DefaultHistoryLimit)

	var guilds []string
	for _, v := range env.GetStringArray("uwc.guilds", ";") {
		if v == "" {
			continue
		}
		guilds = append(guilds, v)
	}

	ds.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		for _, guild := range guilds {
			logger.Out().Printf("Registering %s for guild %s\n", uwcOperation.Name, guild)
			_, err := s.ApplicationCommandCreate(appId, guild, uwcOperation)
			if err != nil {
				logger.Err().Printf("Cannot create slash command %q: %v", uwcOperation.Name, err)
			}
		}
	})

	ds.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if i.ApplicationCommandData().Name != uwcOperation.Name {
			return
		}

		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
		})

		sub := i.ApplicationCommandData().Options[0]
		switch sub.Name {
		case "start":
			runStartCommand(s, i, sub)
		case "complete":
			runCompleteCommand(s, i, sub)
		case "history":
			runHistoryCommand(s, i, sub)
		case "search":
			runSearchCommand(s, i, sub)
		}
	})

	db, err := database.Get()
	if err != nil {
		logger.Err().Println(err.Error())
		return
	}

	err = db.AutoMigrate(&UwcPoll{}, &UwcPollResult{})
	if err != nil {
		logger.Err().Println(err.Error())
	}

	service = NewService(db)
}

func (Module) Name() string {
	return "uwc"
}

func runStartCommand(ds *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	data := CreateUwcPollData{
		ChannelId: i.ChannelID,
		CreatorId: interactionUserId(i),
	}

	for _, v := range sub.Options {
		switch v.Name {
		case "message":
			data.MessageId = v.StringValue()
		case "url":
			data.PollUrl = v.StringValue()
		case "achievement-id":
			data.AchievementId = v.StringValue()
		case "achievement-name":
			data.AchievementName = v.StringValue()
		case "game-id":
			data.GameId = v.StringValue()
		case "game-name":
			data.GameName = v.StringValue()
		case "thread":
			data.ThreadId = v.StringValue()
		}
	}

	poll, err := service.CreateUwcPoll(data)
	if err != nil {
		logger.Err().Println(err.Error())
		respond(ds, i, "Could not track the poll: "+err.Error())
		return
	}

	respond(ds, i, fmt.Sprintf("Tracking UWC poll #%d", poll.ID))
}

func runCompleteCommand(ds *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	var messageId string
	var rawResults string

	for _, v := range sub.Options {
		switch v.Name {
		case "message":
			messageId = v.StringValue()
		case "results":
			rawResults = v.StringValue()
		}
	}

	results, err := parseResults(rawResults)
	if err != nil {
		respond(ds, i, err.Error())
		return
	}

	poll, rows, err := service.CompleteUwcPoll(messageId, results)
	if err != nil {
		var notFound *ErrUwcPollNotFound
		var done *ErrUwcPollAlreadyCompleted
		if errors.As(err, &notFound) || errors.As(err, &done) {
			respond(ds, i, err.Error())
			return
		}
		logger.Err().Println(err.Error())
		respond(ds, i, "Could not complete the poll")
		return
	}

	outcome := DetermineOutcome(rows)
	respond(ds, i, fmt.Sprintf("UWC poll #%d completed: %s", poll.ID, outcome))
}

func runHistoryCommand(ds *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	achievementId := sub.Options[0].StringValue()

	summaries, err := service.AchievementHistory(achievementId, historyLimit)
	if err != nil {
		logger.Err().Println(err.Error())
		respond(ds, i, "Could not pull poll history")
		return
	}
	if len(summaries) == 0 {
		respond(ds, i, "No UWC polls found for that achievement")
		return
	}

	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		line := fmt.Sprintf("<t:%d:D> — %s", s.Poll.StartedAt.Unix(), s.Status)
		for _, r := range s.TopResults {
			line += fmt.Sprintf(" | %s (%d)", r.OptionText, r.VoteCount)
		}
		lines = append(lines, line)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "UWC history",
		Description: strings.Join(lines, "\n"),
	}
	_, _ = ds.ChannelMessageSendEmbed(i.ChannelID, embed)
	respond(ds, i, "History posted")
}

func runSearchCommand(ds *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	term := sub.Options[0].StringValue()

	matches, err := service.SearchUwcPolls(term)
	if err != nil {
		logger.Err().Println(err.Error())
		respond(ds, i, "Search failed")
		return
	}
	if len(matches) == 0 {
		respond(ds, i, "No completed UWC polls match "+term)
		return
	}

	lines := make([]string, 0, len(matches))
	for _, p := range matches {
		name := p.AchievementName
		if name == "" {
			name = p.GameName
		}
		lines = append(lines, fmt.Sprintf("%s — %s", name, p.PollUrl))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "UWC polls matching " + term,
		Description: strings.Join(lines, "\n"),
	}
	_, _ = ds.ChannelMessageSendEmbed(i.ChannelID, embed)
	respond(ds, i, "Results posted")
}

// parseResults reads "Yes, demote=6|No, keep=4" into result inputs and
// computes the stored percentages.
func parseResults(raw string) ([]ResultInput, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var results []ResultInput
	total := 0

	for _, part := range strings.Split(raw, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		eq := strings.LastIndex(part, "=")
		if eq <= 0 {
			return nil, fmt.Errorf("cannot parse result %q, expected option=count", part)
		}
		count := 0
		if _, err := fmt.Sscanf(part[eq+1:], "%d", &count); err != nil {
			return nil, fmt.Errorf("cannot parse count in %q", part)
		}
		results = append(results, ResultInput{OptionText: strings.TrimSpace(part[:eq]), VoteCount: count})
		total += count
	}

	if total > 0 {
		for k := range results {
			results[k].VotePercentage = float64(results[k].VoteCount) * 100 / float64(total)
		}
	}

	return results, nil
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
