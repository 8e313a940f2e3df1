package teams

import (
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/cheevoguild/uwcbot/api"
	"github.com/cheevoguild/uwcbot/api/database"
	"github.com/cheevoguild/uwcbot/api/env"
	"github.com/cheevoguild/uwcbot/api/logger"
	"slices"
	"strings"
)

type Module struct {
	api.Module
}

var service *Service
var maxPingSize int

func (*Module) Load(ds *discordgo.Session) {
	api.RegisterCommand("team", RunCommand)
	api.RegisterCommand("teams", RunListCommand)

	api.RegisterIntentNeed(discordgo.IntentsGuildMessages)

	maxPingSize = env.GetIntOr("teams.maxping", 50)

	db, err := database.Get()
	if err != nil {
		logger.Err().Println(err.Error())
		return
	}

	err = db.AutoMigrate(&Team{}, &TeamMember{})
	if err != nil {
		logger.Err().Println(err.Error())
	}

	service = NewService(db)
}

func (Module) Name() string {
	return "teams"
}

func RunCommand(ds *discordgo.Session, mc *discordgo.MessageCreate, cmd string, args []string) {
	if service == nil || len(args) == 0 {
		return
	}

	guilds := env.GetStringArray("teams.guilds", ";")
	if !slices.Contains(guilds, mc.GuildID) {
		return
	}

	action := strings.ToLower(args[0])
	args = args[1:]

	switch action {
	case "create":
		runCreate(ds, mc, args)
	case "join":
		runJoin(ds, mc, args)
	case "leave":
		runLeave(ds, mc, args)
	case "add":
		runAdd(ds, mc, args)
	case "remove":
		runRemove(ds, mc, args)
	case "members":
		runMembers(ds, mc, args)
	case "ping":
		runPing(ds, mc, args)
	default:
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "Usage: team <create|join|leave|add|remove|members|ping> <name> [user]")
	}
}

func runCreate(ds *discordgo.Session, mc *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "A team name is required")
		return
	}

	name := args[0]
	id := strings.ToLower(name)

	team, err := service.GetTeam(id)
	if err != nil {
		logger.Err().Printf("Failed to look up team\n%s", err)
		return
	}
	if team != nil {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "Team "+name+" already exists")
		return
	}

	_, err = service.CreateTeam(id, name, mc.Author.ID)
	if err != nil {
		logger.Err().Printf("Failed to create team\n%s", err)
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "Could not create team "+name)
		return
	}

	_, _ = ds.ChannelMessageSend(mc.ChannelID, "Team "+name+" created")
}

func runJoin(ds *discordgo.Session, mc *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "A team name is required")
		return
	}

	err := service.AddMemberByTeamName(args[0], mc.Author.ID, mc.Author.ID)
	if err != nil {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, err.Error())
		return
	}

	_, _ = ds.ChannelMessageSend(mc.ChannelID, "Added to team "+args[0])
}

func runLeave(ds *discordgo.Session, mc *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "A team name is required")
		return
	}

	removed, err := service.RemoveMemberByTeamName(args[0], mc.Author.ID)
	if err != nil {
		logger.Err().Printf("Failed to remove member\n%s", err)
		return
	}
	if !removed {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "You are not on team "+args[0])
		return
	}

	_, _ = ds.ChannelMessageSend(mc.ChannelID, "Removed from team "+args[0])
}

func runAdd(ds *discordgo.Session, mc *discordgo.MessageCreate, args []string) {
	if len(args) < 1 || len(mc.Mentions) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "Usage: team add <name> @user")
		return
	}

	for _, target := range mc.Mentions {
		err := service.AddMemberByTeamName(args[0], target.ID, mc.Author.ID)
		if err != nil {
			_ = api.SendWithSelfDelete(ds, mc.ChannelID, err.Error())
			return
		}
	}

	_, _ = ds.ChannelMessageSend(mc.ChannelID, "Added to team "+args[0])
}

func runRemove(ds *discordgo.Session, mc *discordgo.MessageCreate, args []string) {
	if len(args) < 1 || len(mc.Mentions) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "Usage: team remove <name> @user")
		return
	}

	for _, target := range mc.Mentions {
		removed, err := service.RemoveMemberByTeamName(args[0], target.ID)
		if err != nil {
			logger.Err().Printf("Failed to remove member\n%s", err)
			return
		}
		if !removed {
			_ = api.SendWithSelfDelete(ds, mc.ChannelID, "<@"+target.ID+"> is not on team "+args[0])
		}
	}
}

func runMembers(ds *discordgo.Session, mc *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "A team name is required")
		return
	}

	members, err := service.GetTeamMembersByName(args[0])
	if err != nil {
		logger.Err().Printf("Failed to pull team members\n%s", err)
		return
	}
	if len(members) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "Team "+args[0]+" has no members")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Team " + args[0],
		Description: fmt.Sprintf("%d member(s)", len(members)),
	}
	_, _ = ds.ChannelMessageSendEmbed(mc.ChannelID, embed)
}

func runPing(ds *discordgo.Session, mc *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "A team name is required")
		return
	}

	members, err := service.GetTeamMembersByName(args[0])
	if err != nil {
		logger.Err().Printf("Failed to pull team members\n%s", err)
		return
	}
	if len(members) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "Team "+args[0]+" has no members")
		return
	}
	if len(members) > maxPingSize {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, fmt.Sprintf("Team %s is too large to ping (%d members)", args[0], len(members)))
		return
	}

	mentions := make([]string, 0, len(members))
	for _, id := range members {
		mentions = append(mentions, "<@"+id+">")
	}

	msg := strings.Join(mentions, " ")
	if len(args) > 1 {
		msg += " " + strings.Join(args[1:], " ")
	}

	_, _ = ds.ChannelMessageSend(mc.ChannelID, msg)
}

func RunListCommand(ds *discordgo.Session, mc *discordgo.MessageCreate, cmd string, args []string) {
	if service == nil {
		return
	}

	guilds := env.GetStringArray("teams.guilds", ";")
	if !slices.Contains(guilds, mc.GuildID) {
		return
	}

	list, err := service.GetAllTeams()
	if err != nil {
		logger.Err().Printf("Failed to pull teams\n%s", err)
		return
	}
	if len(list) == 0 {
		_ = api.SendWithSelfDelete(ds, mc.ChannelID, "No teams exist yet")
		return
	}

	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.Name)
	}

	_, _ = ds.ChannelMessageSend(mc.ChannelID, "Teams: "+strings.Join(names, ", "))
}
