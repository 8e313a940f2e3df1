package polls

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/cheevoguild/uwcbot/api/logger"
)

func runVoteCast(ds *discordgo.Session, i *discordgo.InteractionCreate) {
	index, err := strconv.Atoi(strings.TrimPrefix(i.MessageComponentData().CustomID, "vote:"))
	if err != nil {
		logger.Err().Println(err.Error())
		respond(ds, i, "Vote failed to be cast...")
		return
	}

	poll, err := service.GetPoll(i.Message.ID)
	if err != nil {
		logger.Err().Println(err.Error())
		respond(ds, i, "Vote failed to be cast...")
		return
	}
	if poll == nil {
		respond(ds, i, "This poll no longer exists")
		return
	}

	added, err := service.AddVote(poll.ID, i.Member.User.ID, index)
	if err != nil {
		var outOfRange *ErrOptionOutOfRange
		if errors.As(err, &outOfRange) {
			respond(ds, i, "That choice is not part of this poll")
			return
		}
		logger.Err().Println(err.Error())
		respond(ds, i, "Vote failed to be cast...")
		return
	}

	if !added {
		respond(ds, i, "You have already voted on this poll")
		return
	}

	respond(ds, i, "Vote casted!")
}
