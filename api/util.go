package api

import (
	"github.com/bwmarrin/discordgo"
	"github.com/cheevoguild/uwcbot/api/logger"
	"time"
)

func GetChannel(ds *discordgo.Session, channelId string) *discordgo.Channel {
	c, err := ds.State.Channel(channelId)
	if err != nil {
		// Try fetching via REST API
		c, err = ds.Channel(channelId)
		if err != nil {
			logger.Err().Printf("unable to fetch Channel for Message, %s", err)
		} else {
			// Attempt to add this channel into our State
			err = ds.State.ChannelAdd(c)
			if err != nil {
				logger.Err().Printf("error updating State with Channel, %s", err)
			}
		}
	}

	return c
}

// SendWithSelfDelete posts a notice that removes itself after a short delay,
// for command feedback that should not linger in busy channels.
func SendWithSelfDelete(ds *discordgo.Session, channelId, message string) error {
	m, err := ds.ChannelMessageSend(channelId, message)
	if err != nil {
		return err
	}

	go func(ch, id string, session *discordgo.Session) {
		<-time.After(10 * time.Second)
		_ = session.ChannelMessageDelete(ch, id)
	}(channelId, m.ID, ds)
	return nil
}
