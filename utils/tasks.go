package utils

import (
	"log"
	"time"

	"reelstgram-backend/internal/analytics"
	"reelstgram-backend/internal/channels"
	"reelstgram-backend/internal/feed"
)

// StartStatisticsTask periodically aggregates per-channel engagement
// totals into the analytics log.
func StartStatisticsTask(service *channels.Service, events *analytics.Logger) {
	go func() {
		for {
			log.Println("Updating channel statistics...")

			list, err := service.List()
			if err != nil {
				log.Printf("Failed to load channels for statistics: %v", err)
				time.Sleep(24 * time.Hour)
				continue
			}

			for _, ch := range list {
				var likes, views, comments uint
				for _, post := range ch.Posts {
					likes += post.Likes
					views += post.Views
					comments += uint(len(post.Comments))
				}
				events.Log("channel_stats", map[string]any{
					"channelId":   ch.UniqueId,
					"channelName": ch.Name,
					"posts":       len(ch.Posts),
					"likes":       likes,
					"views":       views,
					"comments":    comments,
					"subscribers": ch.Subscribers,
				})
			}
			time.Sleep(24 * time.Hour)
		}
	}()
}

// StartSessionSweeper drops feed sessions that have gone idle, so an
// unmounted viewer cannot hold its in-flight guard or viewed-key set
// forever.
func StartSessionSweeper(feeds *feed.Manager) {
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			if swept := feeds.Sweep(); swept > 0 {
				log.Printf("Swept %d idle feed sessions", swept)
			}
		}
	}()
}
