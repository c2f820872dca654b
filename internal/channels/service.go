package channels

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"reelstgram-backend/internal/models"
	"reelstgram-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrEmptyName       = errors.New("channel name is required")
	ErrEmptyComment    = errors.New("comment text is required")
	ErrEmptyUrl        = errors.New("content url is required")
)

// Service applies engagement mutations to the persisted channel
// collection. Each operation reads the full collection, applies exactly
// one semantic change and writes the whole collection back; the store
// serializes these cycles so sequential ids stay race-free.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// NewContent is the add-content payload after a successful upload.
type NewContent struct {
	Url     string          `json:"url"`
	Caption string          `json:"caption"`
	Buttons []models.Button `json:"buttons"`
}

// newUniqueId allocates a short opaque channel identifier. Collisions
// are not re-checked against existing ids; at the expected scale the
// probability is negligible.
func newUniqueId() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// List returns all channels.
func (s *Service) List() ([]models.Channel, error) {
	return s.store.Channels()
}

// Get returns the channel addressed by its stable unique id.
func (s *Service) Get(uniqueId string) (models.Channel, error) {
	channels, err := s.store.Channels()
	if err != nil {
		return models.Channel{}, err
	}
	for _, ch := range channels {
		if ch.UniqueId == uniqueId {
			return ch, nil
		}
	}
	return models.Channel{}, ErrChannelNotFound
}

// Create appends a new channel. The unique id is assigned here, exactly
// once, and never regenerated afterwards. The subscriber counter is
// seeded with a display vanity number.
func (s *Service) Create(userId, name, description string) (models.Channel, error) {
	if name == "" {
		return models.Channel{}, ErrEmptyName
	}

	var created models.Channel
	err := s.store.UpdateChannels(func(channels []models.Channel) ([]models.Channel, error) {
		created = models.Channel{
			Id:          uint(len(channels) + 1),
			UniqueId:    newUniqueId(),
			Name:        name,
			Description: description,
			Avatar:      "",
			OwnerId:     userId,
			Admins:      []string{userId},
			Subscribers: uint(rand.Intn(4901) + 100),
			Posts:       []models.Post{},
		}
		return append(channels, created), nil
	})
	if err != nil {
		return models.Channel{}, err
	}
	return created, nil
}

// AddContent appends a post to the channel. The display id stays
// sequential within the channel; the uid is globally unique and stable.
func (s *Service) AddContent(channelUniqueId string, content NewContent) (models.Post, error) {
	if content.Url == "" {
		return models.Post{}, ErrEmptyUrl
	}

	var created models.Post
	err := s.store.UpdateChannels(func(chs []models.Channel) ([]models.Channel, error) {
		i := indexOf(chs, channelUniqueId)
		if i < 0 {
			return nil, ErrChannelNotFound
		}
		buttons := content.Buttons
		if buttons == nil {
			buttons = []models.Button{}
		}
		created = models.Post{
			Id:       uint(len(chs[i].Posts) + 1),
			Uid:      uuid.NewString(),
			Type:     models.PostTypeFor(content.Url),
			Url:      content.Url,
			Caption:  content.Caption,
			Likes:    0,
			Views:    0,
			Buttons:  buttons,
			Comments: []models.Comment{},
		}
		chs[i].Posts = append(chs[i].Posts, created)
		return chs, nil
	})
	if err != nil {
		return models.Post{}, err
	}
	return created, nil
}

// Like increments the like counter. Deliberately not idempotent: liking
// twice counts twice, matching the reference behavior.
func (s *Service) Like(channelUniqueId string, postId uint) error {
	return s.updatePost(channelUniqueId, postId, func(p *models.Post) {
		p.Likes++
	})
}

// IncrementView increments the view counter. Callers are expected to go
// through the feed session's once-per-session guard.
func (s *Service) IncrementView(channelUniqueId string, postId uint) error {
	return s.updatePost(channelUniqueId, postId, func(p *models.Post) {
		p.Views++
	})
}

// AddComment appends a comment to the post. Empty text is rejected
// without mutating anything.
func (s *Service) AddComment(channelUniqueId string, postId uint, user, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}
	return s.updatePost(channelUniqueId, postId, func(p *models.Post) {
		p.Comments = append(p.Comments, models.Comment{
			User:      user,
			Text:      text,
			CreatedAt: time.Now().UTC(),
		})
	})
}

func (s *Service) updatePost(channelUniqueId string, postId uint, mutate func(*models.Post)) error {
	return s.store.UpdateChannels(func(chs []models.Channel) ([]models.Channel, error) {
		i := indexOf(chs, channelUniqueId)
		if i < 0 {
			return nil, ErrChannelNotFound
		}
		for j := range chs[i].Posts {
			if chs[i].Posts[j].Id == postId {
				mutate(&chs[i].Posts[j])
				return chs, nil
			}
		}
		return nil, ErrPostNotFound
	})
}

// UpdateSettings replaces description, avatar and admins wholesale. The
// owner is re-added to the admin set if the replacement dropped it, so
// the owner's write privilege survives any settings save.
func (s *Service) UpdateSettings(channelUniqueId, description, avatar string, admins []string) (models.Channel, error) {
	var updated models.Channel
	err := s.store.UpdateChannels(func(chs []models.Channel) ([]models.Channel, error) {
		i := indexOf(chs, channelUniqueId)
		if i < 0 {
			return nil, ErrChannelNotFound
		}
		if admins == nil {
			admins = []string{}
		}
		if !contains(admins, chs[i].OwnerId) {
			admins = append([]string{chs[i].OwnerId}, admins...)
		}
		chs[i].Description = description
		chs[i].Avatar = avatar
		chs[i].Admins = admins
		updated = chs[i]
		return chs, nil
	})
	if err != nil {
		return models.Channel{}, err
	}
	return updated, nil
}

// ToggleSubscription flips membership of the channel in the user's
// subscription set and nudges the channel's subscriber counter. Returns
// the new membership state.
func (s *Service) ToggleSubscription(userId, channelUniqueId string) (bool, error) {
	if _, err := s.Get(channelUniqueId); err != nil {
		return false, err
	}

	var subscribed bool
	err := s.store.UpdateUsers(func(users map[string]models.User) (map[string]models.User, error) {
		user, ok := users[userId]
		if !ok {
			user = models.User{UserId: userId, Username: userId}
		}
		if user.Subscribed(channelUniqueId) {
			kept := make([]string, 0, len(user.SubscribedChannels))
			for _, id := range user.SubscribedChannels {
				if id != channelUniqueId {
					kept = append(kept, id)
				}
			}
			user.SubscribedChannels = kept
			subscribed = false
		} else {
			user.SubscribedChannels = append(user.SubscribedChannels, channelUniqueId)
			subscribed = true
		}
		users[userId] = user
		return users, nil
	})
	if err != nil {
		return false, err
	}

	err = s.store.UpdateChannels(func(chs []models.Channel) ([]models.Channel, error) {
		i := indexOf(chs, channelUniqueId)
		if i < 0 {
			return nil, ErrChannelNotFound
		}
		if subscribed {
			chs[i].Subscribers++
		} else if chs[i].Subscribers > 0 {
			chs[i].Subscribers--
		}
		return chs, nil
	})
	return subscribed, err
}

// GetUser returns the user record, creating a default one on first
// sight the way the reference clients seed "default-user".
func (s *Service) GetUser(userId string) (models.User, error) {
	var user models.User
	err := s.store.UpdateUsers(func(users map[string]models.User) (map[string]models.User, error) {
		existing, ok := users[userId]
		if !ok {
			existing = models.User{UserId: userId, Username: userId, SubscribedChannels: []string{}}
			users[userId] = existing
		}
		user = existing
		return users, nil
	})
	return user, err
}

// UpdateUsername renames the user's display name.
func (s *Service) UpdateUsername(userId, username string) (models.User, error) {
	if username == "" {
		return models.User{}, errors.New("username is required")
	}
	var user models.User
	err := s.store.UpdateUsers(func(users map[string]models.User) (map[string]models.User, error) {
		existing, ok := users[userId]
		if !ok {
			existing = models.User{UserId: userId, SubscribedChannels: []string{}}
		}
		existing.Username = username
		users[userId] = existing
		user = existing
		return users, nil
	})
	return user, err
}

// SubscribedChannels returns the channels the user follows, in channel
// collection order.
func (s *Service) SubscribedChannels(userId string) ([]models.Channel, error) {
	user, err := s.GetUser(userId)
	if err != nil {
		return nil, err
	}
	all, err := s.store.Channels()
	if err != nil {
		return nil, err
	}
	var subscribed []models.Channel
	for _, ch := range all {
		if user.Subscribed(ch.UniqueId) {
			subscribed = append(subscribed, ch)
		}
	}
	return subscribed, nil
}

func indexOf(chs []models.Channel, uniqueId string) int {
	for i := range chs {
		if chs[i].UniqueId == uniqueId {
			return i
		}
	}
	return -1
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
