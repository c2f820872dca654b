package channels

import (
	"path/filepath"
	"testing"

	"reelstgram-backend/internal/feed"
	"reelstgram-backend/internal/models"
	"reelstgram-backend/internal/repository"
	"reelstgram-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repository.Entry{}))
	return NewService(store.New(db))
}

func TestCreateChannel(t *testing.T) {
	s := testService(t)

	ch, err := s.Create("default-user", "Test", "Hello")
	require.NoError(t, err)

	assert.Equal(t, uint(1), ch.Id)
	assert.NotEmpty(t, ch.UniqueId)
	assert.Equal(t, "default-user", ch.OwnerId)
	assert.Equal(t, []string{"default-user"}, ch.Admins)
	assert.Empty(t, ch.Posts)
	assert.GreaterOrEqual(t, ch.Subscribers, uint(100))
	assert.LessOrEqual(t, ch.Subscribers, uint(5000))

	_, err = s.Create("default-user", "", "no name")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestUniqueIdSurvivesAllMutations(t *testing.T) {
	s := testService(t)

	ch, err := s.Create("default-user", "Test", "Hello")
	require.NoError(t, err)
	uniqueId := ch.UniqueId

	_, err = s.AddContent(uniqueId, NewContent{Url: "a.mp4", Caption: "hi"})
	require.NoError(t, err)
	require.NoError(t, s.Like(uniqueId, 1))
	require.NoError(t, s.AddComment(uniqueId, 1, "default-user", "first"))
	_, err = s.UpdateSettings(uniqueId, "new description", "/uploads/a.png", []string{"default-user", "friend"})
	require.NoError(t, err)

	got, err := s.Get(uniqueId)
	require.NoError(t, err)
	assert.Equal(t, uniqueId, got.UniqueId)
	assert.Equal(t, "new description", got.Description)
}

func TestEngagementScenario(t *testing.T) {
	s := testService(t)

	ch, err := s.Create("default-user", "Test", "Hello")
	require.NoError(t, err)
	require.Empty(t, ch.Posts)

	post, err := s.AddContent(ch.UniqueId, NewContent{Url: "a.mp4", Caption: "hi"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.Id)
	assert.NotEmpty(t, post.Uid)
	assert.Equal(t, models.PostTypeVideo, post.Type)
	assert.Equal(t, "hi", post.Caption)
	assert.Equal(t, uint(0), post.Likes)
	assert.Equal(t, uint(0), post.Views)
	assert.Equal(t, []models.Button{}, post.Buttons)
	assert.Equal(t, []models.Comment{}, post.Comments)

	// Liking is monotonic, not idempotent: n calls, n increments.
	require.NoError(t, s.Like(ch.UniqueId, 1))
	require.NoError(t, s.Like(ch.UniqueId, 1))

	got, err := s.Get(ch.UniqueId)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.Posts[0].Likes)

	// Mounting a feed on the post views it once; revisiting within the
	// session does not, remounting does.
	onView := func(channelUniqueId string, postId uint) {
		require.NoError(t, s.IncrementView(channelUniqueId, postId))
	}
	feed.NewViewer(&got, 1, onView)

	got, err = s.Get(ch.UniqueId)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.Posts[0].Views)

	feed.NewViewer(&got, 1, onView)
	got, err = s.Get(ch.UniqueId)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.Posts[0].Views)
}

func TestPostIdsStaySequentialPerChannel(t *testing.T) {
	s := testService(t)

	first, err := s.Create("default-user", "First", "")
	require.NoError(t, err)
	second, err := s.Create("default-user", "Second", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Id)

	for i := 0; i < 3; i++ {
		_, err = s.AddContent(first.UniqueId, NewContent{Url: "a.png"})
		require.NoError(t, err)
	}
	post, err := s.AddContent(second.UniqueId, NewContent{Url: "b.png"})
	require.NoError(t, err)

	// Display ids restart per channel; the uid is what stays unique.
	assert.Equal(t, uint(1), post.Id)

	got, _ := s.Get(first.UniqueId)
	assert.Equal(t, uint(3), got.Posts[2].Id)
}

func TestAddComment(t *testing.T) {
	s := testService(t)

	ch, err := s.Create("default-user", "Test", "")
	require.NoError(t, err)
	_, err = s.AddContent(ch.UniqueId, NewContent{Url: "a.png"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.AddComment(ch.UniqueId, 1, "default-user", "   "), ErrEmptyComment)

	require.NoError(t, s.AddComment(ch.UniqueId, 1, "default-user", "nice"))
	got, _ := s.Get(ch.UniqueId)
	require.Len(t, got.Posts[0].Comments, 1)
	assert.Equal(t, "nice", got.Posts[0].Comments[0].Text)
	assert.False(t, got.Posts[0].Comments[0].CreatedAt.IsZero())
}

func TestUpdateSettingsKeepsOwnerInAdmins(t *testing.T) {
	s := testService(t)

	ch, err := s.Create("owner", "Test", "")
	require.NoError(t, err)

	updated, err := s.UpdateSettings(ch.UniqueId, "d", "", []string{"friend"})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner", "friend"}, updated.Admins)

	updated, err = s.UpdateSettings(ch.UniqueId, "d", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner"}, updated.Admins)
}

func TestToggleSubscription(t *testing.T) {
	s := testService(t)

	ch, err := s.Create("owner", "Test", "")
	require.NoError(t, err)
	before := ch.Subscribers

	subscribed, err := s.ToggleSubscription("viewer", ch.UniqueId)
	require.NoError(t, err)
	assert.True(t, subscribed)

	got, _ := s.Get(ch.UniqueId)
	assert.Equal(t, before+1, got.Subscribers)

	user, err := s.GetUser("viewer")
	require.NoError(t, err)
	assert.True(t, user.Subscribed(ch.UniqueId))

	list, err := s.SubscribedChannels("viewer")
	require.NoError(t, err)
	require.Len(t, list, 1)

	subscribed, err = s.ToggleSubscription("viewer", ch.UniqueId)
	require.NoError(t, err)
	assert.False(t, subscribed)

	got, _ = s.Get(ch.UniqueId)
	assert.Equal(t, before, got.Subscribers)

	_, err = s.ToggleSubscription("viewer", "missing")
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestNotFoundErrors(t *testing.T) {
	s := testService(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrChannelNotFound)

	_, err = s.AddContent("missing", NewContent{Url: "a.png"})
	assert.ErrorIs(t, err, ErrChannelNotFound)

	ch, err := s.Create("owner", "Test", "")
	require.NoError(t, err)
	assert.ErrorIs(t, s.Like(ch.UniqueId, 42), ErrPostNotFound)
}

func TestMigrateFillsDefaults(t *testing.T) {
	s := testService(t)

	// A record written by an older revision: no unique id, no admin
	// set, nil slices everywhere.
	require.NoError(t, s.store.SaveChannels([]models.Channel{
		{
			Id:      1,
			Name:    "Legacy",
			OwnerId: "owner",
			Posts:   []models.Post{{Id: 1, Url: "old.mp4"}},
		},
	}))

	require.NoError(t, s.Migrate())

	got, err := s.List()
	require.NoError(t, err)
	require.Len(t, got, 1)

	ch := got[0]
	assert.NotEmpty(t, ch.UniqueId)
	assert.Equal(t, []string{"owner"}, ch.Admins)
	assert.GreaterOrEqual(t, ch.Subscribers, uint(100))

	post := ch.Posts[0]
	assert.NotEmpty(t, post.Uid)
	assert.Equal(t, models.PostTypeVideo, post.Type)
	assert.Equal(t, []models.Button{}, post.Buttons)
	assert.Equal(t, []models.Comment{}, post.Comments)

	// Migrating twice never regenerates an assigned unique id.
	require.NoError(t, s.Migrate())
	again, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, ch.UniqueId, again[0].UniqueId)
	assert.Equal(t, post.Uid, again[0].Posts[0].Uid)
}
