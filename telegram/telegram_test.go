package telegram

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgsheet/config"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "dialogs.bolt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

type failingSource struct{ err error }

func (f failingSource) Dialogs(context.Context, int) ([]Dialog, error) {
	return nil, f.err
}

func TestCacheSaveLoadClear(t *testing.T) {
	c := openTestCache(t)

	_, _, err := c.Load()
	require.ErrorIs(t, err, ErrCacheEmpty)

	dialogs := []Dialog{
		{ID: 1, Kind: KindUser, Title: "Alice", Unread: 3, Date: fixedNow},
		{ID: 2, Kind: KindChannel, Title: "News", Username: "news", Members: 1200, Date: fixedNow.Add(-time.Hour)},
	}
	require.NoError(t, c.Save(dialogs, fixedNow))

	got, updated, err := c.Load()
	require.NoError(t, err)
	assert.True(t, updated.Equal(fixedNow))
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Title)
	assert.Equal(t, KindChannel, got[1].Kind)
	assert.True(t, got[1].Date.Equal(dialogs[1].Date))

	require.NoError(t, c.Clear())
	require.NoError(t, c.Clear(), "clearing twice is fine")
	_, _, err = c.Load()
	assert.ErrorIs(t, err, ErrCacheEmpty)
}

func TestCachedSourceFallsBackToCache(t *testing.T) {
	c := openTestCache(t)
	demo := &DemoSource{Seed: 7, Count: 12, Now: func() time.Time { return fixedNow }}

	live := &CachedSource{Upstream: demo, Cache: c, Now: func() time.Time { return fixedNow }}
	fresh, err := live.Dialogs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, fresh, 12)

	offline := &CachedSource{Upstream: failingSource{err: errors.New("network down")}, Cache: c}
	cached, err := offline.Dialogs(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, cached, 5)
	for i := range cached {
		assert.Equal(t, fresh[i].ID, cached[i].ID)
		assert.Equal(t, fresh[i].Title, cached[i].Title)
		assert.True(t, fresh[i].Date.Equal(cached[i].Date))
	}
}

func TestCachedSourceWithoutCacheReturnsError(t *testing.T) {
	upstreamErr := errors.New("network down")
	s := &CachedSource{Upstream: failingSource{err: upstreamErr}, Cache: openTestCache(t)}

	_, err := s.Dialogs(context.Background(), 10)

	assert.ErrorIs(t, err, upstreamErr)
}

func TestDemoSourceIsDeterministic(t *testing.T) {
	now := func() time.Time { return fixedNow }
	a, err := (&DemoSource{Seed: 42, Count: 30, Now: now}).Dialogs(context.Background(), 0)
	require.NoError(t, err)
	b, err := (&DemoSource{Seed: 42, Count: 30, Now: now}).Dialogs(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	require.Len(t, a, 30)
	for i, d := range a {
		assert.NotEmpty(t, d.Title, "dialog %d", i)
		if i > 0 {
			assert.False(t, d.Date.After(a[i-1].Date), "dialogs are newest first")
		}
	}
	assert.True(t, a[0].Pinned)
	assert.False(t, a[2].Pinned)
}

func TestDemoSourceHonoursLimitAndContext(t *testing.T) {
	s := NewDemoSource(1, 50)

	got, err := s.Dialogs(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Delay = time.Hour
	_, err = s.Dialogs(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertDialogs(t *testing.T) {
	channel := &tg.Channel{ID: 30, Title: "Go News", Username: "gonews"}
	channel.SetParticipantsCount(1200)
	supergroup := &tg.Channel{ID: 40, Title: "Gophers", Megagroup: true}

	dialogs := []tg.DialogClass{
		&tg.Dialog{Peer: &tg.PeerUser{UserID: 10}, TopMessage: 100, UnreadCount: 2, Pinned: true},
		&tg.Dialog{Peer: &tg.PeerChat{ChatID: 20}, TopMessage: 200},
		&tg.Dialog{Peer: &tg.PeerChannel{ChannelID: 30}, TopMessage: 300, UnreadCount: 9},
		&tg.Dialog{Peer: &tg.PeerChannel{ChannelID: 40}, TopMessage: 400},
		&tg.Dialog{Peer: &tg.PeerUser{UserID: 99}, TopMessage: 1},
		&tg.DialogFolder{},
	}
	messages := []tg.MessageClass{
		&tg.Message{ID: 100, PeerID: &tg.PeerUser{UserID: 10}, Message: "hi", Date: int(fixedNow.Unix())},
		&tg.MessageService{ID: 200, PeerID: &tg.PeerChat{ChatID: 20}, Date: int(fixedNow.Unix()) - 60},
		&tg.Message{ID: 300, PeerID: &tg.PeerChannel{ChannelID: 30}, Message: "release", Date: int(fixedNow.Unix()) - 120},
	}
	users := []tg.UserClass{
		&tg.User{ID: 10, FirstName: "Ada", LastName: "L", Username: "ada"},
	}
	chats := []tg.ChatClass{
		&tg.Chat{ID: 20, Title: "Team", ParticipantsCount: 5},
		channel,
		supergroup,
	}

	got := convertDialogs(dialogs, messages, users, chats)

	require.Len(t, got, 4, "unknown peers and folders are skipped")
	assert.Equal(t, Dialog{
		ID: 10, Kind: KindUser, Title: "Ada L", Username: "ada",
		LastMessage: "hi", Date: time.Unix(fixedNow.Unix(), 0), Unread: 2, Pinned: true,
	}, got[0])
	assert.Equal(t, KindGroup, got[1].Kind)
	assert.Equal(t, 5, got[1].Members)
	assert.Equal(t, "service message", got[1].LastMessage)
	assert.Equal(t, KindChannel, got[2].Kind)
	assert.Equal(t, 1200, got[2].Members)
	assert.Equal(t, 9, got[2].Unread)
	assert.Equal(t, KindGroup, got[3].Kind)
	assert.True(t, got[3].Supergroup)
	assert.Equal(t, "https://t.me/c/40", got[3].Link())
}

func TestDialogLink(t *testing.T) {
	tests := []struct {
		name   string
		dialog Dialog
		want   string
	}{
		{name: "public", dialog: Dialog{ID: 1, Kind: KindChannel, Username: "gonews"}, want: "https://t.me/gonews"},
		{name: "user", dialog: Dialog{ID: 5, Kind: KindUser}, want: "tg://user?id=5"},
		{name: "private channel", dialog: Dialog{ID: 7, Kind: KindChannel}, want: "https://t.me/c/7"},
		{name: "group", dialog: Dialog{ID: 9, Kind: KindGroup}, want: "tg://openmessage?chat_id=9"},
		{name: "private supergroup", dialog: Dialog{ID: 11, Kind: KindGroup, Supergroup: true}, want: "https://t.me/c/11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialog.Link())
		})
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(config.TelegramConfig{}, t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	c, err := NewClient(config.TelegramConfig{PhoneNumber: "+1 (555) 010", AppID: 1, AppHash: "h"}, t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, "phone-1555010", filepath.Base(c.SessionDir()))
}
