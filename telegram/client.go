package telegram

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tgsheet/config"
)

// Client fetches dialogs from a logged in account.
type Client struct {
	cfg        config.TelegramConfig
	sessionDir string
	lg         *zap.Logger
	waiter     *floodwait.Waiter
}

// SessionDir is where the session of phone is kept under stateDir.
func SessionDir(stateDir, phone string) string {
	var out []rune
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return filepath.Join(stateDir, "session", "phone-"+string(out))
}

// NewClient prepares a client for cfg. No connection is made until a
// request runs.
func NewClient(cfg config.TelegramConfig, stateDir string, lg *zap.Logger) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	dir := SessionDir(stateDir, cfg.PhoneNumber)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create session directory")
	}

	c := &Client{cfg: cfg, sessionDir: dir, lg: lg}
	c.waiter = floodwait.NewWaiter().WithCallback(func(ctx context.Context, wait floodwait.FloodWait) {
		lg.Warn("Flood wait", zap.Duration("wait", wait.Duration))
	})
	return c, nil
}

// SessionDir returns the directory holding this client's session files.
func (c *Client) SessionDir() string {
	return c.sessionDir
}

func (c *Client) newTelegramClient() *telegram.Client {
	options := telegram.Options{
		Logger: c.lg,
		SessionStorage: &telegram.FileSessionStorage{
			Path: filepath.Join(c.sessionDir, "session.json"),
		},
		Middlewares: []telegram.Middleware{
			c.waiter,
			ratelimit.New(rate.Every(100*time.Millisecond), 5),
		},
	}
	return telegram.NewClient(c.cfg.AppID, c.cfg.AppHash, options)
}

// run connects, checks the session and calls f with the raw API.
func (c *Client) run(ctx context.Context, f func(ctx context.Context, client *telegram.Client) error) error {
	client := c.newTelegramClient()
	return c.waiter.Run(ctx, func(ctx context.Context) error {
		return client.Run(ctx, func(ctx context.Context) error {
			return f(ctx, client)
		})
	})
}

// Dialogs returns the most recent dialogs of the account.
func (c *Client) Dialogs(ctx context.Context, limit int) ([]Dialog, error) {
	if limit <= 0 {
		limit = DefaultDialogLimit
	}
	var out []Dialog
	err := c.run(ctx, func(ctx context.Context, client *telegram.Client) error {
		status, err := client.Auth().Status(ctx)
		if err != nil {
			return errors.Wrap(err, "auth status")
		}
		if !status.Authorized {
			return ErrUnauthorized
		}

		res, err := client.API().MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
			OffsetPeer: &tg.InputPeerEmpty{},
			Limit:      limit,
		})
		if err != nil {
			return errors.Wrap(err, "get dialogs")
		}

		switch d := res.(type) {
		case *tg.MessagesDialogs:
			out = convertDialogs(d.Dialogs, d.Messages, d.Users, d.Chats)
		case *tg.MessagesDialogsSlice:
			out = convertDialogs(d.Dialogs, d.Messages, d.Users, d.Chats)
		case *tg.MessagesDialogsNotModified:
			c.lg.Debug("Dialogs not modified", zap.Int("count", d.Count))
		default:
			c.lg.Warn("Unknown dialogs class", zap.String("type", d.TypeName()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.lg.Info("Dialogs loaded", zap.Int("count", len(out)))
	return out, nil
}

// Self returns the logged in user.
func (c *Client) Self(ctx context.Context) (*tg.User, error) {
	var self *tg.User
	err := c.run(ctx, func(ctx context.Context, client *telegram.Client) error {
		var err error
		if self, err = client.Self(ctx); err != nil {
			return errors.Wrap(err, "call self")
		}
		return nil
	})
	return self, err
}

type peerKey struct {
	kind Kind
	id   int64
}

func keyOf(p tg.PeerClass) (peerKey, bool) {
	switch p := p.(type) {
	case *tg.PeerUser:
		return peerKey{KindUser, p.UserID}, true
	case *tg.PeerChat:
		return peerKey{KindGroup, p.ChatID}, true
	case *tg.PeerChannel:
		return peerKey{KindChannel, p.ChannelID}, true
	default:
		return peerKey{}, false
	}
}

type topMessage struct {
	text string
	date time.Time
}

// convertDialogs joins dialogs with their peers and top messages. Dialogs
// whose peer is missing from the response are skipped.
func convertDialogs(dialogs []tg.DialogClass, messages []tg.MessageClass, users []tg.UserClass, chats []tg.ChatClass) []Dialog {
	peers := make(map[peerKey]Dialog, len(users)+len(chats))
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			d := Dialog{ID: user.ID, Kind: KindUser, Username: user.Username}
			d.Title = user.FirstName
			if user.LastName != "" {
				d.Title += " " + user.LastName
			}
			if user.Bot {
				d.Kind = KindBot
			}
			if user.Self {
				d.Title = "Saved Messages"
			}
			if d.Title == "" {
				d.Title = "Deleted Account"
			}
			peers[peerKey{KindUser, user.ID}] = d
		}
	}
	for _, c := range chats {
		switch chat := c.(type) {
		case *tg.Chat:
			peers[peerKey{KindGroup, chat.ID}] = Dialog{
				ID: chat.ID, Kind: KindGroup, Title: chat.Title, Members: chat.ParticipantsCount,
			}
		case *tg.Channel:
			d := Dialog{ID: chat.ID, Kind: KindChannel, Title: chat.Title, Username: chat.Username}
			if chat.Megagroup {
				d.Kind = KindGroup
				d.Supergroup = true
			}
			if n, ok := chat.GetParticipantsCount(); ok {
				d.Members = n
			}
			peers[peerKey{KindChannel, chat.ID}] = d
		}
	}

	type msgKey struct {
		peer peerKey
		id   int
	}
	tops := make(map[msgKey]topMessage, len(messages))
	for _, m := range messages {
		switch msg := m.(type) {
		case *tg.Message:
			if k, ok := keyOf(msg.PeerID); ok {
				tops[msgKey{k, msg.ID}] = topMessage{text: msg.Message, date: time.Unix(int64(msg.Date), 0)}
			}
		case *tg.MessageService:
			if k, ok := keyOf(msg.PeerID); ok {
				tops[msgKey{k, msg.ID}] = topMessage{text: "service message", date: time.Unix(int64(msg.Date), 0)}
			}
		}
	}

	out := make([]Dialog, 0, len(dialogs))
	for _, dc := range dialogs {
		dialog, ok := dc.(*tg.Dialog)
		if !ok {
			continue
		}
		k, ok := keyOf(dialog.Peer)
		if !ok {
			continue
		}
		d, ok := peers[k]
		if !ok {
			continue
		}
		d.Unread = dialog.UnreadCount
		d.Pinned = dialog.Pinned
		if top, ok := tops[msgKey{k, dialog.TopMessage}]; ok {
			d.LastMessage = top.text
			d.Date = top.date
		}
		out = append(out, d)
	}
	return out
}
