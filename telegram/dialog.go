// Package telegram loads the chat list shown by the sheet. A Source is either
// a live MTProto account (Client), an offline generator (DemoSource), or one
// of those backed by the on-disk Cache.
package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
)

var (
	// ErrNotConfigured is returned when the config has no API credentials.
	ErrNotConfigured = errors.New("telegram credentials are not configured")
	// ErrUnauthorized is returned when the stored session is not logged in.
	ErrUnauthorized = errors.New("not logged in, run `tgsheet login` first")
	// ErrCacheEmpty is returned by Cache.Load before anything was saved.
	ErrCacheEmpty = errors.New("dialog cache is empty")
)

// DefaultDialogLimit is how many dialogs a page requests.
const DefaultDialogLimit = 100

// Kind is the peer type behind a dialog.
type Kind int

const (
	KindUser Kind = iota
	KindBot
	KindGroup
	KindChannel
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindBot:
		return "bot"
	case KindGroup:
		return "group"
	case KindChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Dialog is one entry of the chat list.
type Dialog struct {
	ID          int64     `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Username    string    `json:"username,omitempty"`
	LastMessage string    `json:"last_message,omitempty"`
	Date        time.Time `json:"date"`
	Unread      int       `json:"unread"`
	Members     int       `json:"members,omitempty"`
	Pinned      bool      `json:"pinned,omitempty"`
	// Supergroup marks a group that is a channel on the server side.
	Supergroup bool `json:"supergroup,omitempty"`
}

// Link returns a t.me link for public peers and a tg:// deep link otherwise.
func (d Dialog) Link() string {
	if d.Username != "" {
		return "https://t.me/" + d.Username
	}
	switch {
	case d.Kind == KindUser || d.Kind == KindBot:
		return fmt.Sprintf("tg://user?id=%d", d.ID)
	case d.Kind == KindChannel || d.Supergroup:
		return fmt.Sprintf("https://t.me/c/%d", d.ID)
	default:
		return fmt.Sprintf("tg://openmessage?chat_id=%d", d.ID)
	}
}

// Source provides the dialog list.
type Source interface {
	Dialogs(ctx context.Context, limit int) ([]Dialog, error)
}
