package telegram

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var adjectives = []string{
	"azure", "bold", "calm", "daring", "eager",
	"fleet", "gentle", "happy", "jolly", "kind",
	"lively", "merry", "noble", "proud", "quick",
	"quiet", "rapid", "serene", "swift", "wise",
	"bright", "clever", "cosmic", "crystal", "golden",
	"iron", "jade", "lunar", "mystic", "silver",
}

var nouns = []string{
	"badger", "cheetah", "dolphin", "eagle", "falcon",
	"gazelle", "heron", "koala", "lynx", "narwhal",
	"otter", "panther", "raven", "swan", "walrus",
	"wolf", "wren", "yak", "zebra", "fox",
}

var firstNames = []string{
	"Alice", "Boris", "Chloe", "Dmitri", "Elena", "Farid", "Greta",
	"Hiro", "Ines", "Jonas", "Katya", "Luca", "Mira", "Nikolai",
}

var snippets = []string{
	"see you tomorrow",
	"sent a photo",
	"did you push the fix?",
	"meeting moved to 3pm",
	"lol",
	"the build is green again",
	"can you review my PR when you get a chance",
	"voice message",
	"thanks!",
	"who is bringing snacks on friday",
}

// DemoSource generates a believable chat list without a network. The same
// seed always yields the same dialogs.
type DemoSource struct {
	Seed  int64
	Count int
	// Delay simulates network latency.
	Delay time.Duration
	Now   func() time.Time
}

// NewDemoSource returns a source with count dialogs.
func NewDemoSource(seed int64, count int) *DemoSource {
	return &DemoSource{Seed: seed, Count: count}
}

// Dialogs implements Source.
func (s *DemoSource) Dialogs(ctx context.Context, limit int) ([]Dialog, error) {
	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.Delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	n := s.Count
	if limit > 0 && n > limit {
		n = limit
	}

	r := rand.New(rand.NewSource(s.Seed))
	date := now()
	out := make([]Dialog, 0, n)
	for i := 0; i < n; i++ {
		d := Dialog{
			ID:          int64(1000 + i),
			LastMessage: snippets[r.Intn(len(snippets))],
		}
		switch r.Intn(6) {
		case 0:
			d.Kind = KindGroup
			d.Title = titleCase(pick(r, adjectives)) + " " + titleCase(pick(r, nouns)) + "s"
			d.Members = 3 + r.Intn(400)
		case 1:
			d.Kind = KindChannel
			word := pick(r, nouns)
			d.Title = titleCase(pick(r, adjectives)) + " " + titleCase(word) + " News"
			d.Username = fmt.Sprintf("%s_%s", pick(r, adjectives), word)
			d.Members = 100 + r.Intn(250000)
		case 2:
			d.Kind = KindBot
			word := pick(r, nouns)
			d.Title = titleCase(word) + "Bot"
			d.Username = word + "_bot"
		default:
			d.Kind = KindUser
			d.Title = pick(r, firstNames)
		}
		if r.Intn(3) == 0 {
			d.Unread = r.Intn(1500)
		}
		d.Pinned = i < 2
		// Dialogs come newest first.
		date = date.Add(-time.Duration(r.Intn(int(6*time.Hour/time.Minute))) * time.Minute)
		d.Date = date
		out = append(out, d)
	}
	return out, nil
}

func pick(r *rand.Rand, words []string) string {
	return words[r.Intn(len(words))]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
