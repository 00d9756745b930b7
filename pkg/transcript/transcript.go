// Package transcript keeps the append-only chat history. It is a deliberately
// simple sibling of the event store: messages are only ever added and listed.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

const layoutISO = "2006-01-02"

// Roles for a message author.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single transcript line.
type Message struct {
	ID      string    `json:"id"`
	Role    string    `json:"role"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// Log is the append-only message store backed by diskv.
type Log struct {
	d *diskv.Diskv
}

func Open(basePath string) *Log {
	return &Log{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

// Append stores the message, assigning Created and ID when unset.
func (l *Log) Append(m *Message) error {
	if m.Created.IsZero() {
		m.Created = time.Now()
	}
	if m.ID == "" {
		m.ID = strconv.FormatInt(m.Created.UnixNano(), 16)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return l.d.Write(toKey(m), data)
}

// List returns every message ordered by creation time.
func (l *Log) List(ctx context.Context) []*Message {
	all := make([]*Message, 0)
	for key := range l.d.Keys(ctx.Done()) {
		data, err := l.d.Read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "transcript: %s: %s\n", key, err)
			continue
		}
		m := &Message{}
		if err := json.Unmarshal(data, m); err != nil {
			fmt.Fprintf(os.Stderr, "transcript: %s: %s\n", key, err)
			continue
		}
		all = append(all, m)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Created.Equal(all[j].Created) {
			return all[i].Created.Before(all[j].Created)
		}
		return all[i].ID < all[j].ID
	})
	return all
}

// toKey makes `date-id`; the path transform turns the date segments into
// directories so a day of chat lands in one bucket.
func toKey(m *Message) string {
	return fmt.Sprintf("%s-%s", m.Created.Format(layoutISO), m.ID)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
