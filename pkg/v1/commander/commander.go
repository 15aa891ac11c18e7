// Package commander sends sync commands to listing-sync workers.
package commander

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

//go:generate mockery --name Sender --filename sender.go

// SecretHeader is message header carrying shared secret of sync commands.
const SecretHeader = "x-sync-secret"

// SyncCommand requests sync of sources. Empty Sources means all configured sources.
type SyncCommand struct {
	Sources     []string  `json:"sources,omitempty"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// Option is custom configuration of SyncCommander.
type Option func(c *SyncCommander)

// SyncCommander sends sync commands.
type SyncCommander struct {
	sender Sender
	now    func() time.Time
}

// NewSyncCommander returns new SyncCommander using provided sender for sending messages.
func NewSyncCommander(sender Sender, ops ...Option) SyncCommander {
	c := SyncCommander{
		sender: sender,
		now:    func() time.Time { return time.Now().UTC() },
	}

	for _, op := range ops {
		op(&c)
	}

	return c
}

// WithNow sets function returning command request time.
func WithNow(now func() time.Time) Option {
	return func(c *SyncCommander) {
		c.now = now
	}
}

// SendSyncCommand sends sync command of provided sources, or all sources when none provided.
func (c SyncCommander) SendSyncCommand(ctx context.Context, sources ...string) error {
	cmd := SyncCommand{
		Sources:     sources,
		RequestedAt: c.now(),
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal sync command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
