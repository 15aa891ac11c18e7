package commander_test

import (
	"context"
	"testing"
	"time"

	"github.com/autolistings/listing-sync/pkg/v1/commander"
	"github.com/autolistings/listing-sync/pkg/v1/commander/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitSendSyncCommand(t *testing.T) {
	requestedAt := time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		sources     []string
		body        string
		senderError error
		wantErr     error
	}{
		"all sources": {
			body: `{"requestedAt":"2024-03-01T06:00:00Z"}`,
		},
		"selected sources": {
			sources: []string{"lone-star", "hill-country"},
			body:    `{"sources":["lone-star","hill-country"],"requestedAt":"2024-03-01T06:00:00Z"}`,
		},
		"sender error": {
			body:        `{"requestedAt":"2024-03-01T06:00:00Z"}`,
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, []byte(tt.body)).Return(tt.senderError)

			cmndr := commander.NewSyncCommander(sender, commander.WithNow(func() time.Time { return requestedAt }))
			err := cmndr.SendSyncCommand(context.TODO(), tt.sources...)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
