package commander_test

import (
	"context"
	"testing"

	"github.com/autolistings/listing-sync/pkg/v1/commander"
	"github.com/autolistings/listing-sync/pkg/v1/commander/mocks"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitRabbitMQSenderSend(t *testing.T) {
	body := []byte(`{"requestedAt":"2024-03-01T06:00:00Z"}`)
	routingKey := faker.Word()
	secret := faker.Password()

	tests := map[string]struct {
		publisherError error
		wantErr        error
	}{
		"ok": {},
		"publisher error": {
			publisherError: assert.AnError,
			wantErr:        assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			publisher := mocks.NewRabbitMQPublisher(t)
			publisher.On("Publish", mock.Anything, routingKey, body, map[string]any{commander.SecretHeader: secret}).
				Return(tt.publisherError)

			sender := commander.NewRabbitMQSender(publisher, routingKey, secret)
			err := sender.Send(context.TODO(), body)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
