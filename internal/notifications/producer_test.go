package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducer(t *testing.T) (*KafkaLifecycleProducer, *mocks.SyncProducer) {
	cfg := DefaultKafkaProducerConfig()
	cfg.ChainID = 42101
	cfg.Contract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

	saramaCfg := cfg.SaramaConfig()
	mock := mocks.NewSyncProducer(t, saramaCfg)
	return NewKafkaLifecycleProducerWith(mock, cfg), mock
}

func TestPublishTicketMinted(t *testing.T) {
	producer, mock := testProducer(t)

	var captured *sarama.ProducerMessage
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		captured = msg
		return nil
	})

	err := producer.PublishTicketMinted(context.Background(), TicketMinted{
		TokenID: "12", EventID: 3, SeatNumber: 17, PriceWei: "1000", TxHash: "0xabc",
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())

	require.NotNil(t, captured)
	assert.Equal(t, "ticket-lifecycle", captured.Topic)

	key, err := captured.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "event-3", string(key))

	value, err := captured.Value.Encode()
	require.NoError(t, err)
	var envelope LifecycleMessage
	require.NoError(t, json.Unmarshal(value, &envelope))
	assert.Equal(t, MessageTypeTicketMinted, envelope.Type)
	assert.Equal(t, int64(42101), envelope.ChainID)

	var payload TicketMinted
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, "12", payload.TokenID)
	assert.Equal(t, uint64(17), payload.SeatNumber)
}

func TestPublishEventCreated_SendFailure(t *testing.T) {
	producer, mock := testProducer(t)
	mock.ExpectSendMessageAndFail(errors.New("broker unavailable"))

	err := producer.PublishEventCreated(context.Background(), EventCreated{EventID: 4, Organizer: "0xabc"})

	assert.ErrorContains(t, err, "broker unavailable")
	assert.ErrorContains(t, err, string(MessageTypeEventCreated))
	require.NoError(t, producer.Close())
}
