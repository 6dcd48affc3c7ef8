package notification

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenticket-service/internal/event"
)

type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

type publishedMessage struct {
	key string
	msg amqp.Publishing
}

type fakePublisher struct {
	published []publishedMessage
	err       error
}

func (f *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedMessage{key: key, msg: msg})
	return nil
}

func newConsumerUnderTest(publisher messagePublisher) *QueueConsumer {
	return &QueueConsumer{
		publisher:       publisher,
		queueName:       event.WinNotiQueue,
		deadLetterQueue: event.WinNotiDeadQueue,
	}
}

func TestHandleDeliveryRequeuesFailureWithBumpedRetryCount(t *testing.T) {
	publisher := &fakePublisher{}
	consumer := newConsumerUnderTest(publisher)

	ack := &fakeAcknowledger{}
	consumer.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte("not-json"),
	})

	require.Len(t, publisher.published, 1)
	assert.Equal(t, event.WinNotiQueue, publisher.published[0].key)
	assert.Equal(t, int32(1), publisher.published[0].msg.Headers["x-retry-count"])
	assert.Equal(t, "1000", publisher.published[0].msg.Expiration)

	// the original delivery is settled once the retry copy is in the queue
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandleDeliveryParksExhaustedMessageOnDLQ(t *testing.T) {
	publisher := &fakePublisher{}
	consumer := newConsumerUnderTest(publisher)

	ack := &fakeAcknowledger{}
	consumer.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte("not-json"),
		Headers:      amqp.Table{"x-retry-count": int32(3)},
	})

	require.Len(t, publisher.published, 1)
	assert.Equal(t, event.WinNotiDeadQueue, publisher.published[0].key)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandleDeliveryNacksBackWhenRepublishFails(t *testing.T) {
	publisher := &fakePublisher{err: assert.AnError}
	consumer := newConsumerUnderTest(publisher)

	ack := &fakeAcknowledger{}
	consumer.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte("not-json"),
	})

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued, "the broker keeps the message when the retry copy cannot be published")
}
