package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestAMQPPublisher_Publish(t *testing.T) {
	log, _ := test.NewNullLogger()
	ch := &mockChannel{}
	ch.On("ExchangeDeclare", "budgetforge.events", "topic", true, false, false, false, amqp091.Table(nil)).Return(nil)

	userID := uuid.Must(uuid.NewV4())
	ch.On("PublishWithContext", mock.Anything, "budgetforge.events", "bill.paid", false, false,
		mock.MatchedBy(func(msg amqp091.Publishing) bool {
			var event Event
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				return false
			}
			return msg.DeliveryMode == amqp091.Persistent &&
				msg.ContentType == "application/json" &&
				event.Type == BillPaid &&
				event.UserID == userID
		})).Return(nil)

	p, err := newAMQPPublisher(ch, "budgetforge.events", log)
	require.NoError(t, err)

	p.Publish(context.Background(), New(BillPaid, userID, map[string]string{"billId": "b1"}))
	ch.AssertExpectations(t)
}

func TestAMQPPublisher_PublishFailureIsLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	ch := &mockChannel{}
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	p, err := newAMQPPublisher(ch, "budgetforge.events", log)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), New(TransactionCreated, uuid.Must(uuid.NewV4()), nil))
	})
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "Events.Publish", hook.LastEntry().Message)
}

func TestNewAMQPPublisher_DeclareFails(t *testing.T) {
	log, _ := test.NewNullLogger()
	ch := &mockChannel{}
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("access refused"))

	_, err := newAMQPPublisher(ch, "budgetforge.events", log)
	assert.ErrorContains(t, err, "access refused")
}

func TestLogPublisher(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	NewLogPublisher(log).Publish(context.Background(), New(AccountCreated, uuid.Must(uuid.NewV4()), nil))

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, AccountCreated, hook.LastEntry().Data["eventType"])
}
