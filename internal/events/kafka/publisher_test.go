package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-of-credit/internal/events"
)

func TestNewMessage(t *testing.T) {
	accountID := uuid.New()
	event := events.PeriodClosed{
		PeriodID:              uuid.New(),
		AccountID:             accountID,
		PeriodNumber:          1,
		PeriodLength:          30,
		FinanceCharge:         decimal.RequireFromString("14.38"),
		Balance:               decimal.RequireFromString("500"),
		AccruedFinanceCharges: decimal.RequireFromString("14.38"),
		ClosedAt:              time.Now().UTC(),
	}

	msg, err := newMessage(event)
	require.NoError(t, err)

	assert.Equal(t, accountID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, eventTypeHeader, msg.Headers[0].Key)
	assert.Equal(t, events.TypePeriodClosed, string(msg.Headers[0].Value))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "14.38", body["finance_charge"])
	assert.Equal(t, accountID.String(), body["account_id"])
}

func TestNewPublisherUsesKeyHashing(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "line-of-credit.events")
	defer p.Close()

	assert.Equal(t, "line-of-credit.events", p.writer.Topic)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}
