package kafka_test

import (
	"testing"

	"github.com/kingxjullien14/nkp-ems/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{
		ID:      uuid.NewString(),
		Topic:   "ems.leave.decided.v1",
		Payload: []byte(`{}`),
		Status:  kafka.OutboxStatusPending,
	}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	missingID := valid
	missingID.ID = ""
	assert.Error(t, kafka.ValidateOutboxEvent(missingID))

	missingTopic := valid
	missingTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(missingTopic))

	emptyPayload := valid
	emptyPayload.Payload = nil
	assert.Error(t, kafka.ValidateOutboxEvent(emptyPayload))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(badStatus))
}
