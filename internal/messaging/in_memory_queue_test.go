package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-service/pkg/models"
)

func TestInMemoryQueueDeliversInOrder(t *testing.T) {
	queue := NewInMemoryQueue()
	ctx := context.Background()

	for runId := int64(1); runId <= 3; runId++ {
		require.NoError(t, queue.PublishRun(ctx, models.RunMessage{
			UserId:        1,
			DatasetS3Path: "s3://b/k",
			RunId:         runId,
			Configuration: map[string]any{},
		}))
	}

	for runId := int64(1); runId <= 3; runId++ {
		msg, err := queue.Fetch(ctx)
		require.NoError(t, err)

		var run models.RunMessage
		require.NoError(t, json.Unmarshal(msg.Payload(), &run))
		assert.Equal(t, runId, run.RunId)

		require.NoError(t, msg.Commit(ctx))
	}
}

func TestInMemoryQueueFetchHonorsCancellation(t *testing.T) {
	queue := NewInMemoryQueue()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := queue.Fetch(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInMemoryMessageRecordsCommit(t *testing.T) {
	queue := NewInMemoryQueue()
	msg := queue.PublishRaw([]byte("{}"))

	assert.False(t, msg.Committed())
	require.NoError(t, msg.Commit(context.Background()))
	assert.True(t, msg.Committed())
}
