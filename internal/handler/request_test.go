package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	req, err := NewRequest(map[string]int64{"run_id": 7})

	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.False(t, req.Timestamp.IsZero())

	var payload map[string]int64
	require.NoError(t, req.Unmarshal(&payload))
	assert.Equal(t, int64(7), payload["run_id"])
}

func TestNewRequest_UnmarshalablePayload(t *testing.T) {
	_, err := NewRequest(make(chan int))
	assert.Error(t, err)
}

func TestNewSuccessResponse(t *testing.T) {
	resp, err := NewSuccessResponse("req-1", map[string]string{"status": "delivered"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "req-1", resp.ID)
	assert.Nil(t, resp.Error)

	var data map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "delivered", data["status"])
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("req-1", "NOT_FOUND", "run 7 does not exist", false)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "run 7 does not exist", resp.Error.Message)
	assert.False(t, resp.Error.Retryable)
}
