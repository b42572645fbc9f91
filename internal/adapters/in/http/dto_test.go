package http

import (
	"encoding/json"
	"testing"
	"time"

	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueDate_UnmarshalJSON(t *testing.T) {
	t.Run("should accept a calendar date", func(t *testing.T) {
		var d DueDate
		require.NoError(t, json.Unmarshal([]byte(`"2025-06-01"`), &d))
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), d.Time)
	})

	t.Run("should accept an RFC 3339 timestamp", func(t *testing.T) {
		var d DueDate
		require.NoError(t, json.Unmarshal([]byte(`"2025-06-01T15:04:05+02:00"`), &d))
		assert.True(t, time.Date(2025, 6, 1, 13, 4, 5, 0, time.UTC).Equal(d.Time))
	})

	t.Run("should leave a null pointer nil", func(t *testing.T) {
		var req NewWorkOrderRequest
		require.NoError(t, json.Unmarshal([]byte(`{"dueDate": null}`), &req))
		assert.Nil(t, req.DueDate)
		assert.Nil(t, req.DueDate.ptr())
	})

	t.Run("should reject other formats", func(t *testing.T) {
		var d DueDate
		err := json.Unmarshal([]byte(`"01/06/2025"`), &d)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestToUpdateCommand_KeepsAbsentFields(t *testing.T) {
	cmd, err := toUpdateCommand(11, WorkOrderUpdateRequest{
		Processes: []ProcessStepUpdateRequest{{ProcessID: 7}},
	})

	require.NoError(t, err)
	assert.Nil(t, cmd.Details().CustomerName)
	assert.Nil(t, cmd.Details().ProductID)
	assert.Nil(t, cmd.Details().DueDate)
	assert.Nil(t, cmd.Steps()[0].Machines)
}

func TestClassify(t *testing.T) {
	err := classify(errs.NewValueIsRequiredError("customerName"), msgFailedToCreate)

	assert.Equal(t, 400, err.status)
	assert.Equal(t, KindInvalidPayload, err.kind)
	assert.Equal(t, msgInvalidPayload, err.message)
}
