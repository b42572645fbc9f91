package commands_test

import (
	"testing"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignMachinesCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewAssignMachinesCommand(mustID(11), mustID(7),
			[]commands.MachineInput{{MachineID: mustID(3), AssignedQuantity: 25}})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, int64(11), cmd.OrderID().Int64())
		assert.Equal(t, int64(7), cmd.ProcessID().Int64())
		assert.Len(t, cmd.Assignments(), 1)
	})

	t.Run("should require assignments", func(t *testing.T) {
		_, err := commands.NewAssignMachinesCommand(mustID(11), mustID(7), []commands.MachineInput{})

		assert.ErrorIs(t, err, workorder.ErrAssignmentsRequired)
	})

	t.Run("should require ids", func(t *testing.T) {
		_, err := commands.NewAssignMachinesCommand(kernel.ID{}, kernel.ID{},
			[]commands.MachineInput{{MachineID: mustID(3)}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "processId")
	})
}
