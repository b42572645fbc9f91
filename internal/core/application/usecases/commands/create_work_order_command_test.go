package commands_test

import (
	"testing"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSteps() []commands.StepInput {
	return []commands.StepInput{{
		ProcessID:         mustID(7),
		Sequence:          1,
		AvailableQuantity: 50,
		Status:            workorder.StepPending,
		Machines:          []commands.MachineInput{{MachineID: mustID(3), AssignedQuantity: 50}},
	}}
}

func TestNewCreateWorkOrderCommand(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateWorkOrderCommand("Acme", mustID(1), 100, &due, validSteps())

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "Acme", cmd.CustomerName())
		assert.Equal(t, int64(1), cmd.ProductID().Int64())
		assert.Equal(t, 100, cmd.Quantity())
		assert.Equal(t, &due, cmd.DueDate())
		assert.Len(t, cmd.Steps(), 1)
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := commands.NewCreateWorkOrderCommand("", kernel.ID{}, 0, nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
		assert.ErrorIs(t, err, commands.ErrProcessesAreRequired)
		assert.Contains(t, err.Error(), commands.ErrQuantityIsInvalid.Error())
		assert.Contains(t, err.Error(), "productId")
		assert.True(t, errs.IsInvalidInput(err))
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		var cmd commands.CreateWorkOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateWorkOrderCommandIsNotConstructed)
	})
}
