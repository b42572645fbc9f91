package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
defaultInventory: 40
products:
  - id: 1
    name: Widget
processes:
  - id: 7
    name: Cutting
    products: [1]
  - id: 8
    name: Welding
    products: [1]
machines:
  - id: 3
    name: Laser
    processes: [7, 8]
inventory:
  - product: 1
    process: 7
    quantity: 20
`

func TestFixture_Command(t *testing.T) {
	t.Run("should fill missing pairs with the default balance", func(t *testing.T) {
		f, err := DecodeFixture(strings.NewReader(fixtureYAML))
		require.NoError(t, err)

		cmd, err := f.Command()

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Len(t, cmd.Products(), 1)
		require.Len(t, cmd.Processes(), 2)
		assert.Len(t, cmd.Processes()[0].ProductIDs, 1)
		require.Len(t, cmd.Machines(), 1)
		assert.Len(t, cmd.Machines()[0].ProcessIDs, 2)

		balances := cmd.Inventory()
		require.Len(t, balances, 2)
		assert.Equal(t, int64(7), balances[0].ProcessID.Int64())
		assert.Equal(t, 20, balances[0].AvailableQuantity)
		assert.Equal(t, int64(8), balances[1].ProcessID.Int64())
		assert.Equal(t, 40, balances[1].AvailableQuantity)
	})

	t.Run("should not add defaults when disabled", func(t *testing.T) {
		f, err := DecodeFixture(strings.NewReader(strings.Replace(fixtureYAML, "defaultInventory: 40", "", 1)))
		require.NoError(t, err)

		cmd, err := f.Command()

		require.NoError(t, err)
		assert.Len(t, cmd.Inventory(), 1)
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		_, err := DecodeFixture(strings.NewReader("products: []\ncolour: red\n"))

		assert.Error(t, err)
	})

	t.Run("should reject non-positive ids", func(t *testing.T) {
		f, err := DecodeFixture(strings.NewReader("products:\n  - id: 0\n    name: Ghost\n"))
		require.NoError(t, err)

		_, err = f.Command()

		assert.ErrorContains(t, err, "product 0")
	})

	t.Run("should reject negative balances", func(t *testing.T) {
		f, err := DecodeFixture(strings.NewReader("inventory:\n  - product: 1\n    process: 7\n    quantity: -5\n"))
		require.NoError(t, err)

		_, err = f.Command()

		assert.Error(t, err)
	})
}

func TestRootCmd_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--file", path, "--dry-run"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "fixture ok: 1 products, 2 processes, 1 machines, 2 inventory balances\n", out.String())
}

func TestExampleFixture(t *testing.T) {
	f, err := readFixture("fixture.example.yaml")
	require.NoError(t, err)

	cmd, err := f.Command()

	require.NoError(t, err)
	assert.Len(t, cmd.Inventory(), 5)
}
