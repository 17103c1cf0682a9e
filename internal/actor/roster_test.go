package actor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roster = `
people:
  - id: 2b7e2f0e-8a46-4f38-9a57-0d1f7c1e0a01
    role: admin
  - id: 5c0f6a3d-1f1e-4a3c-8f0a-6a3b4f6b9a02
    role: manager
    manager: 2b7e2f0e-8a46-4f38-9a57-0d1f7c1e0a01
  - id: 9d4c1b2a-3e5f-4a6b-8c7d-0e1f2a3b4c03
    role: Employee
    manager: 5c0f6a3d-1f1e-4a3c-8f0a-6a3b4f6b9a02
`

func TestParseRosterYAML(t *testing.T) {
	people, err := actor.ParseRosterYAML([]byte(roster))
	require.NoError(t, err)
	require.Len(t, people, 3)

	assert.Equal(t, actor.RoleHR, people[0].Role)
	assert.Nil(t, people[0].ManagerID)
	assert.Equal(t, actor.RoleEmployee, people[2].Role)
	require.NotNil(t, people[2].ManagerID)
	assert.Equal(t, people[1].ID, *people[2].ManagerID)

	t.Run("Invalid", func(t *testing.T) {
		cases := map[string]string{
			"Empty":        "  ",
			"BadID":        "people:\n  - id: x\n    role: hr\n",
			"BadRole":      "people:\n  - id: " + uuid.NewString() + "\n    role: ceo\n",
			"BadManager":   "people:\n  - id: " + uuid.NewString() + "\n    role: hr\n    manager: y\n",
			"NotYAML":      "people: [",
			"DuplicateIDs": "people:\n  - id: 2b7e2f0e-8a46-4f38-9a57-0d1f7c1e0a01\n    role: hr\n  - id: 2b7e2f0e-8a46-4f38-9a57-0d1f7c1e0a01\n    role: hr\n",
		}
		for name, data := range cases {
			_, err := actor.ParseRosterYAML([]byte(data))
			assert.Error(t, err, name)
		}
	})
}

func TestLoadRosterFileAndSaveAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.yaml")
	require.NoError(t, os.WriteFile(path, []byte(roster), 0o600))

	people, err := actor.LoadRosterFile(path)
	require.NoError(t, err)

	db, err := storage.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	d := actor.NewBadgerDirectory(db)

	ctx := context.Background()
	require.NoError(t, actor.SaveAll(ctx, d, people))
	for _, p := range people {
		got, err := d.Lookup(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Role, got.Role)
	}

	_, err = actor.LoadRosterFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
