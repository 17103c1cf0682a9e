package actor

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type rosterEntry struct {
	ID      string `yaml:"id"`
	Role    string `yaml:"role"`
	Manager string `yaml:"manager"`
}

type rosterFile struct {
	People []rosterEntry `yaml:"people"`
}

// ParseRosterYAML decodes a list of people:
//
//	people:
//	  - id: 6f1c...
//	    role: manager
//	  - id: 9a2e...
//	    role: employee
//	    manager: 6f1c...
func ParseRosterYAML(data []byte) ([]Person, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("roster: payload is empty")
	}
	var raw rosterFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("roster: decode: %w", err)
	}

	people := make([]Person, 0, len(raw.People))
	seen := make(map[uuid.UUID]bool, len(raw.People))
	for i, e := range raw.People {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("roster: entry %d: invalid id %q", i, e.ID)
		}
		if seen[id] {
			return nil, fmt.Errorf("roster: entry %d: duplicate id %s", i, id)
		}
		seen[id] = true

		role, ok := ParseRole(e.Role)
		if !ok {
			return nil, fmt.Errorf("roster: entry %d: unknown role %q", i, e.Role)
		}

		p := Person{ID: id, Role: role}
		if e.Manager != "" {
			managerID, err := uuid.Parse(e.Manager)
			if err != nil {
				return nil, fmt.Errorf("roster: entry %d: invalid manager %q", i, e.Manager)
			}
			p.ManagerID = &managerID
		}
		if err := validatePerson(p); err != nil {
			return nil, fmt.Errorf("roster: entry %d: %w", i, err)
		}
		people = append(people, p)
	}
	return people, nil
}

func LoadRosterFile(path string) ([]Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: read %s: %w", path, err)
	}
	people, err := ParseRosterYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return people, nil
}

// SaveAll writes people in order and stops at the first failure.
func SaveAll(ctx context.Context, w DirectoryWriter, people []Person) error {
	for _, p := range people {
		if err := w.Save(ctx, p); err != nil {
			return fmt.Errorf("save %s: %w", p.ID, err)
		}
	}
	return nil
}
