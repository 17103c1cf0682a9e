package actor

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"gorm.io/gorm"
)

// Person is the slice of the employee directory the workflow needs. The
// directory itself is owned by the HR records service.
type Person struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Role      Role       `gorm:"type:varchar(20);not null" json:"role"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index" json:"manager_id,omitempty"`
}

func (Person) TableName() string {
	return "people"
}

type Directory interface {
	Lookup(ctx context.Context, id uuid.UUID) (*Person, error)
}

// DirectoryWriter is implemented by directories that can be seeded locally.
type DirectoryWriter interface {
	Save(ctx context.Context, p Person) error
}

func validatePerson(p Person) error {
	if p.ID == uuid.Nil {
		return apperror.Validation("person id is required")
	}
	if !p.Role.IsValid() {
		return apperror.Validation("unknown role %q", p.Role)
	}
	if p.ManagerID != nil && *p.ManagerID == p.ID {
		return apperror.Validation("person %s cannot manage themselves", p.ID)
	}
	return nil
}

type gormDirectory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) Lookup(ctx context.Context, id uuid.UUID) (*Person, error) {
	var p Person
	if err := d.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("person %s not found", id)
		}
		return nil, err
	}
	if role, ok := ParseRole(string(p.Role)); ok {
		p.Role = role
	}
	return &p, nil
}

func (d *gormDirectory) Save(ctx context.Context, p Person) error {
	if err := validatePerson(p); err != nil {
		return err
	}
	return d.db.WithContext(ctx).Save(&p).Error
}

// StaticDirectory is an in-memory Directory for the embedded backend and tests.
type StaticDirectory struct {
	mu     sync.RWMutex
	people map[uuid.UUID]Person
}

func NewStaticDirectory(people ...Person) *StaticDirectory {
	d := &StaticDirectory{people: make(map[uuid.UUID]Person, len(people))}
	for _, p := range people {
		d.people[p.ID] = p
	}
	return d
}

func (d *StaticDirectory) Put(p Person) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.people[p.ID] = p
}

func (d *StaticDirectory) Lookup(_ context.Context, id uuid.UUID) (*Person, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.people[id]
	if !ok {
		return nil, apperror.NotFound("person %s not found", id)
	}
	return &p, nil
}
