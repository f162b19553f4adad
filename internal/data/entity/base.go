package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries identity, timestamps and the soft-delete marker.
type Base struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// NewBase stamps a fresh id and creation time.
func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

// SoftDelete marks the record deleted. It reports false when it already was.
func (b *Base) SoftDelete(now time.Time) bool {
	if b.DeletedAt != nil {
		return false
	}
	b.DeletedAt = &now
	b.UpdatedAt = now
	return true
}

func (b Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// BaseNoDelete is for records that are never soft-deleted.
type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewBaseNoDelete(now time.Time) BaseNoDelete {
	return BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// BaseSimple is for immutable rows.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

func NewBaseSimple(now time.Time) BaseSimple {
	return BaseSimple{ID: uuid.New(), CreatedAt: now}
}
