package domain

import "time"

// Audited is the base shape shared by every persisted entity: integer
// primary key, audit stamps, and the soft-delete flag. Entities embed it
// and thereby satisfy Record for the generic repository.
type Audited struct {
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	CreatedUserID *int64     `bun:"created_user_id" json:"created_user_id,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull" json:"created_at,omitempty"`
	UpdatedUserID *int64     `bun:"updated_user_id" json:"updated_user_id,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at" json:"updated_at,omitempty"`
	IsDeleted     bool       `bun:"is_deleted,notnull,default:false" json:"-"`
}

// Record describes the audit fields the generic repository needs: id
// access plus the create/update/delete stamping hooks. created_at is
// immutable after StampCreate; is_deleted only ever goes false to true.
type Record interface {
	GetID() int64
	SetID(id int64)
	StampCreate(actor *int64, now time.Time)
	StampUpdate(actor *int64, now time.Time)
	MarkDeleted()
	Deleted() bool
}

func (a *Audited) GetID() int64   { return a.ID }
func (a *Audited) SetID(id int64) { a.ID = id }

// StampCreate records the creating actor and time and clears the update
// fields, so a freshly created row never carries stale update stamps.
func (a *Audited) StampCreate(actor *int64, now time.Time) {
	a.CreatedUserID = actor
	a.CreatedAt = now
	a.UpdatedUserID = nil
	a.UpdatedAt = nil
}

// StampUpdate records the updating actor and time.
func (a *Audited) StampUpdate(actor *int64, now time.Time) {
	a.UpdatedUserID = actor
	a.UpdatedAt = &now
}

func (a *Audited) MarkDeleted() { a.IsDeleted = true }
func (a *Audited) Deleted() bool { return a.IsDeleted }
