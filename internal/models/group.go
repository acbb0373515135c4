package models

import "time"

// Group is a named subset of a tenant's students. Students reference a group
// by ID; deleting a group never deletes its members, it only ungroups them.
type Group struct {
	TenantID  string    `db:"tenant_id" json:"-"`
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
