package domain

import "github.com/uptrace/bun"

// User is an identity record. Password always holds the argon2id hash,
// never the cleartext, by the time the record is persisted; it is never
// serialized outward. Email is unique among live users; on delete it is
// rewritten to a tombstone so the address can be re-used.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	Audited

	Email               string `bun:"email,notnull,unique" json:"email,omitempty"`
	Password            string `bun:"password,notnull" json:"-"`
	FirstName           string `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName            string `bun:"last_name,notnull" json:"last_name,omitempty"`
	PhoneNumber         string `bun:"phone_number" json:"phone_number,omitempty"`
	ExternalDirectoryID string `bun:"external_directory_id" json:"external_directory_id,omitempty"`
	NotificationToken   string `bun:"notification_token" json:"notification_token,omitempty"`
}
