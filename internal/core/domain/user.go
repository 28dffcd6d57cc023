package domain

import "time"

// User is a directory member. A user belongs to at most one company;
// CompanyID is nil for users outside any tenant (typically super admins,
// by convention rather than enforcement).
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CompanyID    *int64    `json:"company_id,omitempty" bson:"company_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
