package domain

import "time"

// Company is the unit of tenant isolation. It owns zero or more users.
type Company struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
