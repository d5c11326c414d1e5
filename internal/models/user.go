package models

import (
	"time"
)

// User is the single account that owns every conversation. It is created
// once by the startup seeder and never deleted.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
