package profile

import "time"

type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}
