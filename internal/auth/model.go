package auth

import "time"

// RoleRestaurantOwner is granted when a user registers a restaurant.
const RoleRestaurantOwner = "restaurant_owner"

// User is the domain entity. Password holds the bcrypt hash.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
