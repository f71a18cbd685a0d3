// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model RegisterRequest
type RegisterRequest struct {
	// Desired username, unique and immutable after creation
	// required: true
	Username string `json:"username" example:"alice"`
	// User's email address, normalized to lowercase on registration
	// required: true
	Email string `json:"email" example:"alice@example.com"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
	// Must match password exactly
	// required: true
	PasswordConfirm string `json:"password_confirm" example:"MySecretPassword@123"`
	FirstName       string `json:"first_name" example:"Alice"`
	LastName        string `json:"last_name" example:"Larsson"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// Username or email address
	Username string `json:"username" example:"alice"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model UserDetails
type UserDetails struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// swagger:model AuthResponse
type AuthResponse struct {
	// Message indicating successful operation
	Message string `json:"message"`
	// Session token for subsequent authenticated requests.
	// Should be used in the Authorization header as a Bearer token.
	SessionToken string      `json:"session_token"`
	User         UserDetails `json:"user"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model GuestResponse
type GuestResponse struct {
	Message string `json:"message"`
	GuestID string `json:"guest_id"`
	IsGuest bool   `json:"is_guest"`
}

// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email address of the account to recover
	// required: true
	Email string `json:"email" example:"alice@example.com"`
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Encoded user id from the reset link
	// required: true
	UID string `json:"uid"`
	// Reset token from the reset link
	// required: true
	Token string `json:"token"`
	// New password
	// required: true
	NewPassword string `json:"new_password"`
}

// swagger:model PropertyRequest
type PropertyRequest struct {
	// Property type: Villa, Apartment or House
	Type         string `json:"type" example:"Villa"`
	Address      string `json:"address" example:"Strandvägen 12"`
	Area         string `json:"area" example:"Östermalm"`
	Municipality string `json:"municipality" example:"Stockholm"`
	// Display price, stored verbatim
	Price string  `json:"price" example:"24 900 000 kr"`
	Sqm   uint    `json:"sqm" example:"185"`
	Rooms uint    `json:"rooms" example:"6"`
	Fee   *string `json:"fee" example:"4 200 kr/mån"`
	// Free-text published label, e.g. "Yesterday"
	Published string `json:"published" example:"Yesterday"`
	IsBidding bool   `json:"is_bidding"`
	// Renovation level: none, basic, plus or premium
	RenovationLevel string `json:"renovation_level" example:"premium"`
	Description     string `json:"description"`
	BrokerID        *uint  `json:"broker_id"`
}

// swagger:model BrokerRequest
type BrokerRequest struct {
	Name     string `json:"name" example:"Erik Sundin"`
	ImageURL string `json:"image_url"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// swagger:model PropertyImageRequest
type PropertyImageRequest struct {
	PropertyID uint   `json:"property_id"`
	ImageURL   string `json:"image_url"`
}

// swagger:model PropertyFactRequest
type PropertyFactRequest struct {
	PropertyID uint   `json:"property_id"`
	Label      string `json:"label" example:"Byggår"`
	Value      string `json:"value" example:"1928"`
}

// swagger:model ContactRequest
type ContactRequest struct {
	// required: true
	Name string `json:"name"`
	// required: true
	Email string  `json:"email"`
	Phone *string `json:"phone"`
	// required: true
	Message string `json:"message"`
}
