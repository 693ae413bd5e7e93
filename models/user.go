package models

import "time"

// User represents a recruiter account in Firestore
// @Description Recruiter account information
type User struct {
	ID        string    `json:"id" firestore:"-" example:"recruiter@example.com"`
	Email     string    `json:"email" firestore:"email" example:"recruiter@example.com"`
	Name      string    `json:"name" firestore:"name" example:"Jane Doe"`
	Password  string    `json:"-" firestore:"password"` // Hashed password, never sent to client
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// RegisterRequest represents recruiter registration request
// @Description Recruiter registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"recruiter@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
}

// LoginRequest represents login request
// @Description Recruiter login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"recruiter@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// AuthResponse represents authentication response
// @Description Authentication response with JWT token
type AuthResponse struct {
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    *User  `json:"user"`
	Message string `json:"message,omitempty" example:"Login successful"`
}
