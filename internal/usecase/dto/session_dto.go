package dto

import "time"

// CreateSessionRequest - открытие новой карты
type CreateSessionRequest struct {
	Geolocation bool `json:"geolocation"`
}

// SessionResponse - созданная сессия
type SessionResponse struct {
	ID          string    `json:"id"`
	Geolocation bool      `json:"geolocation"`
	Mode        string    `json:"mode"`
	CreatedAt   time.Time `json:"created_at"`
}
