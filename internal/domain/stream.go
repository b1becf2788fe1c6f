package domain

import "time"

// StreamDevicePosition - стрим позиций устройств по умолчанию
const StreamDevicePosition = "stream:device:position"

// PositionEvent - входящее событие о позиции устройства
type PositionEvent struct {
	SessionID  string    `json:"session_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Position - последняя известная позиция устройства
type Position struct {
	LatLng
	Accuracy   float64   `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
