//go:build ignore

// Публикует позицию устройства в стрим позиций, чтобы проверить маршрут
// без браузера: go run scripts/publish_position.go -session <id>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type PositionEvent struct {
	SessionID  string    `json:"session_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "stream:device:position", "position stream")
	sessionID := flag.String("session", "", "map session id")
	lat := flag.Float64("lat", -6.9147, "latitude")
	lng := flag.Float64("lng", 107.6098, "longitude")
	accuracy := flag.Float64("accuracy", 15, "accuracy in meters")
	flag.Parse()

	if *sessionID == "" {
		log.Fatal("-session is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := PositionEvent{
		SessionID:  *sessionID,
		Lat:        *lat,
		Lng:        *lng,
		Accuracy:   *accuracy,
		RecordedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Position published\n")
	fmt.Printf("   Stream: %s\n", *stream)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Session: %s\n", event.SessionID)
	fmt.Printf("   Coordinates: %.6f, %.6f\n", event.Lat, event.Lng)
}
