// Package remote exposes the robot to network clients: a websocket endpoint
// that accepts key presses and streams pose snapshots, and an MQTT publisher
// for telemetry.
package remote

import (
	"encoding/json"
	"fmt"

	"robot3d/internal/input"
	"robot3d/internal/pose"
)

// Message types.
const (
	TypeKey   = "key"
	TypeHello = "hello"
	TypePose  = "pose"
	TypeError = "error"
)

// ClientMessage is sent by websocket clients.
type ClientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// ServerMessage is sent to websocket clients and MQTT subscribers.
type ServerMessage struct {
	Type     string      `json:"type"`
	ClientID string      `json:"client_id,omitempty"`
	Modes    []string    `json:"modes,omitempty"`
	Pose     *pose.State `json:"pose,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// KeyEvent is a key press received from a client.
type KeyEvent struct {
	ClientID string
	Key      input.Key
}

// DecodeKey parses a client message into a key.
func DecodeKey(data []byte) (input.Key, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return input.Key{}, fmt.Errorf("remote: decode message: %w", err)
	}
	if msg.Type != TypeKey {
		return input.Key{}, fmt.Errorf("remote: unsupported message type %q", msg.Type)
	}
	return input.ParseKey(msg.Key)
}

// PoseMessage builds the telemetry message for p.
func PoseMessage(p pose.State) ServerMessage {
	return ServerMessage{Type: TypePose, Modes: p.Modes(), Pose: &p}
}

// Telemetry receives pose snapshots from a host loop.
type Telemetry interface {
	Publish(p pose.State) error
}
