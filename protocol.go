package main

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CommandKind selects the operation the display surface performs.
type CommandKind string

const (
	CmdChangeSkin       CommandKind = "changeSkin"
	CmdChangeColor      CommandKind = "changeGamepadColor"
	CmdChangeBackground CommandKind = "changeBackgroundStyle"
	CmdToggleTriggers   CommandKind = "toggleTriggersMeter"
	CmdSetActiveGamepad CommandKind = "setActiveGamepad"
	CmdSetDraggable     CommandKind = "setDraggable"
	CmdSetDebug         CommandKind = "setDebug"
	CmdSnapshot         CommandKind = "snapshot"
)

// Command is sent from the host to the display surface. Only the payload
// field matching Kind is meaningful.
type Command struct {
	Seq        uint64      `json:"seq"`
	Kind       CommandKind `json:"kind"`
	Skin       SkinMode    `json:"skin,omitempty"`
	Color      string      `json:"color"`
	Background string      `json:"background,omitempty"`
	On         bool        `json:"on"`
	Index      int         `json:"index"`
}

// MessageType tags messages coming back from the display surface.
type MessageType string

const (
	MsgReply               MessageType = "reply"
	MsgControllerConnected MessageType = "controllerConnected"
	MsgDetectionFinished   MessageType = "detectionFinished"
	MsgLog                 MessageType = "log"
	MsgReady               MessageType = "ready"
)

// GamepadIdentity is what the surface reports when a controller becomes active.
type GamepadIdentity struct {
	Index int    `json:"index"`
	RawID string `json:"id"`
}

// SurfaceSnapshot is the surface's view of its own state, attached to every reply.
type SurfaceSnapshot struct {
	Skin               SkinMode          `json:"skin"`
	ColorName          string            `json:"colorName"`
	BackgroundStyle    string            `json:"backgroundStyle"`
	TriggersMeter      bool              `json:"triggersMeter"`
	ActiveGamepadIndex int               `json:"activeGamepadIndex"`
	Gamepads           []GamepadIdentity `json:"gamepads,omitempty"`
}

func (s *SurfaceSnapshot) hasGamepad(index int) bool {
	if s == nil || index < 0 {
		return false
	}
	for _, g := range s.Gamepads {
		if g.Index == index {
			return true
		}
	}
	return false
}

// Reply acknowledges the command with the same Seq.
type Reply struct {
	Seq   uint64           `json:"seq"`
	OK    bool             `json:"ok"`
	Error string           `json:"error,omitempty"`
	State *SurfaceSnapshot `json:"state,omitempty"`
}

type SurfaceMessage struct {
	Type    MessageType      `json:"type"`
	Reply   *Reply           `json:"reply,omitempty"`
	Gamepad *GamepadIdentity `json:"gamepad,omitempty"`
	Line    string           `json:"line,omitempty"`
}

// Surface delivers commands to the display surface. Post must not block on
// the surface; replies come back asynchronously as SurfaceMessages.
type Surface interface {
	Post(cmd Command) error
}

var errSurfaceNotReady = errors.New("display surface not ready")

// bridgeReceiver is the entry point the injected bridge script installs.
const bridgeReceiver = "window.overlayBridge"

// encodeCommandScript renders cmd as a script for the surface. The payload is
// a JSON literal so no caller-supplied string is spliced into code.
func encodeCommandScript(cmd Command) (string, error) {
	if cmd.Kind == "" {
		return "", errors.New("command kind is empty")
	}
	b, err := json.Marshal(cmd)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", cmd.Kind, err)
	}
	return fmt.Sprintf("%[1]s && %[1]s.receive(%s);", bridgeReceiver, b), nil
}

func decodeSurfaceMessage(raw string) (SurfaceMessage, error) {
	var msg SurfaceMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return msg, fmt.Errorf("decode surface message: %w", err)
	}
	switch msg.Type {
	case MsgReply:
		if msg.Reply == nil {
			return msg, errors.New("reply message without reply body")
		}
	case MsgControllerConnected:
		if msg.Gamepad == nil {
			return msg, errors.New("controllerConnected message without gamepad")
		}
	case MsgDetectionFinished, MsgLog, MsgReady:
	default:
		return msg, fmt.Errorf("unknown surface message type %q", msg.Type)
	}
	return msg, nil
}
