package domain

import "time"

type EventType string

const (
	EventTypeContainerStarted  EventType = "start"
	EventTypeContainerStopped  EventType = "stop"
	EventTypeContainerDied     EventType = "die"
	EventTypeContainerKilled   EventType = "kill"
	EventTypeContainerPaused   EventType = "pause"
	EventTypeContainerUnpaused EventType = "unpause"
	EventTypeNetworkConnect    EventType = "network-connect"
	EventTypeNetworkDisconnect EventType = "network-disconnect"
)

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeContainerStarted,
		EventTypeContainerStopped,
		EventTypeContainerDied,
		EventTypeContainerKilled,
		EventTypeContainerPaused,
		EventTypeContainerUnpaused,
		EventTypeNetworkConnect,
		EventTypeNetworkDisconnect:
		return true
	}
	return false
}

// ContainerEvent is a lifecycle notification from the runtime. Events carry
// identity only, never deltas: each one means "re-derive current state now".
type ContainerEvent struct {
	ContainerID   string
	ContainerName string
	Type          EventType
	Occurred      time.Time
}
