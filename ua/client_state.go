package ua

import "fmt"

// ChannelState is the state of the secure channel to the server.
type ChannelState int

// Channel states.
const (
	ChannelClosed ChannelState = iota
	ChannelConnecting
	ChannelOpen
	ChannelClosing
)

// String returns the channel state name.
func (s ChannelState) String() string {
	switch s {
	case ChannelConnecting:
		return "connecting"
	case ChannelOpen:
		return "open"
	case ChannelClosing:
		return "closing"
	default:
		return "closed"
	}
}

// SessionState is the state of the session on top of the secure channel.
type SessionState int

// Session states.
const (
	SessionClosed SessionState = iota
	SessionCreated
	SessionActivated
	SessionClosing
)

// String returns the session state name.
func (s SessionState) String() string {
	switch s {
	case SessionCreated:
		return "created"
	case SessionActivated:
		return "activated"
	case SessionClosing:
		return "closing"
	default:
		return "closed"
	}
}

// ClientState is a snapshot of the protocol engine's connection state: channel
// state, session state, and the status of the most recent connect attempt.
type ClientState struct {
	Channel       ChannelState
	Session       SessionState
	ConnectStatus StatusCode
}

// IsConnected reports whether the channel is open and the session activated.
func (s ClientState) IsConnected() bool {
	return s.Channel == ChannelOpen && s.Session == SessionActivated
}

// String formats the state for logging.
func (s ClientState) String() string {
	return fmt.Sprintf("channel=%s session=%s connect=%s", s.Channel, s.Session, s.ConnectStatus)
}
