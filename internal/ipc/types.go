package ipc

import "time"

// ServiceName is the JSON-RPC receiver name.
const ServiceName = "Snapname"

// SocketFileName is the control socket, kept next to the daemon's logs.
const SocketFileName = "snapname.sock"

// Counters is a point-in-time snapshot of pipeline activity since start.
// Counts live in memory only and reset with the daemon.
type Counters struct {
	EventsSeen    uint64 `json:"events_seen"`
	EventsMatched uint64 `json:"events_matched"`
	Renamed       uint64 `json:"renamed"`
	Failed        uint64 `json:"failed"`
}

// PingArgs is empty; Ping just proves the socket is alive.
type PingArgs struct{}

// PingReply carries the responding daemon's PID.
type PingReply struct {
	PID int `json:"pid"`
}

// StatusArgs is empty.
type StatusArgs struct{}

// StatusReply describes the running daemon.
type StatusReply struct {
	Running        bool      `json:"running"`
	PID            int       `json:"pid"`
	StartedAt      time.Time `json:"started_at"`
	WatchDir       string    `json:"watch_dir"`
	WatcherBackend string    `json:"watcher_backend"`
	Model          string    `json:"model"`
	Workers        int       `json:"workers"`
	LockPath       string    `json:"lock_path"`
	Counters       Counters  `json:"counters"`
}

// StopArgs is empty.
type StopArgs struct{}

// StopReply acknowledges that shutdown has begun.
type StopReply struct {
	Stopping bool `json:"stopping"`
}

// TestNotificationArgs is empty.
type TestNotificationArgs struct{}

// TestNotificationReply reports the probe outcome. Error is a string so the
// reply survives the JSON-RPC boundary.
type TestNotificationReply struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}
