package ipc

import (
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const dialTimeout = 2 * time.Second

// Client talks to a running daemon over its control socket.
type Client struct {
	rpc *rpc.Client
}

// Dial connects to the daemon socket. A connection error almost always
// means no daemon is running.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to daemon at %s: %w", socketPath, err)
	}
	return &Client{rpc: jsonrpc.NewClient(conn)}, nil
}

// Ping checks liveness and returns the daemon PID.
func (c *Client) Ping() (PingReply, error) {
	var reply PingReply
	err := c.rpc.Call(ServiceName+".Ping", &PingArgs{}, &reply)
	return reply, err
}

// Status fetches a daemon state snapshot.
func (c *Client) Status() (StatusReply, error) {
	var reply StatusReply
	err := c.rpc.Call(ServiceName+".Status", &StatusArgs{}, &reply)
	return reply, err
}

// Stop asks the daemon to shut down.
func (c *Client) Stop() (StopReply, error) {
	var reply StopReply
	err := c.rpc.Call(ServiceName+".Stop", &StopArgs{}, &reply)
	return reply, err
}

// TestNotification triggers a probe notification.
func (c *Client) TestNotification() (TestNotificationReply, error) {
	var reply TestNotificationReply
	err := c.rpc.Call(ServiceName+".TestNotification", &TestNotificationArgs{}, &reply)
	return reply, err
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}
