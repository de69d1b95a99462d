package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"snapname/internal/logging"
)

// Controller is what the server needs from the daemon.
type Controller interface {
	// Status returns a snapshot of the daemon state.
	Status() StatusReply
	// RequestStop begins shutdown and returns without waiting for it.
	RequestStop()
	// TestNotification sends a probe through the configured backend.
	TestNotification(ctx context.Context) error
}

// Server accepts control connections on a Unix socket.
type Server struct {
	socketPath string
	listener   net.Listener
	rpcServer  *rpc.Server
	logger     *slog.Logger

	closeOnce sync.Once
}

// NewServer binds the socket and registers the control handler. A stale
// socket file from a crashed daemon is removed first; the single-instance
// lock guarantees no live daemon owns it.
func NewServer(socketPath string, controller Controller, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("removing stale socket %s: %w", socketPath, err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", socketPath, err)
	}

	rpcServer := rpc.NewServer()
	if err := rpcServer.RegisterName(ServiceName, &handler{controller: controller}); err != nil {
		listener.Close()
		return nil, fmt.Errorf("registering rpc handler: %w", err)
	}

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		rpcServer:  rpcServer,
		logger:     logging.NewComponentLogger(logger, "ipc"),
	}, nil
}

// Serve accepts connections until Close. It always returns a non-nil error;
// after Close that error is net.ErrClosed.
func (s *Server) Serve() error {
	s.logger.Info("control socket listening", logging.String("socket", s.socketPath))
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(conn))
	}
}

// SocketPath returns the bound socket path.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Close stops accepting and removes the socket file.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.listener.Close()
		if rmErr := os.Remove(s.socketPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	})
	return err
}

// handler adapts the Controller to net/rpc method signatures.
type handler struct {
	controller Controller
}

func (h *handler) Ping(_ *PingArgs, reply *PingReply) error {
	reply.PID = os.Getpid()
	return nil
}

func (h *handler) Status(_ *StatusArgs, reply *StatusReply) error {
	*reply = h.controller.Status()
	return nil
}

func (h *handler) Stop(_ *StopArgs, reply *StopReply) error {
	h.controller.RequestStop()
	reply.Stopping = true
	return nil
}

func (h *handler) TestNotification(_ *TestNotificationArgs, reply *TestNotificationReply) error {
	if err := h.controller.TestNotification(context.Background()); err != nil {
		reply.Error = err.Error()
		return nil
	}
	reply.Sent = true
	return nil
}
