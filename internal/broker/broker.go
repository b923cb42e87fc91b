// Package broker runs an embedded NATS server inside the supervisor process
// so the sensor fleet has a transport without any external dependency.
// Workers and the fusion node connect as ordinary clients.
package broker

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

const readyTimeout = 5 * time.Second

// Server wraps an embedded NATS server.
type Server struct {
	ns *server.Server
}

// Start launches an embedded NATS server bound to localhost on the given
// port. Port -1 picks a random free port. Start blocks until the server is
// ready to accept client connections.
func Start(port int) (*Server, error) {
	opts := &server.Options{
		Host:  "127.0.0.1",
		Port:  port,
		NoLog: true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("creating embedded broker: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, fmt.Errorf("embedded broker not ready after %s", readyTimeout)
	}

	return &Server{ns: ns}, nil
}

// ClientURL returns the URL workers use to connect.
func (s *Server) ClientURL() string {
	return s.ns.ClientURL()
}

// Shutdown stops the server and waits for it to finish.
func (s *Server) Shutdown() {
	s.ns.Shutdown()
	s.ns.WaitForShutdown()
}
