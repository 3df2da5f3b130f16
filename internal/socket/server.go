package socket

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
)

// Server is a Unix socket server accepting commands from the rayday CLI
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
}

// Dir returns the directory holding the sockets of running instances:
// $XDG_RUNTIME_DIR/rayday, or ~/.local/share/rayday without a runtime dir
func Dir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "rayday")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "rayday")
}

// NewServer creates a server listening on Dir()/rayday-<pid>.sock
func NewServer(pid int) (*Server, error) {
	socketDir := Dir()
	if err := os.MkdirAll(socketDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(socketDir, fmt.Sprintf("%s%d%s", socketPrefix, pid, socketSuffix))

	// A stale socket of a crashed instance with the same pid
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	log.Printf("Socket server listening on: %s", socketPath)

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10),
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins accepting connections on the socket
func (s *Server) Start() {
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
				log.Printf("Error accepting connection: %v", err)
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

// handleConnection reads one message, queues it and acknowledges it
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	reply := func(ok bool, msg string) {
		if err := encoder.Encode(Response{Success: ok, Message: msg}); err != nil {
			log.Printf("Error sending response: %v", err)
		}
	}

	var msg Message
	if err := decoder.Decode(&msg); err != nil {
		if err != io.EOF {
			log.Printf("Error decoding message: %v", err)
		}
		reply(false, fmt.Sprintf("Invalid message format: %v", err))
		return
	}

	switch msg.Command {
	case "":
		reply(false, "Missing command field")
		return
	case CommandReload, CommandGoto:
	default:
		reply(false, "Unknown command: "+msg.Command)
		return
	}

	select {
	case s.msgChan <- msg:
		reply(true, "Command queued")
	case <-s.stopChan:
		reply(false, "Server is shutting down")
	}
}

// Messages returns the channel of received messages
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop stops the server and removes the socket file
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	if s.socketPath != "" {
		os.Remove(s.socketPath)
	}
	log.Printf("Socket server stopped")
}
