package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	socketPrefix = "rayday-"
	socketSuffix = ".sock"
)

// ErrNoInstance is returned when no running rayday instance has a socket
var ErrNoInstance = errors.New("no running rayday instance found")

// Client sends commands to a running instance
type Client struct {
	socketPath string
}

// FindRunningInstance returns the socket path and pid of the most recently
// started instance
func FindRunningInstance() (string, int, error) {
	socketDir := Dir()

	var sockets []string
	err := filepath.WalkDir(socketDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // The directory might not exist
		}
		if !d.IsDir() && strings.HasPrefix(d.Name(), socketPrefix) && strings.HasSuffix(d.Name(), socketSuffix) {
			sockets = append(sockets, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var newestSocket string
	var newestTime time.Time
	for _, sock := range sockets {
		info, err := os.Stat(sock)
		if err != nil {
			continue
		}
		if newestSocket == "" || info.ModTime().After(newestTime) {
			newestTime = info.ModTime()
			newestSocket = sock
		}
	}
	if newestSocket == "" {
		return "", 0, ErrNoInstance
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newestSocket), socketPrefix), socketSuffix)
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}

	return newestSocket, pid, nil
}

// NewClient creates a client for the socket at socketPath
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	return &Client{
		socketPath: socketPath,
	}, nil
}

// Send sends a message and waits for the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(5 * time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// SendReload asks the instance to re-read its events, showing day if set
func (c *Client) SendReload(day string) (*Response, error) {
	return c.Send(Message{Command: CommandReload, Date: day})
}

// Notify sends msg to the running instance, if there is one. It returns
// ErrNoInstance when nothing is running.
func Notify(msg Message) error {
	socketPath, _, err := FindRunningInstance()
	if err != nil {
		return err
	}

	client, err := NewClient(socketPath)
	if err != nil {
		return err
	}

	response, err := client.Send(msg)
	if err != nil {
		return err
	}
	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}
	return nil
}
