package socket

// Message is a command sent to a running rayday instance
type Message struct {
	Command string `json:"command"`
	// Date is a YYYY-MM-DD day the command refers to, if any
	Date string `json:"date,omitempty"`
}

// Response is the reply of the running instance
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Command types
const (
	// CommandReload asks the instance to re-read its event store
	CommandReload = "reload"
	// CommandGoto asks the instance to show Date
	CommandGoto = "goto"
)
