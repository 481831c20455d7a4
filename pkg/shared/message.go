package shared

// MessageType is the "type" field of the JSON messages on the console
// websocket. Frames travel as binary messages and have no type.
type MessageType string

// Client to server
const (
	MessageTypeRun   MessageType = "run"   // compile and start Source
	MessageTypeInput MessageType = "input" // key, touch or pause event
	MessageTypeDisk  MessageType = "disk"  // select the disk for LOAD/SAVE/FILES
	MessageTypeStop  MessageType = "stop"  // end the program
)

// Server to client
const (
	MessageTypeSession  MessageType = "session"  // session id after connecting
	MessageTypeError    MessageType = "error"    // compile or runtime error with trace
	MessageTypeControls MessageType = "controls" // input configuration of the program
	MessageTypeState    MessageType = "state"    // interpreter state changed
	MessageTypeDiskSave MessageType = "disk_saved"
)

// Touch is the pointer state of an input message.
type Touch struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Pressed bool `json:"pressed"`
}

// Controls mirrors nxbasic.ControlsInfo for the client.
type Controls struct {
	Keyboard string `json:"keyboard"` // "off", "on", "optional"
	Gamepads int    `json:"gamepads"`
	Touch    bool   `json:"touch"`
	Audio    bool   `json:"audio"`
}

// Message is sent or received over the websocket as JSON.
type Message struct {
	Type    MessageType `json:"type"`
	Content string      `json:"content,omitempty"`

	// MessageTypeRun
	Source string `json:"source,omitempty"`

	// MessageTypeDisk, MessageTypeDiskSave
	Name string `json:"name,omitempty"`

	// MessageTypeInput: Key is a browser key name ("a", "Enter",
	// "ArrowUp"); Down distinguishes keydown from keyup.
	Key   string `json:"key,omitempty"`
	Down  bool   `json:"down,omitempty"`
	Touch *Touch `json:"touch,omitempty"`
	Pause bool   `json:"pause,omitempty"`

	// MessageTypeSession
	SessionID string `json:"sessionId,omitempty"`

	// MessageTypeControls
	Controls *Controls `json:"controls,omitempty"`

	// MessageTypeState
	State string `json:"state,omitempty"`
}
