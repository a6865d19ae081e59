package event

// MessageReceivedData is the data for message.received events.
type MessageReceivedData struct {
	MessageID string `json:"messageID"`
	Gateway   string `json:"gateway"`
	Channel   string `json:"channel,omitempty"`
	Author    string `json:"author,omitempty"`
	Text      string `json:"text"`
}

// MessageIgnoredData is the data for message.ignored events.
type MessageIgnoredData struct {
	MessageID string `json:"messageID"`
	Reason    string `json:"reason"` // "bot" | "empty" | "no_prefix"
}

// CommandInvokedData is the data for command.invoked events.
type CommandInvokedData struct {
	MessageID string         `json:"messageID"`
	Prefix    string         `json:"prefix"`
	Command   string         `json:"command"`
	Args      map[string]any `json:"args,omitempty"`
}

// CommandFailedData is the data for command.failed events.
type CommandFailedData struct {
	MessageID string `json:"messageID"`
	Command   string `json:"command,omitempty"`
	Kind      string `json:"kind"` // parser error kind, or "handler"
	Error     string `json:"error"`
}

// CommandsReloadedData is the data for commands.reloaded events.
type CommandsReloadedData struct {
	Commands int    `json:"commands"`
	Source   string `json:"source,omitempty"`
	Error    string `json:"error,omitempty"`
}
