package domain

// InboxMessage is one row of the board account's messages inbox.
type InboxMessage struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
