package events

import (
	"encoding/json"
	"time"
)

const (
	TypeSearchCompleted = "search_completed"
	TypeSearchFailed    = "search_failed"
	TypeInboxScraped    = "inbox_scraped"
	// TypePing opens every SSE stream.
	TypePing            = "ping"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type SearchCompleted struct {
	Title    string `json:"job_title"`
	Location string `json:"job_location,omitempty"`
	Found    int    `json:"found"`
}

type SearchFailed struct {
	Title    string `json:"job_title"`
	Location string `json:"job_location,omitempty"`
	Code     string `json:"code"`
	Error    string `json:"error"`
}

type InboxScraped struct {
	Account  string `json:"account"`
	Messages int    `json:"messages"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
