package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

// Subject suffixes published under the configured prefix.
const (
	SubjectState       = "state"
	SubjectTile        = "tile"
	SubjectParticipant = "participant"
	SubjectChat        = "chat"
	SubjectChatStatus  = "chatstatus"
)

type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Emitter fans out game events to viewers. Publishing is fire-and-forget:
// callers never wait on delivery before answering the request that caused
// the event.
type Emitter interface {
	Emit(subject string, data any) error
	Close()
}

type emitter struct {
	conn          *nats.Conn
	subjectPrefix string
}

func NewEmitter(conn *nats.Conn, subjectPrefix string) Emitter {
	return &emitter{
		conn:          conn,
		subjectPrefix: subjectPrefix,
	}
}

func (e *emitter) Emit(subject string, data any) error {
	event := Event{
		Type:      subject,
		Data:      data,
		Timestamp: time.Now().UTC().Unix(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return e.conn.Publish(e.subjectPrefix+"."+subject, payload)
}

func (e *emitter) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}
