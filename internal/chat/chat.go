// Package chat bridges the external chat relay into the game. A separate
// relay process reads the live chat and republishes raw messages over NATS;
// this bridge filters them, detects the join keyword and registers
// participants.
package chat

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fystack/stream-giveaway/pkg/common/logger"
	"github.com/fystack/stream-giveaway/pkg/events"
	"github.com/fystack/stream-giveaway/pkg/retry"
)

// Joiner registers chat participants. Satisfied by game.Manager.
type Joiner interface {
	AddParticipant(username string) bool
}

// Message is a raw chat line published by the relay.
type Message struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	Channel  string `json:"channel,omitempty"`
}

// relayStatus is the relay's own connection report.
type relayStatus struct {
	Connected bool   `json:"connected"`
	Channel   string `json:"channel,omitempty"`
}

// StatusInfo is what viewers see about the chat link.
type StatusInfo struct {
	Connected bool   `json:"connected"`
	Channel   string `json:"channel"`
	Keyword   string `json:"keyword"`
}

type Config struct {
	JoinKeyword    string
	Channel        string
	BotUsernames   []string
	MessageSubject string
	StatusSubject  string
}

type Bridge struct {
	conn    *nats.Conn
	emitter events.Emitter
	joiner  Joiner

	keyword       string
	channel       string
	bots          map[string]struct{}
	msgSubject    string
	statusSubject string

	connected atomic.Bool
	subs      []*nats.Subscription
}

func NewBridge(conn *nats.Conn, emitter events.Emitter, joiner Joiner, cfg Config) *Bridge {
	bots := make(map[string]struct{}, len(cfg.BotUsernames))
	for _, b := range cfg.BotUsernames {
		bots[strings.ToLower(strings.TrimSpace(b))] = struct{}{}
	}
	return &Bridge{
		conn:          conn,
		emitter:       emitter,
		joiner:        joiner,
		keyword:       strings.ToLower(cfg.JoinKeyword),
		channel:       cfg.Channel,
		bots:          bots,
		msgSubject:    cfg.MessageSubject,
		statusSubject: cfg.StatusSubject,
	}
}

// Start subscribes to the relay subjects. Returns the first subscription
// error; a started bridge must be stopped.
func (b *Bridge) Start() error {
	if err := b.subscribe(b.msgSubject, func(m *nats.Msg) {
		var msg Message
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			logger.Warn("Malformed chat message", "err", err)
			return
		}
		b.handleMessage(msg)
	}); err != nil {
		return err
	}

	if err := b.subscribe(b.statusSubject, func(m *nats.Msg) {
		var st relayStatus
		if err := json.Unmarshal(m.Data, &st); err != nil {
			logger.Warn("Malformed chat status", "err", err)
			return
		}
		b.handleStatus(st)
	}); err != nil {
		b.Stop()
		return err
	}

	logger.Info("Chat bridge started", "channel", b.channel, "keyword", b.keyword)
	return nil
}

func (b *Bridge) subscribe(subject string, handler nats.MsgHandler) error {
	return retry.Constant(func() error {
		sub, err := b.conn.Subscribe(subject, handler)
		if err != nil {
			return err
		}
		b.subs = append(b.subs, sub)
		return nil
	}, time.Second, 3)
}

func (b *Bridge) Stop() {
	for _, sub := range b.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Chat unsubscribe failed", "err", err)
		}
	}
	b.subs = nil
	b.connected.Store(false)
}

// Status reports the relay link state. Used for the periodic rebroadcast.
func (b *Bridge) Status() any {
	return StatusInfo{
		Connected: b.connected.Load(),
		Channel:   b.channel,
		Keyword:   b.keyword,
	}
}

// handleMessage filters bots, relays the line to viewers and registers the
// sender when the message carries the join keyword.
func (b *Bridge) handleMessage(msg Message) {
	username := strings.TrimSpace(msg.Username)
	if username == "" {
		return
	}
	if _, bot := b.bots[strings.ToLower(username)]; bot {
		return
	}

	if b.emitter != nil {
		if err := b.emitter.Emit(events.SubjectChat, msg); err != nil {
			logger.Warn("Chat relay failed", "err", err)
		}
	}

	if b.keyword != "" && strings.Contains(strings.ToLower(msg.Text), b.keyword) {
		if b.joiner.AddParticipant(username) {
			logger.Info("Participant joined via chat", "username", username)
		}
	}
}

func (b *Bridge) handleStatus(st relayStatus) {
	prev := b.connected.Swap(st.Connected)
	if prev != st.Connected {
		logger.Info("Chat relay status changed", "connected", st.Connected, "channel", st.Channel)
	}
	if b.emitter != nil {
		if err := b.emitter.Emit(events.SubjectChatStatus, b.Status()); err != nil {
			logger.Warn("Chat status relay failed", "err", err)
		}
	}
}
