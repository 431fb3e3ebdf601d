package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fystack/stream-giveaway/pkg/events"
)

type mockJoiner struct {
	joined []string
}

func (m *mockJoiner) AddParticipant(username string) bool {
	for _, j := range m.joined {
		if j == username {
			return false
		}
	}
	m.joined = append(m.joined, username)
	return true
}

type mockEmitter struct {
	subjects []string
}

func (m *mockEmitter) Emit(subject string, data any) error {
	m.subjects = append(m.subjects, subject)
	return nil
}

func (m *mockEmitter) Close() {}

func newTestBridge(joiner *mockJoiner, emitter *mockEmitter) *Bridge {
	return NewBridge(nil, emitter, joiner, Config{
		JoinKeyword:  "легенда",
		Channel:      "somechannel",
		BotUsernames: []string{"Nightbot", "streamelements"},
	})
}

func TestHandleMessageJoinKeyword(t *testing.T) {
	joiner := &mockJoiner{}
	b := newTestBridge(joiner, &mockEmitter{})

	b.handleMessage(Message{Username: "alice", Text: "я ЛЕГЕНДА!"})
	require.Equal(t, []string{"alice"}, joiner.joined)

	// Repeat joins are absorbed by the joiner, not the bridge.
	b.handleMessage(Message{Username: "alice", Text: "легенда"})
	assert.Equal(t, []string{"alice"}, joiner.joined)
}

func TestHandleMessageWithoutKeyword(t *testing.T) {
	joiner := &mockJoiner{}
	emitter := &mockEmitter{}
	b := newTestBridge(joiner, emitter)

	b.handleMessage(Message{Username: "alice", Text: "hello there"})

	assert.Empty(t, joiner.joined)
	// The line is still relayed to viewers.
	assert.Equal(t, []string{events.SubjectChat}, emitter.subjects)
}

func TestHandleMessageFiltersBots(t *testing.T) {
	joiner := &mockJoiner{}
	emitter := &mockEmitter{}
	b := newTestBridge(joiner, emitter)

	b.handleMessage(Message{Username: "NIGHTBOT", Text: "легенда"})
	b.handleMessage(Message{Username: "StreamElements", Text: "легенда"})

	assert.Empty(t, joiner.joined)
	assert.Empty(t, emitter.subjects, "bot lines are not relayed")
}

func TestHandleMessageIgnoresEmptyUsername(t *testing.T) {
	joiner := &mockJoiner{}
	b := newTestBridge(joiner, &mockEmitter{})

	b.handleMessage(Message{Username: "   ", Text: "легенда"})
	assert.Empty(t, joiner.joined)
}

func TestHandleStatusTracksConnection(t *testing.T) {
	emitter := &mockEmitter{}
	b := newTestBridge(&mockJoiner{}, emitter)

	st := b.Status().(StatusInfo)
	assert.False(t, st.Connected)

	b.handleStatus(relayStatus{Connected: true, Channel: "somechannel"})
	st = b.Status().(StatusInfo)
	assert.True(t, st.Connected)
	assert.Equal(t, "somechannel", st.Channel)

	b.handleStatus(relayStatus{Connected: false})
	assert.False(t, b.Status().(StatusInfo).Connected)

	assert.Equal(t, []string{events.SubjectChatStatus, events.SubjectChatStatus}, emitter.subjects)
}
