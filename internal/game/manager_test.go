package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fystack/stream-giveaway/internal/outcome"
)

type recordedEvent struct {
	Subject string
	Data    any
}

// mockEmitter records every broadcast for inspection.
type mockEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (m *mockEmitter) Emit(subject string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{Subject: subject, Data: data})
	return nil
}

func (m *mockEmitter) Close() {}

func (m *mockEmitter) bySubject(subject string) []recordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recordedEvent
	for _, e := range m.events {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out
}

// zeroRNG always draws the first option.
type zeroRNG struct{}

func (zeroRNG) Float64() float64 { return 0 }
func (zeroRNG) IntN(n int) int   { return 0 }

type mockPasswords struct{ secret string }

func (m *mockPasswords) CheckPassword(p string) bool { return p == m.secret }

func newTestManager(t *testing.T, allowForce bool) (*Manager, *mockEmitter) {
	t.Helper()
	emitter := &mockEmitter{}
	m := NewManager(Config{
		MaxWin:     20000,
		TargetAvg:  9000,
		MaxPicks:   10,
		AllowForce: allowForce,
	}, Deps{
		Generator: outcome.NewGenerator(outcome.NewSeededRNG(42), 0),
		RNG:       zeroRNG{},
		Emitter:   emitter,
		Passwords: &mockPasswords{secret: "hunter2"},
	})
	return m, emitter
}

func TestPickWinnerNoParticipants(t *testing.T) {
	m, _ := newTestManager(t, false)
	_, err := m.PickWinner("")
	assert.ErrorIs(t, err, ErrNoParticipants)
}

func TestPickWinnerUnknownManualName(t *testing.T) {
	m, _ := newTestManager(t, false)
	m.AddParticipant("alice")

	_, err := m.PickWinner("mallory")
	assert.ErrorIs(t, err, ErrUnknownParticipant)
	assert.Equal(t, StatusIdle, m.State().Status)
}

func TestPickWinnerManualCaseInsensitive(t *testing.T) {
	m, _ := newTestManager(t, false)
	m.AddParticipant("Alice")

	winner, err := m.PickWinner("ALICE")
	require.NoError(t, err)
	assert.Equal(t, "Alice", winner)
	assert.Equal(t, StatusReady, m.State().Status)
}

func TestPickWinnerRandom(t *testing.T) {
	m, _ := newTestManager(t, false)
	m.AddParticipant("alice")
	m.AddParticipant("bob")

	// zeroRNG picks index 0, the first joiner.
	winner, err := m.PickWinner("")
	require.NoError(t, err)
	assert.Equal(t, "alice", winner)
}

func TestStartRoundRequiresWinner(t *testing.T) {
	m, _ := newTestManager(t, false)
	_, err := m.StartRound()
	assert.ErrorIs(t, err, ErrNoWinnerSelected)
}

func TestAddParticipantDedupAndBroadcast(t *testing.T) {
	m, emitter := newTestManager(t, false)

	assert.True(t, m.AddParticipant("alice"))
	assert.False(t, m.AddParticipant("ALICE"))

	joins := emitter.bySubject("participant")
	require.Len(t, joins, 1)
	assert.Equal(t, ParticipantJoinedEvent{Username: "alice"}, joins[0].Data)
}

func startedRound(t *testing.T, m *Manager) string {
	t.Helper()
	m.AddParticipant("alice")
	m.AddParticipant("bob")
	_, err := m.PickWinner("")
	require.NoError(t, err)
	roundID, err := m.StartRound()
	require.NoError(t, err)
	return roundID
}

func TestClickTileValidation(t *testing.T) {
	m, _ := newTestManager(t, false)

	_, err := m.ClickTile(0)
	assert.ErrorIs(t, err, ErrRoundInactive)

	startedRound(t, m)

	_, err = m.ClickTile(-1)
	assert.ErrorIs(t, err, ErrInvalidTileIndex)
	_, err = m.ClickTile(TileCount)
	assert.ErrorIs(t, err, ErrInvalidTileIndex)

	_, err = m.ClickTile(5)
	require.NoError(t, err)

	// Exactly one of two clicks on the same tile can win; the second is
	// rejected without consuming a pick.
	st := m.State()
	_, err = m.ClickTile(5)
	assert.ErrorIs(t, err, ErrTileAlreadyOpened)
	assert.Equal(t, st.PickIndex, m.State().PickIndex)
}

func TestClickTileBanksMatchReplay(t *testing.T) {
	m, emitter := newTestManager(t, false)
	startedRound(t, m)

	ended := false
	for i := 0; i < 10 && !ended; i++ {
		res, err := m.ClickTile(i)
		require.NoError(t, err)

		// The live bank must equal a cap-aware replay of the revealed
		// prefix.
		assert.Equal(t, replayCapped(m.sequence, i, 20000), res.BankAfter)
		ended = res.RoundEnded
	}

	assert.True(t, ended)
	st := m.State()
	assert.Equal(t, StatusEnded, st.Status)
	assert.Len(t, st.OpenedTiles, st.PickIndex, "every distinct click persists")

	_, err := m.ClickTile(13)
	assert.ErrorIs(t, err, ErrRoundInactive)

	tiles := emitter.bySubject("tile")
	assert.Equal(t, m.State().PickIndex, len(tiles))
}

// replayCapped mirrors the live rules: MULT results cap at maxWin.
func replayCapped(seq []outcome.Outcome, upTo, maxWin int) int {
	bank := 0
	for i := 0; i <= upTo && i < len(seq); i++ {
		o := seq[i]
		switch o.Kind {
		case outcome.KindStop:
			return bank
		case outcome.KindAdd:
			bank += o.Amount
		case outcome.KindMult:
			bank = outcome.MultiplyFloor(bank, o.Factor)
			if bank > maxWin {
				bank = maxWin
			}
		}
	}
	return bank
}

func TestAddBank(t *testing.T) {
	m, _ := newTestManager(t, false)

	_, err := m.AddBank(500)
	assert.ErrorIs(t, err, ErrRoundInactive)

	startedRound(t, m)

	bank, err := m.AddBank(500)
	require.NoError(t, err)
	assert.Equal(t, 500, bank)

	// Negative amounts clamp to zero, oversized credits cap at maxWin.
	bank, err = m.AddBank(-100)
	require.NoError(t, err)
	assert.Equal(t, 500, bank)

	bank, err = m.AddBank(MaxBankAdd)
	require.NoError(t, err)
	assert.Equal(t, 20000, bank)
}

func TestUpdateConfigClamps(t *testing.T) {
	m, _ := newTestManager(t, false)

	low, high := 1, 10_000_000
	m.UpdateConfig(&low, &high)

	st := m.State()
	assert.Equal(t, MinTargetAvg, st.TargetAvg)
	assert.Equal(t, MaxMaxWin, st.MaxWin)

	// nil leaves a field untouched.
	mid := 5000
	m.UpdateConfig(&mid, nil)
	st = m.State()
	assert.Equal(t, 5000, st.TargetAvg)
	assert.Equal(t, MaxMaxWin, st.MaxWin)
}

func TestResetClearsRoundAndParticipants(t *testing.T) {
	m, _ := newTestManager(t, false)
	startedRound(t, m)
	_, err := m.ClickTile(0)
	require.NoError(t, err)

	m.Reset()

	st := m.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.RoundID)
	assert.Empty(t, st.Winner)
	assert.Zero(t, st.Bank)
	assert.Zero(t, st.PickIndex)
	assert.Empty(t, st.OpenedTiles)
	assert.Empty(t, st.Participants)
	assert.Equal(t, 20000, st.MaxWin, "configuration survives reset")
}

func TestForceMaxWinGating(t *testing.T) {
	m, _ := newTestManager(t, false)
	err := m.ForceMaxWin(ForceNextRound, "hunter2")
	assert.ErrorIs(t, err, ErrForceDisabled)

	m, _ = newTestManager(t, true)
	err = m.ForceMaxWin(ForceNextRound, "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	err = m.ForceMaxWin(ForceMode("SOMETIME"), "hunter2")
	assert.ErrorIs(t, err, ErrInvalidForceMode)

	err = m.ForceMaxWin(ForceThisRound, "hunter2")
	assert.ErrorIs(t, err, ErrRoundInactive)
}

func TestForceNextRoundConsumedByStart(t *testing.T) {
	m, _ := newTestManager(t, true)
	require.NoError(t, m.ForceMaxWin(ForceNextRound, "hunter2"))
	assert.Equal(t, ForceNextRound, m.State().ForceMode)

	startedRound(t, m)

	st := m.State()
	assert.Equal(t, ForceNone, st.ForceMode, "flag consumed at round start")
	assert.Equal(t, outcome.ProfileJackpot, st.Profile)

	// Playing the whole forced round lands exactly on maxWin.
	bank := 0
	for i := 0; i < 10; i++ {
		res, err := m.ClickTile(i)
		require.NoError(t, err)
		bank = res.BankAfter
	}
	assert.Equal(t, 20000, bank)
}

func TestForceThisRoundRewritesTail(t *testing.T) {
	m, _ := newTestManager(t, true)
	startedRound(t, m)

	for i := 0; i < 3; i++ {
		_, err := m.ClickTile(i)
		require.NoError(t, err)
	}
	if m.State().Status != StatusPlaying {
		t.Skip("seeded round stopped within three picks")
	}

	require.NoError(t, m.ForceMaxWin(ForceThisRound, "hunter2"))

	bank := m.State().Bank
	for i := 3; i < 10; i++ {
		res, err := m.ClickTile(i)
		require.NoError(t, err)
		bank = res.BankAfter
	}
	assert.Equal(t, 20000, bank)
	assert.Equal(t, StatusEnded, m.State().Status)
}

func TestCancelForce(t *testing.T) {
	m, _ := newTestManager(t, true)
	require.NoError(t, m.ForceMaxWin(ForceNextRound, "hunter2"))
	m.CancelForce()
	assert.Equal(t, ForceNone, m.State().ForceMode)
}

func TestAuditTrailRecordsLifecycle(t *testing.T) {
	m, _ := newTestManager(t, false)
	roundID := startedRound(t, m)

	actions := make(map[string]bool)
	for _, e := range m.Audit().Entries() {
		actions[e.Action] = true
		if e.Action == "ROUND_START" {
			assert.Equal(t, roundID, e.RoundID)
		}
	}
	assert.True(t, actions["WINNER_PICKED"])
	assert.True(t, actions["ROUND_START"])
}

func TestPublicStateNeverLeaksSequence(t *testing.T) {
	m, _ := newTestManager(t, false)
	startedRound(t, m)

	st := m.State()
	assert.NotEmpty(t, m.sequence)
	assert.Empty(t, st.OpenedTiles, "unopened round reveals nothing")
}
