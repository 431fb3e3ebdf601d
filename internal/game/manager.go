package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/fystack/stream-giveaway/internal/catalog"
	"github.com/fystack/stream-giveaway/internal/outcome"
	"github.com/fystack/stream-giveaway/internal/registry"
	"github.com/fystack/stream-giveaway/pkg/common/logger"
	"github.com/fystack/stream-giveaway/pkg/events"
	"github.com/google/uuid"
)

// Host-settable configuration bounds.
const (
	MinTargetAvg = 1000
	MaxTargetAvg = 100000
	MinMaxWin    = 5000
	MaxMaxWin    = 500000
	MaxBankAdd   = 100000
)

// RebroadcastInterval is how often the full state is re-sent so viewers that
// missed an update resynchronize.
const RebroadcastInterval = 5 * time.Second

// PasswordChecker re-verifies the shared secret for force-mode requests.
type PasswordChecker interface {
	CheckPassword(password string) bool
}

type Config struct {
	MaxWin     int
	TargetAvg  int
	MaxPicks   int
	AllowForce bool
}

// Deps groups the manager's collaborators.
type Deps struct {
	Generator    *outcome.Generator
	RNG          outcome.RandomSource
	Emitter      events.Emitter
	Participants *registry.Registry
	Passwords    PasswordChecker
	Skins        func() []catalog.Skin
	ChatStatus   func() any
}

// Manager owns the single live round. Every read-modify-write runs behind one
// mutex so concurrent requests serialize; exactly one of two simultaneous
// clicks on the same tile wins.
type Manager struct {
	mu           sync.Mutex
	gen          *outcome.Generator
	rng          outcome.RandomSource
	emitter      events.Emitter
	participants *registry.Registry
	passwords    PasswordChecker
	skinsFn      func() []catalog.Skin
	chatStatusFn func() any
	audit        *AuditTrail
	allowForce   bool

	roundID     string
	winner      string
	bank        int
	maxWin      int
	targetAvg   int
	maxPicks    int
	pickIndex   int
	openedTiles map[int]OpenedTile
	sequence    []outcome.Outcome
	status      Status
	forceMode   ForceMode
	profile     outcome.Profile
	skins       []catalog.Skin

	stop chan struct{}
	done chan struct{}
}

func NewManager(cfg Config, deps Deps) *Manager {
	rng := deps.RNG
	if rng == nil {
		rng = outcome.DefaultRNG()
	}
	gen := deps.Generator
	if gen == nil {
		gen = outcome.NewGenerator(rng, 0)
	}
	participants := deps.Participants
	if participants == nil {
		participants = registry.New()
	}

	m := &Manager{
		gen:          gen,
		rng:          rng,
		emitter:      deps.Emitter,
		participants: participants,
		passwords:    deps.Passwords,
		skinsFn:      deps.Skins,
		chatStatusFn: deps.ChatStatus,
		audit:        NewAuditTrail(),
		allowForce:   cfg.AllowForce,
		maxWin:       cfg.MaxWin,
		targetAvg:    cfg.TargetAvg,
		maxPicks:     cfg.MaxPicks,
		openedTiles:  make(map[int]OpenedTile),
		status:       StatusIdle,
		forceMode:    ForceNone,
	}
	if m.skinsFn != nil {
		m.skins = m.skinsFn()
	}
	return m
}

// Start launches the periodic full-state rebroadcast. Stop cancels it.
func (m *Manager) Start() {
	m.stop = make(chan struct{})
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(RebroadcastInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.emit(events.SubjectState, m.State())
				if m.chatStatusFn != nil {
					m.emit(events.SubjectChatStatus, m.chatStatusFn())
				}
			case <-m.stop:
				return
			}
		}
	}()
}

func (m *Manager) Stop() {
	if m.stop != nil {
		close(m.stop)
		<-m.done
	}
}

func (m *Manager) Audit() *AuditTrail { return m.audit }

func (m *Manager) ForceEnabled() bool { return m.allowForce }

// AddParticipant registers a display name, broadcasting on first join.
// Called from the chat bridge and safe to call concurrently.
func (m *Manager) AddParticipant(username string) bool {
	if !m.participants.Add(username) {
		return false
	}
	m.emit(events.SubjectParticipant, ParticipantJoinedEvent{Username: username})
	m.emit(events.SubjectState, m.State())
	return true
}

// UpdateConfig clamps and applies host configuration. Either field may be
// nil to leave it unchanged. Applies in any status.
func (m *Manager) UpdateConfig(targetAvg, maxWin *int) {
	m.mu.Lock()
	if targetAvg != nil {
		m.targetAvg = clamp(*targetAvg, MinTargetAvg, MaxTargetAvg)
	}
	if maxWin != nil {
		m.maxWin = clamp(*maxWin, MinMaxWin, MaxMaxWin)
	}
	note := fmt.Sprintf("targetAvg=%d maxWin=%d", m.targetAvg, m.maxWin)
	snap := m.publicStateLocked()
	m.mu.Unlock()

	m.audit.Append("CONFIG_UPDATE", "", "", note)
	m.emit(events.SubjectState, snap)
}

// PickWinner selects the round winner. A manual name must already be
// registered; an unknown name is rejected rather than silently falling back
// to a random draw.
func (m *Manager) PickWinner(manual string) (string, error) {
	m.mu.Lock()
	if m.participants.Len() == 0 {
		m.mu.Unlock()
		return "", ErrNoParticipants
	}

	var winner string
	if manual != "" {
		resolved, ok := m.participants.Resolve(manual)
		if !ok {
			m.mu.Unlock()
			return "", ErrUnknownParticipant
		}
		winner = resolved
	} else {
		winner = m.participants.At(m.rng.IntN(m.participants.Len()))
	}

	m.winner = winner
	m.status = StatusReady
	snap := m.publicStateLocked()
	m.mu.Unlock()

	m.audit.Append("WINNER_PICKED", "", "", winner)
	m.emit(events.SubjectState, snap)
	return winner, nil
}

// StartRound allocates a new round and generates its sequence. A pending
// NEXT_ROUND force is consumed here.
func (m *Manager) StartRound() (string, error) {
	m.mu.Lock()
	if m.winner == "" {
		m.mu.Unlock()
		return "", ErrNoWinnerSelected
	}

	m.roundID = uuid.NewString()
	m.bank = 0
	m.pickIndex = 0
	m.openedTiles = make(map[int]OpenedTile)

	var auditAction, auditNote string
	if m.forceMode == ForceNextRound {
		m.sequence = m.gen.GenerateForcedMaxWinSequence(m.maxWin, m.maxPicks)
		m.profile = outcome.ProfileJackpot
		m.forceMode = ForceNone
		auditAction, auditNote = "ROUND_START_FORCED", "force mode: NEXT_ROUND"
	} else {
		res := m.gen.GenerateSequence(m.targetAvg, m.maxWin, m.maxPicks, outcome.ProfileNone)
		m.sequence = res.Sequence
		m.profile = res.Profile
		auditAction = "ROUND_START"
		auditNote = fmt.Sprintf("profile: %s, ev: %d", res.Profile, res.ExpectedValue)
	}

	m.status = StatusPlaying
	if m.skinsFn != nil {
		m.skins = m.skinsFn()
	}

	roundID := m.roundID
	snap := m.publicStateLocked()
	m.mu.Unlock()

	m.audit.Append(auditAction, roundID, "", auditNote)
	m.emit(events.SubjectState, snap)
	return roundID, nil
}

// Reset discards the round and participants but keeps configuration. Always
// succeeds.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.roundID = ""
	m.winner = ""
	m.bank = 0
	m.pickIndex = 0
	m.openedTiles = make(map[int]OpenedTile)
	m.sequence = nil
	m.status = StatusIdle
	m.forceMode = ForceNone
	m.profile = outcome.ProfileNone
	m.participants.Clear()
	if m.skinsFn != nil {
		m.skins = m.skinsFn()
	}
	snap := m.publicStateLocked()
	m.mu.Unlock()

	m.audit.Append("GAME_RESET", "", "", "")
	m.emit(events.SubjectState, snap)
}

func (m *Manager) ClearParticipants() {
	m.participants.Clear()
	m.emit(events.SubjectState, m.State())
}

// AddBank credits the bank directly while a round is live (host action
// between tiles). Amount clamps to [0, MaxBankAdd] and the bank caps at
// maxWin.
func (m *Manager) AddBank(amount int) (int, error) {
	m.mu.Lock()
	if m.status != StatusPlaying {
		m.mu.Unlock()
		return 0, ErrRoundInactive
	}

	amount = clamp(amount, 0, MaxBankAdd)
	m.bank += amount
	if m.bank > m.maxWin {
		m.bank = m.maxWin
	}
	bank := m.bank
	roundID := m.roundID
	snap := m.publicStateLocked()
	m.mu.Unlock()

	m.audit.Append("BANK_ADDED", roundID, "", fmt.Sprintf("+%d, total: %d", amount, bank))
	m.emit(events.SubjectState, snap)
	return bank, nil
}

// ClickTile applies the next queued outcome to the chosen tile. Validation
// failures leave state untouched.
func (m *Manager) ClickTile(tileIndex int) (ClickResult, error) {
	m.mu.Lock()
	if m.status != StatusPlaying {
		m.mu.Unlock()
		return ClickResult{}, ErrRoundInactive
	}
	if m.pickIndex >= m.maxPicks {
		m.mu.Unlock()
		return ClickResult{}, ErrPicksExhausted
	}
	if _, opened := m.openedTiles[tileIndex]; opened {
		m.mu.Unlock()
		return ClickResult{}, ErrTileAlreadyOpened
	}
	if tileIndex < 0 || tileIndex >= TileCount {
		m.mu.Unlock()
		return ClickResult{}, ErrInvalidTileIndex
	}
	if m.pickIndex >= len(m.sequence) {
		// Programming error: the sequence must always cover maxPicks.
		m.mu.Unlock()
		panic(fmt.Sprintf("sequence length %d shorter than pick index %d", len(m.sequence), m.pickIndex))
	}

	o := m.sequence[m.pickIndex]
	bankAfter := m.bank
	roundEnded := false

	switch o.Kind {
	case outcome.KindStop:
		roundEnded = true
	case outcome.KindAdd:
		bankAfter += o.Amount
	case outcome.KindMult:
		bankAfter = outcome.MultiplyFloor(bankAfter, o.Factor)
		if bankAfter > m.maxWin {
			bankAfter = m.maxWin
		}
	}

	m.openedTiles[tileIndex] = OpenedTile{
		TileIndex: tileIndex,
		PickIndex: m.pickIndex,
		Outcome:   o,
		BankAfter: bankAfter,
	}
	m.bank = bankAfter
	m.pickIndex++

	if roundEnded || m.pickIndex >= m.maxPicks {
		m.status = StatusEnded
	}

	ended := m.status == StatusEnded
	roundID := m.roundID
	finalBank := m.bank
	snap := m.publicStateLocked()
	m.mu.Unlock()

	if ended {
		m.audit.Append("ROUND_ENDED", roundID, "", fmt.Sprintf("final bank: %d", finalBank))
	}

	result := ClickResult{Outcome: o, BankAfter: bankAfter, RoundEnded: ended}
	m.emit(events.SubjectState, snap)
	m.emit(events.SubjectTile, TileRevealedEvent{
		TileIndex:  tileIndex,
		Outcome:    o,
		BankAfter:  bankAfter,
		RoundEnded: ended,
	})
	return result, nil
}

// ForceMaxWin arms the max-win override. The shared secret is re-verified at
// invocation even though the caller already holds a session.
func (m *Manager) ForceMaxWin(mode ForceMode, password string) error {
	if !m.allowForce {
		return ErrForceDisabled
	}
	if m.passwords == nil || !m.passwords.CheckPassword(password) {
		return ErrInvalidPassword
	}

	switch mode {
	case ForceNextRound:
		m.mu.Lock()
		m.forceMode = ForceNextRound
		roundID := m.roundID
		snap := m.publicStateLocked()
		m.mu.Unlock()

		m.audit.Append("FORCE_MAX_WIN_NEXT_ROUND", roundID, "", "")
		m.emit(events.SubjectState, snap)
		return nil

	case ForceThisRound:
		m.mu.Lock()
		if m.status != StatusPlaying {
			m.mu.Unlock()
			return ErrRoundInactive
		}
		m.sequence = m.gen.ForceSequenceToMaxWin(m.bank, m.pickIndex, m.maxWin, m.maxPicks, m.sequence)
		m.forceMode = ForceThisRound
		roundID := m.roundID
		snap := m.publicStateLocked()
		m.mu.Unlock()

		m.audit.Append("FORCE_MAX_WIN_THIS_ROUND", roundID, "", "")
		m.emit(events.SubjectState, snap)
		return nil

	default:
		return ErrInvalidForceMode
	}
}

func (m *Manager) CancelForce() {
	m.mu.Lock()
	m.forceMode = ForceNone
	snap := m.publicStateLocked()
	m.mu.Unlock()

	m.audit.Append("FORCE_CANCELLED", "", "", "")
	m.emit(events.SubjectState, snap)
}

// State returns the public snapshot broadcast to viewers.
func (m *Manager) State() PublicState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.publicStateLocked()
}

func (m *Manager) publicStateLocked() PublicState {
	tiles := make(map[int]OpenedTile, len(m.openedTiles))
	for k, v := range m.openedTiles {
		tiles[k] = v
	}
	return PublicState{
		RoundID:      m.roundID,
		Winner:       m.winner,
		Bank:         m.bank,
		MaxWin:       m.maxWin,
		TargetAvg:    m.targetAvg,
		MaxPicks:     m.maxPicks,
		PickIndex:    m.pickIndex,
		OpenedTiles:  tiles,
		Status:       m.status,
		ForceMode:    m.forceMode,
		Profile:      m.profile,
		Skins:        m.skins,
		Participants: m.participants.Snapshot(),
	}
}

// emit publishes fire-and-forget; a broadcast failure never fails the
// request that caused it.
func (m *Manager) emit(subject string, data any) {
	if m.emitter == nil {
		return
	}
	if err := m.emitter.Emit(subject, data); err != nil {
		logger.Warn("Broadcast failed", "subject", subject, "err", err)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
