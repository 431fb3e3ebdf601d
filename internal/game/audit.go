package game

import (
	"sync"
	"time"

	"github.com/fystack/stream-giveaway/pkg/common/logger"
)

// auditLimit bounds the in-memory trail to the most recent entries.
const auditLimit = 500

type AuditEntry struct {
	TS        int64  `json:"ts"`
	Action    string `json:"action"`
	RoundID   string `json:"roundId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Note      string `json:"note,omitempty"`
}

// AuditTrail is an append-only record of privileged actions and round
// lifecycle events.
type AuditTrail struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func NewAuditTrail() *AuditTrail {
	return &AuditTrail{}
}

func (t *AuditTrail) Append(action, roundID, sessionID, note string) {
	entry := AuditEntry{
		TS:        time.Now().UnixMilli(),
		Action:    action,
		RoundID:   roundID,
		SessionID: sessionID,
		Note:      note,
	}

	t.mu.Lock()
	t.entries = append(t.entries, entry)
	if len(t.entries) > auditLimit {
		t.entries = t.entries[len(t.entries)-auditLimit:]
	}
	t.mu.Unlock()

	logger.Info("[AUDIT] "+action, "roundId", roundID, "note", note)
}

// Entries returns a copy of the trail, oldest first.
func (t *AuditTrail) Entries() []AuditEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]AuditEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
