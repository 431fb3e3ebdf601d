package game

import (
	"github.com/fystack/stream-giveaway/internal/catalog"
	"github.com/fystack/stream-giveaway/internal/outcome"
)

// TileCount is the size of the board; picks consume sequence slots but any
// of the 14 tiles may be chosen.
const TileCount = 14

type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusReady   Status = "READY"
	StatusPlaying Status = "PLAYING"
	StatusEnded   Status = "ENDED"
)

type ForceMode string

const (
	ForceNone      ForceMode = "NONE"
	ForceNextRound ForceMode = "NEXT_ROUND"
	ForceThisRound ForceMode = "THIS_ROUND"
)

// OpenedTile records one revealed tile. openedTiles grows monotonically
// within a round and never shrinks until reset.
type OpenedTile struct {
	TileIndex int             `json:"tileIndex"`
	PickIndex int             `json:"pickIndex"`
	Outcome   outcome.Outcome `json:"outcome"`
	BankAfter int             `json:"bankAfter"`
}

// PublicState is the snapshot broadcast to viewers. It never carries the
// unrevealed sequence.
type PublicState struct {
	RoundID      string             `json:"roundId,omitempty"`
	Winner       string             `json:"winner,omitempty"`
	Bank         int                `json:"bank"`
	MaxWin       int                `json:"maxWin"`
	TargetAvg    int                `json:"targetAvg"`
	MaxPicks     int                `json:"maxPicks"`
	PickIndex    int                `json:"pickIndex"`
	OpenedTiles  map[int]OpenedTile `json:"openedTiles"`
	Status       Status             `json:"status"`
	ForceMode    ForceMode          `json:"forceMode"`
	Profile      outcome.Profile    `json:"profile,omitempty"`
	Skins        []catalog.Skin     `json:"skins"`
	Participants []string           `json:"participants"`
}

// ClickResult is returned to the player who opened a tile.
type ClickResult struct {
	Outcome    outcome.Outcome `json:"outcome"`
	BankAfter  int             `json:"bankAfter"`
	RoundEnded bool            `json:"roundEnded"`
}

// TileRevealedEvent is broadcast after every successful pick.
type TileRevealedEvent struct {
	TileIndex  int             `json:"tileIndex"`
	Outcome    outcome.Outcome `json:"outcome"`
	BankAfter  int             `json:"bankAfter"`
	RoundEnded bool            `json:"roundEnded"`
}

// ParticipantJoinedEvent is broadcast when a viewer enters the giveaway.
type ParticipantJoinedEvent struct {
	Username string `json:"username"`
}
