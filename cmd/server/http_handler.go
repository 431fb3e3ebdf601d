package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fystack/stream-giveaway/internal/catalog"
	"github.com/fystack/stream-giveaway/internal/game"
	"github.com/fystack/stream-giveaway/internal/session"
	"github.com/fystack/stream-giveaway/pkg/common/logger"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type APIErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RebindRequest struct {
	Token string `json:"token"`
}

type ConfigRequest struct {
	TargetAvg *int `json:"targetAvg,omitempty"`
	MaxWin    *int `json:"maxWin,omitempty"`
}

type WinnerRequest struct {
	Username string `json:"username,omitempty"`
}

type WinnerResponse struct {
	Winner string `json:"winner"`
}

type RoundStartResponse struct {
	RoundID string `json:"roundId"`
}

type BankAddRequest struct {
	Amount int `json:"amount"`
}

type BankAddResponse struct {
	Bank int `json:"bank"`
}

type TileClickRequest struct {
	TileIndex int `json:"tileIndex"`
}

type ForceRequest struct {
	Mode     string `json:"mode"`
	Password string `json:"password"`
}

type ForceEnabledResponse struct {
	Enabled bool `json:"enabled"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type GameHTTPHandler struct {
	version  string
	manager  *game.Manager
	sessions *session.Store
	skins    *catalog.Service
}

func NewGameHTTPHandler(
	version string,
	manager *game.Manager,
	sessions *session.Store,
	skins *catalog.Service,
) *GameHTTPHandler {
	return &GameHTTPHandler{
		version:  version,
		manager:  manager,
		sessions: sessions,
		skins:    skins,
	}
}

func (h *GameHTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", h.HandleHealth)
	mux.HandleFunc("/api/state", h.HandleState)
	mux.HandleFunc("/api/skins", h.HandleSkins)
	mux.HandleFunc("/api/force-enabled", h.HandleForceEnabled)
	mux.HandleFunc("/api/audit", h.HandleAudit)
	mux.HandleFunc("/api/login", h.HandleLogin)
	mux.HandleFunc("/api/logout", h.HandleLogout)
	mux.HandleFunc("/api/session/rebind", h.HandleRebind)
	mux.HandleFunc("/api/config", h.HandleConfig)
	mux.HandleFunc("/api/winner", h.HandleWinner)
	mux.HandleFunc("/api/round/start", h.HandleRoundStart)
	mux.HandleFunc("/api/reset", h.HandleReset)
	mux.HandleFunc("/api/participants/clear", h.HandleClearParticipants)
	mux.HandleFunc("/api/bank/add", h.HandleBankAdd)
	mux.HandleFunc("/api/tile/click", h.HandleTileClick)
	mux.HandleFunc("/api/force", h.HandleForce)
	mux.HandleFunc("/api/force/cancel", h.HandleForceCancel)
}

func (h *GameHTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	})
}

func (h *GameHTTPHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.State())
}

func (h *GameHTTPHandler) HandleSkins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.skins.Skins())
}

func (h *GameHTTPHandler) HandleForceEnabled(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ForceEnabledResponse{Enabled: h.manager.ForceEnabled()})
}

// HandleAudit is privileged: a live session or the shared secret as a query
// parameter grants access.
func (h *GameHTTPHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) && !h.sessions.CheckPassword(r.URL.Query().Get("password")) {
		writeErrorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, h.manager.Audit().Entries())
}

func (h *GameHTTPHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.sessions.Login(req.Password, clientID(r))
	if err != nil {
		writeErrorJSON(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *GameHTTPHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.sessions.RemoveByConn(clientID(r))
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *GameHTTPHandler) HandleRebind(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req RebindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.sessions.Rebind(req.Token, clientID(r)) {
		writeErrorJSON(w, http.StatusUnauthorized, "unknown or expired token")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *GameHTTPHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if !h.requirePrivileged(w, r) {
		return
	}

	var req ConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.manager.UpdateConfig(req.TargetAvg, req.MaxWin)
	writeJSON(w, http.StatusOK, h.manager.State())
}

// HandleWinner draws the round winner. A random draw is open to the player
// overlay; naming a specific winner requires a host session.
func (h *GameHTTPHandler) HandleWinner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req WinnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	manual := strings.TrimSpace(req.Username)
	if manual != "" && !h.authorized(r) {
		writeErrorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	winner, err := h.manager.PickWinner(manual)
	if err != nil {
		writeErrorJSON(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, WinnerResponse{Winner: winner})
}

func (h *GameHTTPHandler) HandleRoundStart(w http.ResponseWriter, r *http.Request) {
	if !h.requirePrivileged(w, r) {
		return
	}

	roundID, err := h.manager.StartRound()
	if err != nil {
		writeErrorJSON(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RoundStartResponse{RoundID: roundID})
}

func (h *GameHTTPHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if !h.requirePrivileged(w, r) {
		return
	}
	h.manager.Reset()
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *GameHTTPHandler) HandleClearParticipants(w http.ResponseWriter, r *http.Request) {
	if !h.requirePrivileged(w, r) {
		return
	}
	h.manager.ClearParticipants()
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *GameHTTPHandler) HandleBankAdd(w http.ResponseWriter, r *http.Request) {
	if !h.requirePrivileged(w, r) {
		return
	}

	var req BankAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bank, err := h.manager.AddBank(req.Amount)
	if err != nil {
		writeErrorJSON(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, BankAddResponse{Bank: bank})
}

// HandleTileClick is unauthenticated: the winner's overlay drives the board
// without holding a host session. Every validation happens in the manager.
func (h *GameHTTPHandler) HandleTileClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req TileClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.manager.ClickTile(req.TileIndex)
	if err != nil {
		writeErrorJSON(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *GameHTTPHandler) HandleForce(w http.ResponseWriter, r *http.Request) {
	if !h.requirePrivileged(w, r) {
		return
	}

	var req ForceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.manager.ForceMaxWin(game.ForceMode(req.Mode), req.Password); err != nil {
		writeErrorJSON(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *GameHTTPHandler) HandleForceCancel(w http.ResponseWriter, r *http.Request) {
	if !h.requirePrivileged(w, r) {
		return
	}
	h.manager.CancelForce()
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *GameHTTPHandler) authorized(r *http.Request) bool {
	return h.sessions.Validate(r.Header.Get("X-Session-Token"))
}

func (h *GameHTTPHandler) requirePrivileged(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if !h.authorized(r) {
		writeErrorJSON(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}

// clientID identifies the caller's connection for session binding. Falls back
// to the remote address when the overlay does not send one.
func clientID(r *http.Request) string {
	if id := r.Header.Get("X-Client-ID"); id != "" {
		return id
	}
	return r.RemoteAddr
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidTileIndex),
		errors.Is(err, game.ErrInvalidForceMode),
		errors.Is(err, game.ErrUnknownParticipant):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNoParticipants),
		errors.Is(err, game.ErrNoWinnerSelected),
		errors.Is(err, game.ErrRoundInactive),
		errors.Is(err, game.ErrPicksExhausted),
		errors.Is(err, game.ErrTileAlreadyOpened):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidPassword),
		errors.Is(err, session.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrForceDisabled):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func startHTTPServer(addr, version string, handler *GameHTTPHandler) *http.Server {
	mux := http.NewServeMux()
	handler.Register(mux)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("Game HTTP server started", "addr", addr, "version", version)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed to start", "error", err)
		}
	}()

	return server
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "status", statusCode, "err", err)
	}
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIErrorResponse{
		Status:    "error",
		Error:     message,
		Timestamp: time.Now().UTC(),
	})
}
