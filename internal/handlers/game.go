package handlers

import (
	crand "crypto/rand"
	"encoding/json"
	"math/big"
	"math/rand"
	"net/http"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"secrethitler/internal/engine"
	"secrethitler/internal/models"
	"secrethitler/internal/view"
)

var startTime = time.Now()

const (
	gameIDLength = 6

	// gameIDChars excludes ambiguous characters (0/O, 1/I).
	gameIDChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// generateGameID creates a random game ID, preferring crypto/rand.
func generateGameID() string {
	id := make([]byte, gameIDLength)
	for i := range gameIDLength {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(gameIDChars))))
		if err != nil {
			id[i] = gameIDChars[rand.Intn(len(gameIDChars))]
			continue
		}
		id[i] = gameIDChars[n.Int64()]
	}
	return string(id)
}

// HandleCreateGame creates an empty game with the caller as host.
// POST /api/create-game {"host_name": "..."}
func (ctx *Context) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HostName string `json:"host_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.HostName) == "" {
		ctx.writeError(w, http.StatusBadRequest, "host_name is required")
		return
	}
	hostName := strings.TrimSpace(req.HostName)

	g := ctx.newGame(hostName)
	if err := engine.AddPlayer(g, hostName, false); err != nil {
		ctx.writeError(w, http.StatusInternalServerError, "could not seat host")
		return
	}
	ctx.GameStore.Set(g.ID, g)

	ctx.Log.Infow("game created", "game", g.ID, "host", hostName)
	ctx.writeJSON(w, http.StatusCreated, map[string]string{
		"game_id":   g.ID,
		"host_name": hostName,
	})
}

// HandleCreateTestGame creates a game pre-filled with bots so a single
// human can start immediately.
// POST /api/create-test-game {"host_name": "...", "player_count": 7}
func (ctx *Context) HandleCreateTestGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HostName    string `json:"host_name"`
		PlayerCount int    `json:"player_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.HostName) == "" {
		ctx.writeError(w, http.StatusBadRequest, "host_name is required")
		return
	}
	hostName := strings.TrimSpace(req.HostName)

	playerCount := req.PlayerCount
	if playerCount == 0 {
		playerCount = 5
	}
	if playerCount < 5 || playerCount > 10 {
		ctx.writeError(w, http.StatusBadRequest, "player_count must be between 5 and 10")
		return
	}

	g := ctx.newGame(hostName)
	if err := engine.AddPlayer(g, hostName, false); err != nil {
		ctx.writeError(w, http.StatusInternalServerError, "could not seat host")
		return
	}
	botNames := []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Heidi", "Ivan"}
	for i := 0; len(g.Players) < playerCount; i++ {
		if err := engine.AddPlayer(g, botNames[i]+" (bot)", true); err != nil {
			ctx.writeError(w, http.StatusInternalServerError, "could not seat bots")
			return
		}
	}
	ctx.GameStore.Set(g.ID, g)

	ctx.Log.Infow("test game created", "game", g.ID, "host", hostName, "players", playerCount)
	ctx.writeJSON(w, http.StatusCreated, map[string]any{
		"game_id":      g.ID,
		"host_name":    hostName,
		"player_count": playerCount,
	})
}

// HandleGetGame returns the spectator view of a game: no roles, no
// hands. GET /api/game/{id}
func (ctx *Context) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := ctx.GameStore.Get(strings.ToUpper(r.PathValue("id")))
	if !ok {
		ctx.writeError(w, http.StatusNotFound, "game not found")
		return
	}

	g.RLock()
	state := view.Project(g, "")
	g.RUnlock()
	ctx.writeJSON(w, http.StatusOK, state)
}

// HandleGameQR renders a QR code of the game's join link as PNG.
// GET /api/game/{id}/qr
func (ctx *Context) HandleGameQR(w http.ResponseWriter, r *http.Request) {
	id := strings.ToUpper(r.PathValue("id"))
	if !ctx.GameStore.Exists(id) {
		ctx.writeError(w, http.StatusNotFound, "game not found")
		return
	}

	joinURL := strings.TrimRight(ctx.Cfg.PublicBaseURL, "/") + "/game/" + id
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		ctx.Log.Errorw("rendering join QR", "game", id, "error", err)
		ctx.writeError(w, http.StatusInternalServerError, "could not render QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleServerInfo reports basic liveness data.
// GET /api/server-info
func (ctx *Context) HandleServerInfo(w http.ResponseWriter, r *http.Request) {
	ctx.writeJSON(w, http.StatusOK, map[string]any{
		"active_games":   len(ctx.GameStore.All()),
		"uptime_seconds": int(time.Since(startTime).Seconds()),
	})
}

// newGame allocates a game with a fresh unique ID and the caller
// recorded as host.
func (ctx *Context) newGame(hostName string) *models.Game {
	var id string
	for {
		id = generateGameID()
		if !ctx.GameStore.Exists(id) {
			break
		}
	}
	g := models.NewGame(id)
	g.HostName = hostName
	return g
}
