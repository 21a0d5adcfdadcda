// Package handlers implements the JSON HTTP API: game creation,
// spectator state, join QR codes, player profiles and image uploads.
// Realtime play happens over the websocket transport, not here.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"secrethitler/internal/config"
	"secrethitler/internal/store"
)

// Context holds shared application dependencies.
type Context struct {
	GameStore *store.GameStore
	Cfg       *config.Config
	Log       *zap.SugaredLogger
}

func (ctx *Context) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx.Log.Errorw("encoding response", "error", err)
	}
}

func (ctx *Context) writeError(w http.ResponseWriter, status int, message string) {
	ctx.writeJSON(w, status, map[string]string{"error": message})
}
