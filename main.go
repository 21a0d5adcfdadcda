package main

import (
	"net/http"

	"go.uber.org/zap"

	"secrethitler/internal/bot"
	"secrethitler/internal/config"
	"secrethitler/internal/handlers"
	"secrethitler/internal/store"
	"secrethitler/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	gameStore := store.NewGameStore()
	hub := ws.NewHub(gameStore, log, cfg.AllowedOrigins)
	runner := bot.NewRunner(bot.RoleAware{}, cfg.BotDelay, log)
	runner.OnUpdate = hub.BroadcastState
	hub.OnMutate = runner.Kick

	ctx := &handlers.Context{
		GameStore: gameStore,
		Cfg:       cfg,
		Log:       log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/create-game", ctx.HandleCreateGame)
	mux.HandleFunc("POST /api/create-test-game", ctx.HandleCreateTestGame)
	mux.HandleFunc("GET /api/game/{id}", ctx.HandleGetGame)
	mux.HandleFunc("GET /api/game/{id}/qr", ctx.HandleGameQR)
	mux.HandleFunc("GET /api/server-info", ctx.HandleServerInfo)
	mux.HandleFunc("PUT /api/player/{name}/profile", ctx.HandleUpdateProfile)
	mux.HandleFunc("POST /api/upload/{kind}", ctx.HandleUpload)
	mux.HandleFunc("GET /ws/{gameID}/{playerName}", hub.ServeWS)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	log.Infow("server starting", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
