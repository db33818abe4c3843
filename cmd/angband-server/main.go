// Package main is the entry point for the authoritative game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/philyawj/angband/internal/config"
	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/events"
	"github.com/philyawj/angband/internal/game"
	"github.com/philyawj/angband/internal/infra/storage"
	"github.com/philyawj/angband/internal/network"
	"github.com/philyawj/angband/internal/platform/logger"
	"github.com/philyawj/angband/internal/platform/metrics"
	"github.com/philyawj/angband/internal/platform/optimization"
	"github.com/philyawj/angband/internal/sim"
)

const gameID = "GAME_1"

func main() {
	var (
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		dbPath     = flag.String("db", "angband.db", "SQLite database path")
		configPath = flag.String("config", "", "tuning config YAML (optional)")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "world seed")
	)
	flag.Parse()

	log.Println("[ANGBAND-SERVER] Initializing authoritative game server...")

	appLogger := logger.NewLogger()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			appLogger.Error("Failed to load config %s: %v", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		appLogger.Error("Invalid tuning config: %v", err)
		os.Exit(1)
	}

	appLogger.Info("Initializing SQLite database %q...", *dbPath)
	db, err := storage.InitSQLite(*dbPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: %v", err)
		os.Exit(1)
	}
	optimization.DefaultConfig().ApplyDB(db)

	eventRepo := storage.NewSQLiteEventRepository(db)
	worldRepo := storage.NewSQLiteWorldRepository(db)
	snapRepo := storage.NewSQLiteSnapshotRepository(db)

	eventLog := events.NewEventLog(storage.NewEventPersister(eventRepo, gameID))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Bootstrapping world...")
	world := sim.NewWorld(cfg, *seed)

	// Resume a stored game when one exists.
	if state, err := worldRepo.Get(ctx, gameID); err != nil {
		appLogger.Error("Failed to query world state: %v", err)
		os.Exit(1)
	} else if state != nil {
		world.Turn = state.Turn
		world.DayCount = state.DayCount
		appLogger.Info("Restored world clock: turn %d, day %d", state.Turn, state.DayCount)
	}

	player := actor.NewPlayer("P001", "Adventurer")
	if snap, err := snapRepo.GetByPlayerID(ctx, player.ID); err != nil {
		appLogger.Error("Failed to query player snapshot: %v", err)
		os.Exit(1)
	} else if snap != nil {
		restored := &actor.Player{}
		if err := json.Unmarshal(snap.Sheet, restored); err != nil {
			appLogger.Error("Corrupt player snapshot, starting fresh: %v", err)
		} else {
			player = restored
			appLogger.Info("Restored player %s at depth %d", player.Name, player.Depth)
		}
	}

	queue := sim.NewCommandBuffer()
	engine := sim.NewEngine(world, player, nil, sim.Collaborators{
		Monsters: game.NewRoster(world, appLogger, nil),
		Commands: queue,
		Effects:  game.NewResolver(world, appLogger),
		Levels:   game.NewCaveBuilder(world, appLogger, 66, 22),
	}, eventLog, appLogger)

	session := network.NewSession(engine, queue)

	// Automated state backup routine.
	go func() {
		backupTicker := time.NewTicker(5 * time.Second)
		defer backupTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-backupTicker.C:
				// The engine mutates player and world in place; only the
				// locked snapshot is safe to read from here.
				snap, err := session.Snapshot()
				if err != nil {
					appLogger.Error("Backup snapshot failed: %v", err)
					continue
				}
				_ = worldRepo.Upsert(ctx, storage.WorldState{
					GameID:   gameID,
					Turn:     snap.Turn,
					DayCount: snap.DayCount,
					Seed:     *seed,
				})
				_ = snapRepo.Upsert(ctx, storage.PlayerSnapshot{
					PlayerID: snap.PlayerID,
					GameID:   gameID,
					Name:     snap.PlayerName,
					Depth:    snap.Depth,
					Sheet:    snap.Sheet,
				})
			}
		}
	}()

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(appLogger)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, eventLog)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, session, w, r, appLogger)
	})
	mux.HandleFunc("/metrics", metrics.Handler())
	mux.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())

	network.NewReplayHandler(eventLog, appLogger).RegisterRoutes(mux)
	network.NewAPIBridge(session, appLogger).RegisterRoutes(mux)

	go func() {
		log.Printf("[ANGBAND-SERVER] HTTP API & WS server listening on %s", *addr)
		if err := http.ListenAndServe(*addr, mux); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[ANGBAND-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[ANGBAND-SERVER] Shutting down...")
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for local frontends
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, session *network.Session, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection")
		return
	}

	client := network.NewClient(hub, session, conn)
	client.Register()

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.WritePump()
	go client.ReadPump()
}
