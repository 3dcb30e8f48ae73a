// Package main is the entry point for the life simulation server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/simslyfe/server/internal/catalog"
	"github.com/simslyfe/server/internal/config"
	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/domain/persona"
	"github.com/simslyfe/server/internal/engine"
	"github.com/simslyfe/server/internal/events"
	"github.com/simslyfe/server/internal/infra/storage"
	"github.com/simslyfe/server/internal/network"
	"github.com/simslyfe/server/internal/platform/logger"
	"github.com/simslyfe/server/internal/platform/metrics"
)

// slotPersister binds the engine's audit sink to one save slot's rows.
type slotPersister struct {
	repo   storage.EventRepository
	slotID string
}

func (p *slotPersister) Append(entry events.Entry) error {
	return p.repo.Append(context.Background(), p.slotID, entry)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	appLogger, err := logger.New(cfg.LogMode)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("initializing SQLite database", "path", cfg.DBPath)
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("failed to initialize SQLite", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	saveRepo := storage.NewSQLiteSaveRepository(db)
	eventRepo := storage.NewSQLiteEventRepository(db)
	auditLog := events.NewLog(&slotPersister{repo: eventRepo, slotID: cfg.AutosaveSlot})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("bootstrapping life store")
	store := engine.NewStore(appLogger, nil)
	store.SetEventSink(auditLog)

	// Recover the previous life from the autosave slot, or start fresh.
	if saved, err := saveRepo.Get(ctx, cfg.AutosaveSlot); err != nil {
		appLogger.Error("failed to load autosave slot", "error", err)
	} else if saved != nil {
		store.Restore(*saved)
		appLogger.Info("restored life from autosave", "age", saved.Age)
	} else {
		store.SetProfile(persona.NewProfile("Alex", "Doe", cfg.DefaultCountry))
		appLogger.Info("starting a new life", "country", cfg.DefaultCountry)
	}

	if cfg.Autosave {
		store.SetAutosaveFunc(func(s life.State) error {
			return saveRepo.Upsert(ctx, cfg.AutosaveSlot, "Autosave", s)
		})
	}

	appLogger.Info("bootstrapping WebSocket hub")
	hub := network.NewHub(appLogger, store)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, auditLog)
	store.SetNotifier(hub)

	if cfg.Autoplay {
		autoplay := engine.NewAutoplay(store, appLogger, cfg.AutoplayPace, func(s life.State) {
			hub.BroadcastState(s)
		})
		go autoplay.Start(ctx)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, store.Snapshot())
	})

	mux.HandleFunc("/api/catalog", func(w http.ResponseWriter, r *http.Request) {
		country := r.URL.Query().Get("country")
		if country == "" {
			snapshot := store.Snapshot()
			if snapshot.Profile != nil {
				country = snapshot.Profile.Country
			}
		}
		entry := catalog.Lookup(country)
		writeJSON(w, entry)
	})

	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}
		writeJSON(w, auditLog.Recent(limit))
	})

	mux.HandleFunc("/api/saves", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			slots, err := saveRepo.List(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, slots)
		case http.MethodPost:
			var req struct {
				Name string `json:"name"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid payload", http.StatusBadRequest)
				return
			}
			slotID := uuid.NewString()
			if err := saveRepo.Upsert(r.Context(), slotID, req.Name, store.Snapshot()); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, map[string]string{"slotId": slotID})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/saves/load", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			SlotID string `json:"slotId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		saved, err := saveRepo.Get(r.Context(), req.SlotID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if saved == nil {
			http.Error(w, "unknown slot", http.StatusNotFound)
			return
		}
		store.Restore(*saved)
		hub.BroadcastState(store.Snapshot())
		writeJSON(w, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/saves/delete", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			SlotID string `json:"slotId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if err := saveRepo.Delete(r.Context(), req.SlotID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/metrics", metrics.Handler())
	mux.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())

	server := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		appLogger.Info("HTTP API & WS server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server failed", "error", err)
			cancel()
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests from the app dev server
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade websocket connection", "error", err)
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.WritePump()
	go client.ReadPump()
}
