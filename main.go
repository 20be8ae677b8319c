package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ticket-triage/server/internal/chat"
	"github.com/ticket-triage/server/internal/core"
	"github.com/ticket-triage/server/internal/triage/graph"
	"github.com/ticket-triage/server/internal/triage/model"
	"github.com/ticket-triage/server/internal/triage/repo"
	"github.com/ticket-triage/server/internal/triage/store"
	logx "github.com/ticket-triage/server/pkg/logger"
	pkgredis "github.com/ticket-triage/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the triage service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Triage
	Data    model.DataConfig
	Session model.SessionConfig
}

func main() {
	ticket := flag.String("ticket", "", "run a single ticket through triage and print the result as JSON")
	orderID := flag.String("order", "", "optional order id to pass alongside -ticket")
	serve := flag.String("serve", "", "serve the triage HTTP API on this address (e.g. :8080)")
	flag.Parse()

	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	// Lookup tables load once at startup; malformed data aborts here, never
	// at triage time.
	st, err := store.Load(cfg.Data.Dir)
	if err != nil {
		logx.Fatal().Err(err).Str("dir", cfg.Data.Dir).Msg("Failed to load lookup store")
	}

	runner, err := graph.BuildTriageGraph(ctx, graph.Config{Store: st})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build triage graph")
	}

	switch {
	case *ticket != "":
		runBatch(ctx, runner, *ticket, *orderID)
	case *serve != "":
		runServe(runner, *serve)
	default:
		runChat(ctx, runner, st, cfg)
	}
}

// runBatch triages one ticket and prints the structured result.
func runBatch(ctx context.Context, runner graph.Runner, ticketText, orderID string) {
	res, err := runner.Triage(ctx, model.TicketInput{TicketText: ticketText, OrderID: orderID})
	if err != nil {
		logx.Fatal().Err(err).Msg("Triage failed")
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(b))
}

// runChat reads tickets from stdin and renders the triage breakdown per turn,
// keeping the session transcript in Redis (or in memory when Redis is down).
func runChat(ctx context.Context, runner graph.Runner, st *store.Store, cfg AppConfig) {
	transcripts := newTranscriptRepo(cfg)
	manager := chat.NewTranscriptManager(transcripts, cfg.Session)
	sessionID := fmt.Sprintf("session-%d", time.Now().Unix())

	fmt.Println("Ticket Triage Chat")
	fmt.Println("Sample order IDs you can mention:")
	for i, o := range st.Orders() {
		if i >= 6 {
			break
		}
		fmt.Printf("  %s  %s\n", o.OrderID, o.CustomerName)
	}
	fmt.Println(`Describe your issue (e.g. "my order ORD1001 arrived broken"). Ctrl-D to exit.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := manager.RecordTicket(ctx, sessionID, line); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Msg("Failed to record ticket in transcript")
		}

		res, err := runner.Triage(ctx, model.TicketInput{TicketText: line})
		if err != nil {
			logx.Error().Err(err).Msg("Triage failed")
			continue
		}

		fmt.Println(chat.FormatResult(res))
		fmt.Println("──────────────────────────────────────────────")

		if err := manager.RecordReply(ctx, sessionID, res.ReplyText); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Msg("Failed to record reply in transcript")
		}
	}
}

// newTranscriptRepo connects to Redis for session transcripts, falling back
// to the in-memory repository so the chat surface works without one.
func newTranscriptRepo(cfg AppConfig) model.TranscriptRepository {
	ttl, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", cfg.Session.TTL).Msg("Invalid SESSION_TTL")
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Warn().Err(err).Msg("Redis unavailable, keeping session transcripts in memory")
		return repo.NewMemoryTranscriptRepository()
	}
	return repo.NewRedisTranscriptRepository(rdb, ttl)
}

// runServe mounts the triage endpoint on a chi router.
func runServe(runner graph.Runner, addr string) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/triage", triageHandler(runner))

	logx.Info().Str("addr", addr).Msg("Serving triage API")
	if err := http.ListenAndServe(addr, r); err != nil {
		logx.Fatal().Err(err).Msg("HTTP server failed")
	}
}

func triageHandler(runner graph.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.TicketInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if strings.TrimSpace(req.TicketText) == "" {
			writeError(w, http.StatusBadRequest, "ticket_text is required")
			return
		}

		res, err := runner.Triage(r.Context(), req)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
