package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-loto-web/internal/shared/cache"
	"github.com/radieske/bet-loto-web/internal/shared/config"
	skafka "github.com/radieske/bet-loto-web/internal/shared/kafka"
	"github.com/radieske/bet-loto-web/internal/shared/logger"
	"github.com/radieske/bet-loto-web/internal/shared/metrics"
	"github.com/radieske/bet-loto-web/internal/web-app/backend"
	"github.com/radieske/bet-loto-web/internal/web-app/betslip"
	mcache "github.com/radieske/bet-loto-web/internal/web-app/cache"
	httpapi "github.com/radieske/bet-loto-web/internal/web-app/http"
	"github.com/radieske/bet-loto-web/internal/web-app/lottery"
	"github.com/radieske/bet-loto-web/internal/web-app/producer"
	"github.com/radieske/bet-loto-web/internal/web-app/session"
	"github.com/radieske/bet-loto-web/internal/web-app/ws"
)

func main() {
	// .env é opcional: em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis (opcional): cache da lista de partidas
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		rdb, err = cache.ConnectRedis(pingCtx, cfg.RedisAddr)
		cancel()
		if err != nil {
			log.Warn("redis unavailable, matches cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// Kafka (opcional): eventos de submissão
	publ := producer.NewKafkaPublisher(nil, nil)
	if cfg.KafkaBrokers != "" {
		bets := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSubmitted)
		tickets := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTicketSubmitted)
		defer bets.Close()
		defer tickets.Close()
		publ = producer.NewKafkaPublisher(bets, tickets)
	}

	// deps
	api := backend.New(cfg.APIBase)
	matches := mcache.NewMatches(rdb, api, cfg.MatchesCacheTTL, log)

	rules := lottery.DefaultRules()
	rules.RequireDistinct = cfg.LotoRequireDistinct
	rules.EnforceRanges = cfg.LotoEnforceRanges

	store := session.NewStore(
		session.Config{TTL: cfg.SessionTTL, SubmitRatePerSec: cfg.SubmitRatePerSec, SubmitBurst: cfg.SubmitBurst},
		betslip.Deps{Matches: matches, Bets: api, Events: publ, Log: log},
		lottery.Deps{Backend: api, Events: publ, Rules: rules, Log: log},
		log,
	)
	go store.RunSweeper(ctx, time.Minute)

	hub := ws.NewHub(ws.SameOrigin)
	srv := httpapi.NewServer(log, store, hub)
	appSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: srv.Router(),
	}

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if rdb == nil {
			return nil
		}
		return rdb.Ping(ctx).Err()
	})
	log.Info("metrics/health", zap.String("addr", metricsSrv.Addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = appSrv.Shutdown(shutdownCtx)
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	log.Info("web-app listening", zap.String("addr", appSrv.Addr), zap.String("api_base", cfg.APIBase))
	if err := appSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http", zap.Error(err))
	}
}
