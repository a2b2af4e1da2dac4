package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	ctopics "github.com/radieske/bet-loto-web/pkg/contracts/topics"
)

// DefaultAPIBase é usado quando API_BASE não está definido
const DefaultAPIBase = "http://localhost:8000"

// Config centraliza variáveis de ambiente e parâmetros de execução do web-app
// Inclui a URL do backend, conexões opcionais, tópicos e portas
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string
	LogLevel    string // vazio: padrão do ambiente

	// Backend externo: única fonte da URL base para os dois fluxos
	APIBase string

	RedisAddr    string // vazio desativa o cache de partidas
	KafkaBrokers string // "a:9092,b:9092"; vazio desativa a publicação

	// Tópicos
	TopicBetSubmitted    string
	TopicTicketSubmitted string

	MatchesCacheTTL time.Duration
	SessionTTL      time.Duration

	// Regras do bilhete
	LotoRequireDistinct bool
	LotoEnforceRanges   bool

	// Limite de envios por sessão
	SubmitRatePerSec float64
	SubmitBurst      int

	HTTPPort    string
	MetricsPort string
}

// Load carrega variáveis de ambiente e define defaults
func Load() Config {
	return Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "web-app"),
		LogLevel:    getEnv("LOG_LEVEL", ""),

		APIBase: apiBase(),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),

		TopicBetSubmitted:    getEnv("KAFKA_TOPIC_BET_SUBMITTED", ctopics.BetSubmitted),
		TopicTicketSubmitted: getEnv("KAFKA_TOPIC_LOTO_SUBMITTED", ctopics.TicketSubmitted),

		MatchesCacheTTL: getDuration("MATCHES_CACHE_TTL", 30*time.Second),
		SessionTTL:      getDuration("SESSION_TTL", 30*time.Minute),

		LotoRequireDistinct: getBool("LOTO_REQUIRE_DISTINCT", false),
		LotoEnforceRanges:   getBool("LOTO_ENFORCE_RANGES", true),

		SubmitRatePerSec: getFloat("SUBMIT_RATE_PER_SEC", 1),
		SubmitBurst:      getInt("SUBMIT_BURST", 3),

		HTTPPort:    getEnv("HTTP_PORT", "8090"),
		MetricsPort: getEnv("METRICS_PORT", "9100"),
	}
}

// apiBase resolve a URL do backend: API_BASE tem precedência, vazio cai no default
func apiBase() string {
	v := strings.TrimSpace(getEnv("API_BASE", ""))
	if v == "" {
		v = DefaultAPIBase
	}
	return strings.TrimSuffix(v, "/")
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}
