package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	apiquote "gridquote/pkg/api/quote"
	"gridquote/pkg/core/benchmark"
	corequote "gridquote/pkg/core/quote"
	"gridquote/pkg/core/rates"
	"gridquote/pkg/core/store"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v2"
)

type serverConfig struct {
	Port          int    `yaml:"port"`
	LookupTimeout string `yaml:"lookup_timeout"`
	InstallYear   int    `yaml:"install_year"`
	CacheTTL      string `yaml:"cache_ttl"`
	Overrides     []struct {
		ID       string  `yaml:"id"`
		Value    float64 `yaml:"value"`
		Unit     string  `yaml:"unit"`
		SourceID string  `yaml:"source_id"`
	} `yaml:"benchmark_overrides"`
}

func loadConfig() serverConfig {
	cfg := serverConfig{Port: 8080}
	data, err := os.ReadFile("config/engine.yaml")
	if err != nil {
		fmt.Println("[CONFIG] config/engine.yaml not found, using defaults")
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse config/engine.yaml: %v\n", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadConfig()

	// Benchmark registry, with any config overrides applied before
	// injection. Overrides must carry their own source id.
	reg := benchmark.NewRegistry()
	for _, o := range cfg.Overrides {
		b := benchmark.Benchmark{
			ID: o.ID, Value: o.Value, Unit: o.Unit,
			SourceID: o.SourceID, SourceLabel: benchmark.SourceLabel(o.SourceID),
		}
		if err := reg.Override(b); err != nil {
			fmt.Printf("[WARNING] Skipping benchmark override %s: %v\n", o.ID, err)
		}
	}
	fmt.Printf("[REGISTRY] Loaded %d benchmarks\n", reg.Count())

	// Rate provider: Postgres-backed when DATABASE_URL is set, static
	// tables otherwise.
	var provider rates.Provider = rates.NewStaticProvider()
	ctx := context.Background()
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] DB init failed, using static rates: %v\n", err)
		} else {
			defer store.Close()
			provider = store.NewRateRepo()
			fmt.Println("[STORE] Postgres rate provider active")
		}
	}

	// Memo cache: Redis when configured, in-process map otherwise.
	opts := []corequote.Option{}
	if cfg.InstallYear > 0 {
		opts = append(opts, corequote.WithInstallYear(cfg.InstallYear))
	}
	if cfg.LookupTimeout != "" {
		if d, err := time.ParseDuration(cfg.LookupTimeout); err == nil {
			opts = append(opts, corequote.WithLookupTimeout(d))
		}
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		ttl := 24 * time.Hour
		if cfg.CacheTTL != "" {
			if d, err := time.ParseDuration(cfg.CacheTTL); err == nil {
				ttl = d
			}
		}
		client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
		opts = append(opts, corequote.WithCache(store.NewRedisCache(client, ttl)))
		fmt.Printf("[CACHE] Redis memo cache active (%s, ttl %v)\n", addr, ttl)
	}

	orc := corequote.New(reg, provider, opts...)
	apiquote.InitHandler(reg, provider, orc)

	http.HandleFunc("/api/quote/calculate", apiquote.HandleCalculate)
	http.HandleFunc("/api/quote/rates", apiquote.HandleRates)
	http.HandleFunc("/api/quote/benchmarks", apiquote.HandleBenchmarks)

	fmt.Printf("API server starting on :%d...\n", cfg.Port)
	fmt.Println("  - POST /api/quote/calculate")
	fmt.Println("  - POST /api/quote/rates")
	fmt.Println("  - GET  /api/quote/benchmarks")

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
