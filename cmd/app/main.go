package main

import (
	"flag"
	"log"
	"os"

	"CloudLab/internal/di"
	"CloudLab/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s cache=%s alerts=%s", cfg.Environment, cfg.Cache.Backend, cfg.Alerts.Backend)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	switch cfg.Alerts.Backend {
	case "clickhouse":
		log.Printf("clickhouse: connected and schema ready - db: %s", cfg.ClickHouse.Database)
	case "kafka":
		log.Printf("kafka: brokers=%v topic=%s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
