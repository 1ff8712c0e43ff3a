package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garderobe/internal/api"
	"garderobe/internal/database"
	"garderobe/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"gopkg.in/yaml.v3"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize suggestion model; planning falls back to random picks
	// when no key is configured.
	model, err := initializeLLM(config)
	if err != nil {
		log.Printf("Suggestion model unavailable, AI planning disabled: %v", err)
	}

	// Initialize the remote wardrobe collection
	if err := database.InitDB(config.DatabaseDriver, config.DatabaseDSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Initialize the change-event hub and API server
	hub := notify.NewHub()
	server := api.NewServer(database.GetDB(), model, hub, []byte(config.AuthSecret), config.StateDir)

	// Start metrics server
	go startMetricsServer(*metricsPort)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func loadConfig(path string) (*Config, error) {
	config := &Config{
		DatabaseDriver: "sqlite3",
		DatabaseDSN:    "garderobe.db",
		StateDir:       "state",
		AuthSecret:     os.Getenv("GARDEROBE_AUTH_SECRET"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:          "gpt-4-turbo-preview",
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Defaults plus environment are enough for development setups.
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

func initializeLLM(config *Config) (llms.LLM, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("no API key configured")
	}

	llm, err := openai.New(
		openai.WithModel(config.Model),
		openai.WithToken(config.OpenAIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return llm, nil
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}

// Config represents the application configuration
type Config struct {
	DatabaseDriver string `yaml:"database_driver"`
	DatabaseDSN    string `yaml:"database_dsn"`
	StateDir       string `yaml:"state_dir"`
	AuthSecret     string `yaml:"auth_secret"`
	OpenAIKey      string `yaml:"openai_key"`
	Model          string `yaml:"model"`
}
