package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/api/middleware"
	"github.com/kehilianouar/gymdada-api/internal/config"
	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/repository/postgres"
)

func main() {
	nameFlag := flag.String("name", "", "Operator display name")
	apiKeyFlag := flag.String("api-key", "", "API key for this operator (save it; it cannot be retrieved later)")
	flag.Parse()

	name := strings.TrimSpace(*nameFlag)
	apiKey := strings.TrimSpace(*apiKeyFlag)
	if name == "" || apiKey == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/create-admin-key/main.go --name \"Operator Name\" --api-key \"your-api-key\"")
		os.Exit(1)
	}

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Hash the API key; only the bcrypt hash is stored
	keyHash, err := middleware.HashAPIKey(apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	key := &domain.AdminKey{
		Name:     name,
		KeyHash:  keyHash,
		IsActive: true,
	}
	if err := repos.AdminKey.Create(context.Background(), key); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin key created successfully!\n\n")
	fmt.Printf("Key ID: %s\n", key.ID.String())
	fmt.Printf("Name: %s\n", key.Name)
	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Printf("\nIMPORTANT: Save this API key securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse it in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", apiKey)
}
