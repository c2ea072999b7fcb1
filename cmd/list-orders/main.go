package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/config"
	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/repository/postgres"
)

func main() {
	statusFlag := flag.String("status", "", "filter by order status")
	limitFlag := flag.Int("limit", 20, "maximum number of orders to show")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	var orders []*domain.Order
	if *statusFlag != "" {
		status := domain.OrderStatus(*statusFlag)
		if !status.IsValid() {
			fmt.Fprintf(os.Stderr, "Unknown status %q\n", *statusFlag)
			os.Exit(1)
		}
		orders, err = repos.Order.ListByStatus(ctx, status, *limitFlag, 0)
	} else {
		orders, err = repos.Order.List(ctx, *limitFlag, 0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	if len(orders) == 0 {
		fmt.Println("No orders found")
		return
	}

	fmt.Printf("%-36s  %-10s  %-20s  %-8s  %s\n", "ID", "STATUS", "CUSTOMER", "TOTAL", "CREATED")
	for _, o := range orders {
		fmt.Printf("%-36s  %-10s  %-20s  %8.2f  %s\n",
			o.ID, o.Status, o.Customer.Name, o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
	}
}
