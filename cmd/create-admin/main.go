package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"attendance-backend/internal/config"
	"attendance-backend/internal/superadmin"
	"attendance-backend/log"
	"attendance-backend/service"
	"attendance-backend/store/mongostore"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	email := flag.String("email", "", "Email of the admin account")
	password := flag.String("password", "", "Password of the admin account")
	name := flag.String("name", "Administrator", "Display name of the admin account")
	flag.Parse()

	if *email == "" {
		fmt.Println("--email is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Println("--password is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(1)
	}
	log.EnsureLogger(cfg.Production)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		fmt.Println("failed connecting to database:", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	db := mongostore.New(client, cfg.MongoDatabase)
	if err := db.EnsureIndexes(ctx); err != nil {
		fmt.Println("failed creating indexes:", err)
		os.Exit(1)
	}

	deps := service.Deps{Store: db, Location: cfg.Timezone}
	id, created, err := superadmin.EnsureAdmin(ctx, db, service.NewDirectory(deps), *email, *password, *name)
	if err != nil {
		fmt.Println("failed creating admin:", err)
		os.Exit(1)
	}

	if !created {
		fmt.Println("Admin already exists:", id)
		return
	}
	fmt.Println("Admin successfully created:", id)
}
