package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"quill/app/repositories"
	"quill/app/routes"
	"quill/app/services"
	"quill/seed"
	"quill/tasks"
)

const (
	cliVersion = "1.0.0"
	dbPath     = "data/badger"
	listenAddr = ":8080"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "serve":
		serve()
	case "init":
		initDb()
	case "clean":
		clean()
	case "backup":
		backup()
	case "restore":
		if len(os.Args) < 3 {
			fmt.Println("Error: backup file path required for restore")
			os.Exit(1)
		}
		restore(os.Args[2])
	case "seed":
		seedDb()
	case "version":
		fmt.Printf("quill version %s\n", cliVersion)
	case "help":
		printHelp()
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: quill <command> [options]

Commands:
  serve                          Run the blog service on port 8080
  init                           Initialize a new empty database
  clean                          Remove the blog database
  backup                         Create a backup of the database
  restore [file]                 Restore database from backup
  seed                           Populate the database with demo content
  version                        Show version information
  help                           Display this help message
`
	fmt.Println(helpText)
}

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// serve opens the database, starts the maintenance jobs and runs the
// HTTP server until it fails.
func serve() {
	logger := newLogger()
	defer logger.Sync()

	db, err := repositories.Open(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	maintenance := tasks.NewMaintenance(
		repositories.NewBadgerSessionRepository(db),
		db,
		services.SystemClock(),
		logger,
	)
	if err := maintenance.Start(); err != nil {
		logger.Fatal("failed to start maintenance jobs", zap.Error(err))
	}
	defer maintenance.Stop()

	router := routes.SetupRoutes(db, logger)

	logger.Info("blog service listening", zap.String("addr", listenAddr))
	if err := http.ListenAndServe(listenAddr, router); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func initDb() {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create database directory: %v\n", err)
		os.Exit(1)
	}

	db, err := repositories.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("Database initialized successfully")
}

func clean() {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return
	}

	fmt.Print("Are you sure you want to clean the database? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return
	}

	if err := os.RemoveAll(dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to clean database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Database cleaned successfully")
}

func backup() {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return
	}

	backupDir := "data/backups"
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create backup directory: %v\n", err)
		os.Exit(1)
	}

	db, err := repositories.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create backup file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to backup database: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
}

func restore(backupFile string) {
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return
	}

	if _, err := os.Stat(dbPath); err == nil {
		fmt.Print("Existing database found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return
		}
		if err := os.RemoveAll(dbPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remove existing database: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create database directory: %v\n", err)
		os.Exit(1)
	}

	db, err := repositories.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open backup file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := db.Load(f, 4); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore database: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database restored successfully")
}

func seedDb() {
	logger := newLogger()
	defer logger.Sync()

	db, err := repositories.Open(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	svc := routes.BuildServices(
		repositories.NewBadgerUserRepository(db),
		repositories.NewBadgerCategoryRepository(db),
		repositories.NewBadgerLocationRepository(db),
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
		repositories.NewBadgerSessionRepository(db),
		services.SystemClock(),
	)
	if err := seed.Run(svc, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
}
