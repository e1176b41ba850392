package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"familyaid/internal/config"
	"familyaid/internal/database"
	"familyaid/internal/repository"
	"familyaid/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOutput := exportCmd.String("output", "", "Output file path, - for stdout (default: backup_YYYYMMDD_HHMMSS.json)")

	if len(os.Args) < 2 || os.Args[1] != "export" {
		printUsage()
		os.Exit(1)
	}
	exportCmd.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(database.Options{
		Type: cfg.DatabaseType,
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	exportService := service.NewExportService(
		repository.NewUserRepository(db),
		repository.NewFamilyRepository(db),
		repository.NewMemberRepository(db),
		repository.NewRequestRepository(db),
		repository.NewNotificationRepository(db),
	)

	if err := handleExport(ctx, exportService, *exportOutput); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}

func handleExport(ctx context.Context, exportService *service.ExportService, outputPath string) error {
	if outputPath == "-" {
		_, err := exportService.ExportToWriter(ctx, os.Stdout)
		return err
	}

	// Generate default filename if not provided
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	log.Printf("Exporting database to: %s", outputPath)
	data, err := exportService.ExportToWriter(ctx, file)
	if err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	log.Printf("Export complete: %d families, %d members, %d requests, %d notifications, %d users",
		len(data.Families), len(data.Members), len(data.Requests), len(data.Notifications), len(data.Users))
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Family aid data export tool")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  backup export [-output file.json]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Use -output - to write to stdout.")
}
