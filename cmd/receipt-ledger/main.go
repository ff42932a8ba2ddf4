package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/gosher55/receipt-ledger/internal/archive"
	"github.com/gosher55/receipt-ledger/internal/category"
	"github.com/gosher55/receipt-ledger/internal/googleauth"
	"github.com/gosher55/receipt-ledger/internal/ledger"
	"github.com/gosher55/receipt-ledger/internal/receipt"
	"github.com/gosher55/receipt-ledger/internal/scanning"
)

func main() {
	// Load .env before flag parsing so env-var fallbacks see it
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	fs := ff.NewFlagSet("receipt-ledger")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "receipt-ledger.db", "Category database file path")
		scannerType   = fs.StringLong("scanner", "gemini", "Scanner type: 'gemini' or 'ollama'")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, llava-phi3, bakllava, qwen2-vl)")
		spreadsheetID = fs.StringLong("sheet-id", "", "Google Sheets spreadsheet ID for the receipt ledger")
		sheetName     = fs.StringLong("sheet-name", "Sheet1", "Sheet tab name within the spreadsheet")
		driveFolder   = fs.StringLong("drive-folder", "", "Google Drive folder ID for archived receipt images")
		googleToken   = fs.StringLong("google-token", "", "Google OAuth access token (alternative to service account JSON)")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_LEDGER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize category registry
	slog.Info("Initializing category registry...", "path", *dbPath)
	registry, err := category.NewBoltRegistry(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize category registry", "error", err)
		os.Exit(1)
	}
	defer registry.Close()

	// Initialize scanner based on type
	var scanner scanning.Scanner
	switch *scannerType {
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini scanner...", "model", *geminiModel)
		scanner, err = scanning.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama scanner...", "url", *ollamaURL, "model", *ollamaModel)
		scanner, err = scanning.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid scanner type", "type", *scannerType, "valid", "gemini or ollama")
		os.Exit(1)
	}
	defer scanner.Close()

	// Build the shared Google credential once; Drive and Sheets use the same one
	credentials, err := googleauth.LoadCredentials()
	if err != nil {
		slog.Error("Failed to load Google credentials", "error", err)
		os.Exit(1)
	}
	clientOption, err := googleauth.ClientOption(ctx, *googleToken, credentials, archive.Scope, ledger.Scope)
	if err != nil {
		slog.Error("Failed to build Google client credential", "error", err)
		os.Exit(1)
	}

	// Initialize archive
	slog.Info("Initializing Drive archive...", "folder", *driveFolder)
	drive, err := archive.NewDrive(ctx, *driveFolder, clientOption)
	if err != nil {
		slog.Error("Failed to initialize Drive archive", "error", err)
		os.Exit(1)
	}

	// Initialize ledger
	slog.Info("Initializing Sheets ledger...", "spreadsheet", *spreadsheetID, "sheet", *sheetName)
	sheet, err := ledger.NewSheets(ctx, *spreadsheetID, *sheetName, clientOption)
	if err != nil {
		slog.Error("Failed to initialize Sheets ledger", "error", err)
		os.Exit(1)
	}

	// Initialize service
	receiptService := receipt.NewService(drive, sheet, scanner)

	// Initialize server
	basicAuth := receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := receipt.NewServer(receiptService, registry, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
