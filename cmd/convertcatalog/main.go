package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"camelia-boutique/service"
)

const (
	// Published spreadsheet holding the product rows
	defaultSheetID = "1vQyFabmQYX0kvQmUjCrX0PZiBLv3m2HcMv4c6kTnBh8"
	// Where the storefront build picks the catalog up
	defaultOutputPath = "data/catalogue.json"

	defaultOutputDir    = "public/images/catalog"
	defaultPublicPrefix = "/images/catalog"
)

// convertcatalog converts the product spreadsheet into the catalog JSON
// file, generating resized image derivatives along the way.
//
// Usage: convertcatalog [sheetID] [outputPath]
func main() {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		}
	}

	sheetID := defaultSheetID
	outputPath := defaultOutputPath
	if len(os.Args) > 1 && os.Args[1] != "" {
		sheetID = os.Args[1]
	}
	if len(os.Args) > 2 && os.Args[2] != "" {
		outputPath = os.Args[2]
	}

	outputDir := os.Getenv("IMAGE_OUTPUT_DIR")
	if outputDir == "" {
		outputDir = defaultOutputDir
	}

	log.Printf("🔄 Converting spreadsheet %s -> %s", sheetID, outputPath)

	headers, rows, err := service.FetchRows(sheetID)
	if err != nil {
		log.Fatalf("❌ Failed to fetch spreadsheet: %v", err)
	}
	log.Printf("📦 %d rows fetched (%d columns)", len(rows), len(headers))

	catalogService := service.NewCatalogService(
		service.NewNormalizer(),
		service.NewImageOptimizer(outputDir, defaultPublicPrefix),
	)

	stats, err := catalogService.Run(context.Background(), headers, rows, outputPath)
	if err != nil {
		log.Fatalf("❌ Catalog conversion failed: %v", err)
	}

	log.Printf("✅ Done: %d products written, %d rows skipped of %d", stats.Built, stats.Skipped, stats.Total)
}
