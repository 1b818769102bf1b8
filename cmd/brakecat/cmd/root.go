// Package cmd provides the CLI commands for the brakecat importers.
package cmd

import (
	"encoding/json"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/datatypes"

	"github.com/autoparts-eu/brakecat/internal/config"
	"github.com/autoparts-eu/brakecat/internal/database"
	"github.com/autoparts-eu/brakecat/internal/models"
)

var dryRun bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "brakecat",
	Short: "Import brake catalogue data into the database",
	Long: `brakecat loads supplier CSV exports into the catalogue database.

Product files are upserted by product code, relation files attach products
to vehicles, and the vehicles command loads the brand/model/type reference
data.

Examples:
  brakecat products disc discs.csv
  brakecat products pad pads.csv --dry-run
  brakecat relations rel.csv --prefer first
  brakecat vehicles ./reference-data`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(relationsCmd)
	rootCmd.AddCommand(vehiclesCmd)
}

// connect loads configuration, opens the database and synchronizes the
// schema. Callers must Close the returned handle.
func connect() (*database.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(models.MigrationModels()...); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, cfg, nil
}

// recordRun persists an ImportRun audit row. Dry runs are not recorded.
func recordRun(db *database.DB, kind, target, source string, startedAt time.Time, counters interface{}) {
	if dryRun {
		return
	}
	payload, err := json.Marshal(counters)
	if err != nil {
		log.Printf("⚠️  Could not marshal import counters: %v", err)
		return
	}
	now := time.Now().UTC()
	run := models.ImportRun{
		Kind:        kind,
		Target:      target,
		Source:      source,
		DryRun:      false,
		StartedAt:   startedAt,
		CompletedAt: &now,
		Counters:    datatypes.JSON(payload),
	}
	if err := db.Create(&run).Error; err != nil {
		log.Printf("⚠️  Could not record import run: %v", err)
	}
}
