// Package cmd - vehicles command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/autoparts-eu/brakecat/internal/importer"
)

// vehiclesCmd represents the vehicles command
var vehiclesCmd = &cobra.Command{
	Use:   "vehicles [dir]",
	Short: "Import the vehicle reference data CSVs",
	Long: `Import brand.csv, model.csv, type.csv, bikeDisplacement.csv and
bikeYear.csv from a directory, upserting every record by its external id.

The whole set loads inside one transaction, so a re-import after a failed
run starts from a consistent state.

Examples:
  brakecat vehicles ./reference-data`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVehicles,
}

func runVehicles(cmd *cobra.Command, args []string) error {
	if dryRun {
		return fmt.Errorf("--dry-run is not supported for the vehicles import")
	}
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	db, _, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	startedAt := time.Now().UTC()
	sum, err := importer.ImportVehicleData(db.DB, dir)
	if err != nil {
		return err
	}
	recordRun(db, "vehicles", "reference", dir, startedAt, sum)
	return nil
}
