// Package cmd - relations command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/autoparts-eu/brakecat/internal/importer"
)

var (
	relationPrefer string
	relationBulk   bool
	relationBatch  int
)

// relationsCmd represents the relations command
var relationsCmd = &cobra.Command{
	Use:   "relations <file.csv>",
	Short: "Import a product-to-vehicle relation CSV",
	Long: `Attach products to vehicles from a relation CSV.

Each row names a product code and an external vehicle type_id. A code may
exist in several product tables and a type_id in several vehicle tables;
the --prefer policy decides which matches produce links.

Examples:
  brakecat relations rel.csv
  brakecat relations rel.csv --prefer all
  brakecat relations rel.csv --bulk --batch-size 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runRelations,
}

func init() {
	relationsCmd.Flags().StringVar(&relationPrefer, "prefer", "", "which vehicle variant claims an ambiguous type_id (first, last, all)")
	relationsCmd.Flags().BoolVar(&relationBulk, "bulk", false, "insert links in batches with approximate counters")
	relationsCmd.Flags().IntVar(&relationBatch, "batch-size", 0, "bulk insert batch size")
}

func runRelations(cmd *cobra.Command, args []string) error {
	path := args[0]

	db, cfg, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	prefer := relationPrefer
	if prefer == "" {
		prefer = cfg.Import.RelationPrefer
	}
	switch prefer {
	case importer.PreferFirst, importer.PreferLast, importer.PreferAll:
	default:
		return fmt.Errorf("invalid --prefer value %q (want first, last or all)", prefer)
	}
	batch := relationBatch
	if batch <= 0 {
		batch = cfg.Import.BatchSize
	}

	startedAt := time.Now().UTC()
	sum, err := importer.ImportRelationsFile(db.DB, path, importer.RelationOptions{
		DryRun:    dryRun,
		Prefer:    prefer,
		UseBulk:   relationBulk,
		BatchSize: batch,
	})
	if err != nil {
		return err
	}
	recordRun(db, "relations", prefer, path, startedAt, sum)
	return nil
}
