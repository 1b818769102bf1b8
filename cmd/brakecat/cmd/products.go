// Package cmd - products command
package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/autoparts-eu/brakecat/internal/importer"
	"github.com/autoparts-eu/brakecat/internal/models"
)

// productsCmd represents the products command
var productsCmd = &cobra.Command{
	Use:   "products <type> <file.csv>",
	Short: "Import a product CSV for one product type",
	Long: `Import a supplier CSV into one product table.

The type argument is a registered product type tag. Rows are matched by
product code: new codes are created, existing codes are updated field by
field, and rows identical to the stored record are skipped.

Examples:
  brakecat products disc discs.csv
  brakecat products wheel_cylinder cylinders.csv --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runProducts,
}

func runProducts(cmd *cobra.Command, args []string) error {
	pt := models.ProductTypeByTag(args[0])
	if pt == nil {
		return fmt.Errorf("unknown product type %q (known: %s)", args[0], strings.Join(productTags(), ", "))
	}
	path := args[1]

	db, _, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	startedAt := time.Now().UTC()
	sum, err := importer.ImportProductsFile(db.DB, pt, path, importer.ProductOptions{DryRun: dryRun})
	if err != nil {
		return err
	}
	recordRun(db, "products", pt.Tag, path, startedAt, sum)
	return nil
}

func productTags() []string {
	tags := make([]string, 0, len(models.ProductTypes))
	for _, pt := range models.ProductTypes {
		tags = append(tags, pt.Tag)
	}
	sort.Strings(tags)
	return tags
}
