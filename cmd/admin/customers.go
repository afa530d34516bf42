package main

import (
	"aftech-backend/database"
	"aftech-backend/services"
	"context"
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

var customersExportFlags = map[string]cobraflags.Flag{
	regionFlag: &cobraflags.IntFlag{Name: regionFlag, Usage: "Only export customers of this region id", ValidateFunc: notNegative},
}

func newCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Bulk import or export customers as .xlsx",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import FILE",
		Short: "Create or update customers from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  customersImportCommand,
	})

	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write customers to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  customersExportCommand,
	}
	cobraflags.RegisterMap(exportCmd, customersExportFlags)
	cmd.AddCommand(exportCmd)
	return cmd
}

func customersImportCommand(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	result, err := services.NewCustomerImportService(db, nil).ImportExcel(context.Background(), f, 0)
	if err != nil {
		return err
	}
	fmt.Printf("rows: %d created: %d updated: %d skipped: %d errors: %d\n",
		result.TotalRows, result.CreatedCount, result.UpdatedCount, result.SkippedCount, result.ErrorCount)
	for _, msg := range result.SkippedItems {
		fmt.Println("  skipped:", msg)
	}
	for _, msg := range result.ErrorMessages {
		fmt.Println("  error:", msg)
	}
	return nil
}

func customersExportCommand(_ *cobra.Command, args []string) error {
	regionID, err := optionalID(regionFlag, customersExportFlags[regionFlag])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	out, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer out.Close()

	if err := services.NewCustomerImportService(db, nil).Export(context.Background(), regionID, out); err != nil {
		return err
	}
	fmt.Println("customers exported to", args[0])
	return nil
}
