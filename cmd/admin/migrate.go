package main

import (
	"aftech-backend/config"
	"aftech-backend/database"
	"aftech-backend/migration"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations and seed lookup tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			database.RunSeeders(db)
			fmt.Println("migrations applied")
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rollback",
		Short: "Undo the most recent migration",
		RunE: func(_ *cobra.Command, _ []string) error {
			config.LoadConfig()
			db, err := database.OpenDatabaseConnection()
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := migration.RollbackLast(db); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}
			fmt.Println("last migration rolled back")
			return nil
		},
	})
	return cmd
}
