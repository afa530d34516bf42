package main

import (
	"aftech-backend/database"
	"aftech-backend/models"
	"aftech-backend/services"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const seedFlag = "seed"

var counterInitFlags = map[string]cobraflags.Flag{
	seedFlag: &cobraflags.IntFlag{
		Name:         seedFlag,
		Value:        int(models.DefaultJobCardSeed),
		Usage:        "First job card number to hand out",
		ValidateFunc: positive,
	},
}

func newCounterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Inspect or initialize the job card counter",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the counter row. Fails if it already exists",
		RunE:  counterInitCommand,
	}
	cobraflags.RegisterMap(initCmd, counterInitFlags)

	cmd.AddCommand(initCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the next number to be allocated",
		RunE:  counterCheckCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Exit non-zero unless exactly one counter row exists",
		RunE:  counterCheckCommand,
	})
	return cmd
}

func counterInitCommand(_ *cobra.Command, _ []string) error {
	seed, err := counterInitFlags[seedFlag].GetIntE()
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", seedFlag, err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	counter, err := services.InitCounter(db, int64(seed))
	if err != nil {
		return err
	}
	fmt.Printf("counter initialized at %d\n", counter.CurrentNumber)
	return nil
}

func counterCheckCommand(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	counter, err := services.CheckCounter(db)
	if err != nil {
		return err
	}
	fmt.Printf("next job card number: %d\n", counter.CurrentNumber)
	return nil
}
