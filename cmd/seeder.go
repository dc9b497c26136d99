package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/frahmantamala/employee-management/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the holiday cache and sample employees from holidays.json and employees.json.`,
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initializeDependencies()
		if err != nil {
			log.Fatalf("failed to init dependencies: %v", err)
		}
		defer deps.Close()

		ctx := context.Background()

		if clearData {
			// addresses before employees for the foreign key
			if _, err := deps.DB.ExecContext(ctx, "TRUNCATE TABLE addresses, employees, holidays"); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared employees, addresses and holidays")
		}

		seeder := seed.NewSeeder(deps.EmployeeService, deps.HolidayRepo, deps.Logger)

		if err := seedFile(deps.Config.Seed.HolidaysFile, func(f *os.File) (int, error) {
			return seeder.SeedHolidays(ctx, f)
		}); err != nil {
			log.Fatalf("failed to seed holidays: %v", err)
		}

		if err := seedFile(deps.Config.Seed.EmployeesFile, func(f *os.File) (int, error) {
			return seeder.SeedEmployees(ctx, f)
		}); err != nil {
			log.Fatalf("failed to seed employees: %v", err)
		}

		if err := deps.EventBus.Wait(ctx); err != nil {
			log.Printf("event handlers still running: %v", err)
		}
	},
}

func seedFile(path string, load func(f *os.File) (int, error)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := load(f)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d rows from %s\n", n, path)
	return nil
}
