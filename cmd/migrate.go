package cmd

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"atelier.GO/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply database migrations (MySQL; demo SQLite mode auto-migrates on serve)",
	Run: func(cmd *cobra.Command, args []string) {
		if !config.UsingMySQL() {
			fmt.Println("No MySQL configured; demo SQLite mode migrates automatically on serve.")
			return
		}
		dsn := os.Getenv("MYSQL_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s",
				os.Getenv("MYSQL_USER"), os.Getenv("MYSQL_PASS"),
				os.Getenv("MYSQL_HOST"), config.GetEnv("MYSQL_PORT", "3306"), os.Getenv("MYSQL_DB"))
		}

		src, err := iofs.New(migrationsFS, "migrations")
		if err != nil {
			fmt.Printf("Load migrations: %v\n", err)
			os.Exit(1)
		}
		m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+dsn)
		if err != nil {
			fmt.Printf("Migrate init: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()

		if migrateDown {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No pending migrations.")
			return
		}
		if err != nil {
			fmt.Printf("Migrate: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back all migrations")
	rootCmd.AddCommand(migrateCmd)
}
