// Command pawvilla is the management CLI: run the API server, seed the
// database, or inspect the route table.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/app/routes"
	"github.com/pawvilla/pawvilla/config"
	"github.com/pawvilla/pawvilla/database/seeders"
	"github.com/pawvilla/pawvilla/internal/server"
	"github.com/pawvilla/pawvilla/pkg/database"
	"github.com/pawvilla/pawvilla/pkg/router"
	"github.com/pawvilla/pawvilla/pkg/ws"
)

func main() {
	root := &cobra.Command{
		Use:   "pawvilla",
		Short: "PawVilla pet care API",
	}
	root.AddCommand(serveCmd(), seedCmd(), routeListCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return server.Run()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with the default doctors and products",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.Load(); err != nil {
				fmt.Fprintln(os.Stderr, "no .env file loaded")
			}
			if err := database.Connect(); err != nil {
				return err
			}
			defer database.Disconnect()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			seeders.Run(ctx, seeders.All(
				repositories.NewDoctorRepository(),
				repositories.NewProductRepository(),
			))
			return nil
		},
	}
}

func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "Print every mounted route",
		Run: func(_ *cobra.Command, _ []string) {
			r := router.New()
			routes.Register(r, routes.Deps{Hub: ws.NewHub()})
			for _, info := range r.Routes() {
				fmt.Printf("%-7s %-40s %s\n", info.Method, info.Path, info.Name)
			}
		},
	}
}
