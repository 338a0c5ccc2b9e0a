package cmd

import (
	"context"
	"fmt"

	"github.com/emrgen/wiki/internal/config"
	"github.com/emrgen/wiki/internal/server"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:     "serve",
		Short:   "start the wiki api server",
		Example: "wiki serve --port 4001",
		Run: func(cmd *cobra.Command, args []string) {
			server.NewServer(port).Start()
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "http port (defaults to http.port)")

	return command
}

func initAdminCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "initadmin",
		Short: "create the admin user from WIKI_ADMIN_USERNAME and WIKI_ADMIN_PASSWORD",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
				color.Red("missing: WIKI_ADMIN_USERNAME and WIKI_ADMIN_PASSWORD")
				return
			}

			app, closeApp, err := localApp(cfg)
			if err != nil {
				color.Red("error: %v", err)
				return
			}
			defer closeApp()

			created, err := app.Services.Users.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword)
			if err != nil {
				color.Red("error creating admin user: %v", err)
				return
			}

			if created {
				fmt.Println("New admin user created!")
			} else {
				fmt.Println("Admin user already exists. Exiting!")
			}
		},
	}

	return command
}

// localApp wires the services against the configured database and storage
// for commands that do not go through a server.
func localApp(cfg *config.Config) (*server.App, func(), error) {
	config.ConfigureLogging(cfg)

	db, err := config.OpenDb(cfg)
	if err != nil {
		return nil, nil, err
	}

	app, err := server.NewApp(cfg, db)
	if err != nil {
		return nil, nil, err
	}

	return app, func() { _ = app.Close() }, nil
}
