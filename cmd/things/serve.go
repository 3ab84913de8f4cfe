package main

import (
	"github.com/pbaille/things/internal/api"
	"github.com/pbaille/things/internal/todos"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			server := api.New(todos.NewService(s, logger), addr, logger)
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (default from config)")
	return cmd
}
