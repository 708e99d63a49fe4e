package main

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/jward/qualname/internal/mcpserver"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the qualified_name tool over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.Ctx(cmd.Context())
			s := mcpserver.New(mcpserver.NewHandler(a.fs, a.settings), version)

			logger.Info().Str("version", version).Msg("serving MCP on stdio")
			err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
				return logger.WithContext(ctx)
			}))
			if err != nil {
				return errors.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}
