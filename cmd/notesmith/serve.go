// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/notesmith/internal/server"
	"github.com/meshintel/notesmith/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload form and conversion endpoint over HTTP",
	Long: `Serve starts an HTTP server with a browser upload form at / and a
conversion endpoint at /convert. Each upload runs as its own job with its
own citation engine and working directory; stale working directories from
crashed processes are swept at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		log := newLogger()
		defer log.Sync() //nolint:errcheck

		sources, cache := buildSources(log)
		if cache != nil {
			defer cache.Close() //nolint:errcheck
		}

		cfg := types.Config{
			Lookup: lookupConfig(),
			Convert: types.ConvertConfig{
				WorkDir: viper.GetString("convert.work_dir"),
			},
			Server: types.ServerConfig{
				Addr:           addr,
				MaxUploadBytes: viper.GetInt64("server.max_upload_bytes"),
			},
		}

		s := server.New(cfg, sources, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			s.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		return s.Start()
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")

	rootCmd.AddCommand(serveCmd)
}
