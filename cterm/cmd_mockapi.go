package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/contactsTUI/internal/mockapi"
)

var mockAPIAddr string

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Serve an in-memory contact service for local use",
	Long: `Starts a small HTTP server that answers like the public placeholder
users API, seeded with ten sample contacts. Point cterm at it with
--api-url http://localhost:8080/users.`,
	RunE: runMockAPI,
}

func init() {
	mockAPICmd.Flags().StringVar(&mockAPIAddr, "addr", ":8080", "Listen address")
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mockapi.NewServer(mockapi.SampleUsers(), logger)
	httpServer := &http.Server{
		Addr:              mockAPIAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	logger.Info("mock contact service listening", zap.String("addr", mockAPIAddr), zap.String("path", mockapi.BasePath))
	fmt.Fprintf(cmd.OutOrStdout(), "Serving contacts on %s%s (Ctrl+C to stop)\n", mockAPIAddr, mockapi.BasePath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock contact service failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Received shutdown signal", zap.Int("contacts", len(server.Users())))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
