package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkadlec/rollcall/internal/config"
	"github.com/tkadlec/rollcall/internal/detect"
	"github.com/tkadlec/rollcall/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the rollcall web server. The browser UI lets an operator upload a
roster and a photo, detect faces, click each box to assign a student, and
download or save the attendance report.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")

	cfg := config.Load()

	// The server is still useful without a detector (roster search, manual
	// report download), so a missing cascade is a warning, not a failure.
	detector, err := detect.New(cfg)
	if err != nil {
		fmt.Printf("Warning: face detector unavailable: %v\n", err)
		fmt.Printf("Detection requests will be rejected until it is configured.\n")
		detector = nil
	} else {
		fmt.Printf("Face detector ready (%s backend)\n", detector.Name())
	}

	server := web.NewServer(cfg, port, host, detector)

	// Run the server in a goroutine so we can wait for shutdown signals.
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		fmt.Printf("Received signal %v, shutting down...\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
