// Package main provides the plan command, which runs the route planning
// pipeline for one prompt and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/application"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/bootstrap"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/config"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	Version = "0.1.0"
	appName = "plan"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		timeout time.Duration
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "plan <prompt>",
		Short: "Plan a multi-stop route from a natural-language request",
		Long: `Plan turns a request such as "From UTSC to the nearest coffee shop and back"
into an ordered list of stops and one driving route through them.

Configuration is read from the environment (and a .env file if present):
GOOGLE_MAPS_API_KEY and GEMINI_API_KEY are required.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return fmt.Errorf("prompt must not be blank")
			}
			return run(cmd.Context(), cmd.OutOrStdout(), prompt, timeout, publish)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Upper bound for the whole planning run")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the route event to Kafka when Kafka is enabled")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func run(ctx context.Context, out io.Writer, prompt string, timeout time.Duration, publish bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "route-planner-cli")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	planner, err := bootstrap.NewPlanner(ctx, cfg, bootstrap.Options{PublishEvents: publish}, log)
	if err != nil {
		return err
	}
	defer func() { _ = planner.Close() }()

	requestID := uuid.New().String()
	log.Debug("planning route", zap.String("request_id", requestID))

	result := planner.Service.PlanRoute(ctx, application.PlanRouteRequest{
		Prompt:    prompt,
		RequestID: requestID,
	})

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
