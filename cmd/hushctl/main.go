// Command hushctl is a small client for a running HUSH backend. It can
// submit a single update, run a multi-device simulation and print the
// dashboard series or the current global model.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hush-backend/internal/client"
)

type rootConfig struct {
	Server   string
	Timeout  time.Duration
	LogLevel string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfg rootConfig

	cmd := &cobra.Command{
		Use:   "hushctl",
		Short: "Client for the HUSH federated learning backend",
		Example: `  # Send one update
  hushctl submit --user-id anon-12345 --text 0.7 --typing 0.2 --voice 0.1

  # Simulate 20 devices over 5 rounds
  hushctl simulate --clients 20 --rounds 5

  # Show the dashboard series
  hushctl dashboard`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = log.InfoLevel
			}
			log.SetLevel(level)
		},
	}

	cmd.PersistentFlags().StringVarP(&cfg.Server, "server", "s", envOr("HUSH_SERVER", "http://localhost:8000"), "backend base URL")
	cmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "request timeout")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "logging level")

	newClient := func() *client.Client { return client.New(cfg.Server, cfg.Timeout) }

	cmd.AddCommand(
		newSubmitCommand(newClient),
		newSimulateCommand(newClient),
		newDashboardCommand(newClient),
		newModelCommand(newClient),
	)
	return cmd
}

func newSubmitCommand(newClient func() *client.Client) *cobra.Command {
	var (
		userID              string
		text, typing, voice float64
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one feature attribution update",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().SubmitUpdate(cmd.Context(), userID, map[string]float64{
				"text":   text,
				"typing": typing,
				"voice":  voice,
			})
			if err != nil {
				return err
			}
			p := resp.NewDataPoint
			fmt.Fprintf(cmd.OutOrStdout(), "%s: point %d at %s (text=%.4f typing=%.4f voice=%.4f, n=%d)\n",
				resp.Status, p.ID, p.Timestamp, p.AvgTextImportance, p.AvgTypingImportance, p.AvgVoiceImportance, p.UpdateCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user-id", "u", "", "anonymous client identifier")
	cmd.Flags().Float64Var(&text, "text", 0, "text attribution")
	cmd.Flags().Float64Var(&typing, "typing", 0, "typing attribution")
	cmd.Flags().Float64Var(&voice, "voice", 0, "voice attribution")
	cmd.MarkFlagRequired("user-id")

	return cmd
}

func newSimulateCommand(newClient func() *client.Client) *cobra.Command {
	var sim client.SimulationConfig

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Send synthetic updates from many simulated devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sim.Seed == 0 {
				sim.Seed = uint64(time.Now().UnixNano())
			}
			result, err := client.Simulate(cmd.Context(), newClient(), sim)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %d updates\n", result.Submitted)
			if m := result.Last; m != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "global model after %d updates: text=%.4f typing=%.4f voice=%.4f\n",
					m.UpdateCount, m.Weights.Text, m.Weights.Typing, m.Weights.Voice)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&sim.Clients, "clients", "n", 10, "number of simulated devices")
	cmd.Flags().IntVarP(&sim.Rounds, "rounds", "r", 1, "number of rounds")
	cmd.Flags().IntVarP(&sim.Concurrency, "concurrency", "C", 4, "concurrent requests per round")
	cmd.Flags().Uint64Var(&sim.Seed, "seed", 0, "random seed (0 picks one)")

	return cmd
}

func newDashboardCommand(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard time series",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := newClient().DashboardData(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIMESTAMP\tTEXT\tTYPING\tVOICE\tUPDATES")
			for _, p := range series {
				fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\t%.4f\t%d\n",
					p.ID, p.Timestamp, p.AvgTextImportance, p.AvgTypingImportance, p.AvgVoiceImportance, p.UpdateCount)
			}
			return w.Flush()
		},
	}
}

func newModelCommand(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Print the current global model",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newClient().GlobalModel(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updates:     %d\nnoise scale: %g\ntext:        %.4f\ntyping:      %.4f\nvoice:       %.4f\n",
				m.UpdateCount, m.NoiseScale, m.Weights.Text, m.Weights.Typing, m.Weights.Voice)
			return nil
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
