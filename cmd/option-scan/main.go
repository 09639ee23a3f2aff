// option-scan prices option contracts and assembles ranked multi-leg
// strategies for a ticker, either as a one-shot CLI scan or as a REST
// service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/contactkeval/option-scan/internal/config"
	"github.com/contactkeval/option-scan/internal/data"
	"github.com/contactkeval/option-scan/internal/logging"
	"github.com/contactkeval/option-scan/internal/pricing"
	"github.com/contactkeval/option-scan/internal/report"
	"github.com/contactkeval/option-scan/internal/scan"
	"github.com/contactkeval/option-scan/internal/server"
	"github.com/contactkeval/option-scan/internal/strategy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "option-scan",
		Short:         "Options strategy pricing and construction engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newScanCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST scan service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			svc, log := buildService(cfg)
			return server.New(svc, log).Run(cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func newScanCmd(configPath *string) *cobra.Command {
	var req scan.Request
	var outDir string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan strategies for a ticker and print the result as JSON",
		Example: `  option-scan scan --ticker AAPL
  option-scan scan --ticker SPY --risk conservative --max 3
  option-scan scan --ticker TSLA --filter "confidence > 70" --out ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			svc, log := buildService(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			res, err := svc.Scan(ctx, req)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return err
				}
				if err := report.WriteJSON(&res, outDir); err != nil {
					return err
				}
				if err := report.WriteCSV(res.Strategies, outDir); err != nil {
					return err
				}
				log.Info().Str("dir", outDir).Int("strategies", len(res.Strategies)).Msg("wrote report files")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Ticker, "ticker", "", "underlying ticker symbol")
	cmd.Flags().StringVar(&req.RiskProfile, "risk", "", "risk profile: conservative, moderate, moderate_aggressive, aggressive")
	cmd.Flags().IntVar(&req.MinDte, "min-dte", 0, "minimum days to expiration")
	cmd.Flags().IntVar(&req.MaxDte, "max-dte", 0, "maximum days to expiration")
	cmd.Flags().IntVar(&req.MaxStrategies, "max", 0, "maximum strategies to return")
	cmd.Flags().Float64Var(&req.MaxCapital, "max-capital", 0, "drop strategies requiring more capital than this")
	cmd.Flags().StringVar(&req.Filter, "filter", "", "screen expression, e.g. 'confidence > 70 && legs <= 2'")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for JSON/CSV report files")
	_ = cmd.MarkFlagRequired("ticker")
	return cmd
}

// buildService wires the provider chain and the synthesizer from config.
func buildService(cfg *config.Config) (*scan.Service, zerolog.Logger) {
	log := logging.New(cfg.Log)

	// One generator is shared by the model, the synthesizer, and the
	// fallback provider across concurrent request goroutines, so its
	// source must be synchronized.
	rng := pricing.NewLockedRand(time.Now().UnixNano())
	model := pricing.NewModel(rng)
	synth := strategy.NewSynthesizer(model, rng, cfg.Scan.RiskFreeRate, nil,
		log.With().Str("component", "synthesizer").Logger())

	var prov data.Provider = data.NewFallbackProvider(rng)
	if cfg.Quotes.APIKey != "" {
		prov = data.NewMassiveProvider(cfg.Quotes.APIKey, prov,
			log.With().Str("component", "quotes").Logger())
	} else {
		log.Warn().Msg("no API key configured, using fallback prices only")
	}

	defaults := scan.Defaults{
		MinDte:        cfg.Scan.MinDte,
		MaxDte:        cfg.Scan.MaxDte,
		MaxStrategies: cfg.Scan.MaxStrategies,
	}
	return scan.NewService(prov, synth, defaults, log.With().Str("component", "scan").Logger()), log
}
