// Copyright 2026 The Caliper Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fraVlaca/caliper/pkg/config"
	"github.com/fraVlaca/caliper/pkg/connector"
	"github.com/fraVlaca/caliper/pkg/gateway/loopback"
	"github.com/fraVlaca/caliper/pkg/metrics"
	"github.com/fraVlaca/caliper/pkg/runner"
	"github.com/fraVlaca/caliper/pkg/version"
	"github.com/fraVlaca/caliper/pkg/wallet"
)

const (
	ExitCodeExecuteFailed = 1
	ExitCodeRoundFailed   = 2
)

var (
	cfgPath     string
	metricsAddr string
	dryRun      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caliper",
		Short: "A benchmark workload driver for distributed ledger backends",
		Long: "Issues transactional requests against a ledger backend on behalf of many " +
			"simulated client identities and reports submission/completion telemetry.",
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "workload configuration file path (required)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve prometheus metrics on, e.g. :9090")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "drive the round against an in-process loopback backend")
	_ = rootCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetVersionInfo())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitCodeExecuteFailed)
	}
}

func run(cmd *cobra.Command, args []string) error {
	version.LogVersionInfo()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log.Info("workload configuration loaded",
		zap.String("path", cfgPath),
		zap.Int("organizations", len(cfg.Orgs)),
		zap.Int("channels", len(cfg.ChannelList)),
		zap.Int("workers", cfg.Workers.Count))

	if !dryRun {
		// The concrete backend SDK binding is provided by the host using
		// this driver as a library; the binary only drives the loopback.
		log.Info("no backend wired, configuration check passed")
		return nil
	}

	if len(cfg.ChannelList) == 0 || len(cfg.ChannelList[0].Contracts) == 0 {
		return errors.New("dry run requires at least one channel with one contract")
	}

	registry := prometheus.NewRegistry()
	metrics.InitMetrics(registry)
	if metricsAddr != "" {
		go serveMetrics(metricsAddr, registry)
	}

	w := wallet.NewInMemory()
	for _, org := range cfg.Orgs {
		for _, name := range org.Identities {
			w.Put(name, &wallet.Identity{OrganizationID: org.Name})
		}
	}

	c := connector.New(cfg, w, loopback.NewFactory(),
		connector.WithSink(metrics.NewSink()),
		connector.WithCredential(cfg.Credential))

	generator := defaultGenerator(cfg)
	r := runner.New(c, generator, runner.Options{
		Workers:       cfg.Workers.Count,
		TotalRequests: cfg.Workers.TotalRequests,
		RatePerSecond: cfg.Workers.RatePerSecond,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		log.Error("benchmark round failed", zap.Error(err))
		os.Exit(ExitCodeRoundFailed)
	}
	return nil
}

// defaultGenerator issues a read-only probe against the first configured
// contract, rotating through the configured identities.
func defaultGenerator(cfg *config.WorkloadConfig) runner.Generator {
	var identities []string
	for _, org := range cfg.Orgs {
		identities = append(identities, org.Identities...)
	}

	channel := cfg.ChannelList[0].Name
	contractID := cfg.ChannelList[0].Contracts[0].ID

	return runner.GeneratorFunc(func(workerID int, iteration int64) *connector.Request {
		return &connector.Request{
			Channel:          channel,
			ContractID:       contractID,
			ContractFunction: "probe",
			InvokerIdentity:  identities[int(iteration)%len(identities)],
			ReadOnly:         true,
		}
	})
}

func serveMetrics(addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server stopped", zap.Error(err))
	}
}
