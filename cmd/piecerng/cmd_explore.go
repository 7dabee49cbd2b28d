package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-piecerng"
	"github.com/opd-ai/go-piecerng/internal/store"
)

func runExplore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	r, err := parseRange(fromSeed, toSeed, keepAll)
	if err != nil {
		return err
	}
	t, err := loadTable()
	if err != nil {
		return err
	}

	var metrics *piecerng.Metrics
	if config.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		metrics = piecerng.NewMetrics(reg)
		stop := serveMetrics(config.MetricsAddr, reg)
		defer stop()
	}

	start := time.Now()
	res, err := piecerng.ExploreSeedSpace(ctx, t, r, piecerng.ExploreConfig{
		Workers: config.Workers,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	logger.Info("exploration finished",
		"seeds", len(res.Seeds), "loops", len(res.Loops),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if verifyRun {
		if err := res.Verify(t); err != nil {
			return err
		}
		logger.Info("result verified")
	}

	if config.StorePath != "" {
		st, err := openStore(config.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveResult(ctx, t.Fingerprint(), res); err != nil {
			return err
		}
		logger.Info("result stored", "path", config.StorePath)
	}

	writeResult(cmd.OutOrStdout(), res, false)
	return nil
}

func runLoops(cmd *cobra.Command, args []string) error {
	if config.StorePath == "" {
		return errors.New("--db is required")
	}
	t, err := loadTable()
	if err != nil {
		return err
	}
	st, err := openStore(config.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := st.LoadResult(cmd.Context(), t.Fingerprint())
	if err != nil {
		return err
	}
	writeResult(cmd.OutOrStdout(), res, keepAll)
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	if config.StorePath == "" {
		return errors.New("--db is required")
	}
	seed, err := piecerng.ParseSeed(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(config.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	sr, ok, err := st.LookupSeed(ctx, seed)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("seed %s is not in the stored result", seed)
	}
	loop, err := st.Loop(ctx, sr.LoopID)
	if err != nil {
		return err
	}
	writeSeedResult(cmd.OutOrStdout(), seed, sr, loop)
	return nil
}

func openStore(path string) (*store.Store, error) {
	cfg := store.DefaultConfig(path)
	cfg.Logger = logger.With("component", "store")
	return store.Open(cfg)
}

// serveMetrics exposes reg on addr until the returned function is called.
func serveMetrics(addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
