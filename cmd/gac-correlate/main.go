package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/mmap"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-gac/pkg/alert"
	"github.com/dd0wney/cluso-gac/pkg/correlation"
	"github.com/dd0wney/cluso-gac/pkg/logging"
	"github.com/dd0wney/cluso-gac/pkg/metrics"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "gac-correlate: %v\n", err)
		}
		os.Exit(2)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gac-correlate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	alertsPath := fs.String("alerts", "", "YAML or JSON file holding a list of alerts (required)")
	configPath := fs.String("config", "", "YAML config file")
	threshold := fs.Float64("threshold", 0, "Similarity threshold in (0, 1); overrides the config")
	k := fs.Int("k", 0, "Clique size; overrides the config")
	workers := fs.Int("workers", 0, "Worker count, 0 for one per CPU; overrides the config")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (default $LOG_LEVEL or info)")
	metricsPath := fs.String("metrics", "", "Write prometheus metrics of the run to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *alertsPath == "" {
		return errors.New("-alerts is required")
	}

	cfg := correlation.DefaultConfig()
	if *configPath != "" {
		loaded, err := correlation.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Only flags given on the command line override the config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "threshold":
			cfg.SimilarityThreshold = *threshold
		case "k":
			cfg.CliqueSize = *k
		case "workers":
			cfg.Workers = *workers
		}
	})

	alerts, err := loadAlerts(*alertsPath)
	if err != nil {
		return err
	}

	logger := logging.NewLeveledLogger(stderr, *logLevel)

	reg := metrics.NewRegistry()
	c, err := correlation.New(cfg, correlation.WithLogger(logger), correlation.WithMetrics(reg))
	if err != nil {
		return err
	}

	clusters, err := c.Correlate(alerts)
	if *metricsPath != "" {
		if werr := prometheus.WriteToTextfile(*metricsPath, reg.Gatherer()); werr != nil {
			logger.Warn("failed to write metrics", logging.String("path", *metricsPath), logging.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(clusters)
}

// loadAlerts decodes a list of alerts straight from a memory-mapped file.
// JSON is valid YAML, so one decoder handles both formats.
func loadAlerts(path string) ([]alert.Alert, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open alerts: %w", err)
	}
	defer r.Close()

	var alerts []alert.Alert
	dec := yaml.NewDecoder(io.NewSectionReader(r, 0, int64(r.Len())))
	if err := dec.Decode(&alerts); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse alerts %s: %w", path, err)
	}
	return alerts, nil
}
