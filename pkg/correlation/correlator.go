// Package correlation groups security alerts into clusters and labels each
// cluster with the attack topology it most resembles.
//
// A run builds a similarity graph over the alerts, finds overlapping
// communities by k-clique percolation, and classifies the address flow graph
// of every community. All graphs are discarded when the run returns.
package correlation

import (
	"errors"
	"time"

	"github.com/dd0wney/cluso-gac/pkg/alert"
	"github.com/dd0wney/cluso-gac/pkg/algorithms"
	"github.com/dd0wney/cluso-gac/pkg/classify"
	"github.com/dd0wney/cluso-gac/pkg/flow"
	"github.com/dd0wney/cluso-gac/pkg/logging"
	"github.com/dd0wney/cluso-gac/pkg/metrics"
	"github.com/dd0wney/cluso-gac/pkg/parallel"
	"github.com/dd0wney/cluso-gac/pkg/similarity"
)

// Correlator runs the correlation pipeline. It holds no per-run state and is
// safe for concurrent use.
type Correlator struct {
	cfg     Config
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Correlator
type Option func(*Correlator)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger logging.Logger) Option {
	return func(c *Correlator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records every run in r
func WithMetrics(r *metrics.Registry) Option {
	return func(c *Correlator) {
		c.metrics = r
	}
}

// New validates cfg and returns a Correlator
func New(cfg Config, opts ...Option) (*Correlator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Correlator{
		cfg:    cfg,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logging.Component("correlator"))
	return c, nil
}

// Config returns the parameters the correlator was built with
func (c *Correlator) Config() Config {
	return c.cfg
}

// Correlate is a one-shot run with cfg
func Correlate(alerts []alert.Alert, cfg Config) ([]Cluster, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c.Correlate(alerts)
}

// Correlate clusters and classifies one batch of alerts.
//
// The batch needs at least alert.MinAlerts records with unique uids; anything
// else is rejected before a graph is built. Clusters come back in community
// discovery order. A batch with no k-clique yields an empty, non-nil slice.
func (c *Correlator) Correlate(alerts []alert.Alert) (clusters []Cluster, err error) {
	start := time.Now()
	defer func() {
		c.recordRun(err, time.Since(start), len(alerts))
	}()

	runLogger := c.logger.With(
		logging.AlertCount(len(alerts)),
		logging.Threshold(c.cfg.SimilarityThreshold),
		logging.CliqueSize(c.cfg.CliqueSize),
	)

	timer := logging.StartTimer(runLogger, "alert store built", logging.Stage(metrics.StageStore))
	store, err := alert.NewStore(alerts)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	c.recordStage(metrics.StageStore, timer.End())

	workers := parallel.Workers(c.cfg.Workers)
	var pool *parallel.WorkerPool
	if workers > 1 {
		pool, err = parallel.NewWorkerPool(workers, runLogger)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
	}

	timer = logging.StartTimer(runLogger, "similarity graph built", logging.Stage(metrics.StageSimilarity))
	g, err := similarity.Build(store, similarity.Options{
		Threshold: c.cfg.SimilarityThreshold,
		Workers:   workers,
		Pool:      pool,
	})
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	c.recordStage(metrics.StageSimilarity, timer.End(logging.EdgeCount(g.EdgeCount())))

	timer = logging.StartTimer(runLogger, "communities found", logging.Stage(metrics.StagePercolation))
	result, err := algorithms.KCliqueCommunities(g, c.cfg.CliqueSize, algorithms.CliqueOptions{
		MaxSubcliques: c.cfg.MaxSubcliques,
	})
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	c.recordStage(metrics.StagePercolation, timer.End(
		logging.CliqueCount(result.MaximalCliques),
		logging.CommunityCount(len(result.Communities)),
		logging.String("strategy", string(result.Strategy)),
	))
	if c.metrics != nil {
		c.metrics.UpdateGraphMetrics(g.EdgeCount(), result.MaximalCliques, len(result.Communities))
	}

	timer = logging.StartTimer(runLogger, "communities classified", logging.Stage(metrics.StageClassify))
	clusters = make([]Cluster, len(result.Communities))
	classifyOne := func(i int) error {
		community := result.Communities[i]
		cluster, err := c.classifyCommunity(store, community, store.UIDs(community.Nodes))
		if err != nil {
			return err
		}
		clusters[i] = cluster
		return nil
	}
	if pool != nil {
		err = pool.ForEach(len(clusters), classifyOne)
	} else {
		err = parallel.Run(1, len(clusters), classifyOne)
	}
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	c.recordStage(metrics.StageClassify, timer.End())

	for _, cl := range clusters {
		runLogger.Debug("cluster classified",
			logging.CommunityID(cl.Community),
			logging.AlertCount(len(cl.Alerts)),
			logging.Pattern(cl.Pattern.String()),
			logging.Certainty(cl.Certainty),
			logging.Bool("degenerate", cl.Degenerate),
		)
		if c.metrics != nil {
			c.metrics.RecordCluster(cl.Pattern.String(), cl.Certainty, len(cl.Alerts), cl.Degenerate)
		}
	}

	runLogger.Info("correlation complete",
		logging.EdgeCount(g.EdgeCount()),
		logging.CommunityCount(len(clusters)),
		logging.Latency(time.Since(start)),
	)
	return clusters, nil
}

// classifyCommunity resolves a community's alerts by uid and classifies their
// flow graph
func (c *Correlator) classifyCommunity(store *alert.Store, community *algorithms.Community, uids []string) (Cluster, error) {
	members, err := store.LookupAll(uids)
	if err != nil {
		var lookupErr *alert.Error
		uid := ""
		if errors.As(err, &lookupErr) {
			uid = lookupErr.UID
		}
		return Cluster{}, inconsistentCommunity(community.ID, uid, err)
	}

	fg := flow.Build(members)
	if skipped := flow.SelfTraffic(members); skipped > 0 {
		c.logger.Debug("self traffic ignored",
			logging.CommunityID(community.ID),
			logging.Int("alerts", skipped),
		)
	}
	res := classify.Classify(fg)

	return Cluster{
		ID:         ClusterID(uids),
		Community:  community.ID,
		Certainty:  res.Certainty,
		Pattern:    res.Pattern,
		Alerts:     members,
		Attackers:  res.Attackers,
		Victims:    res.Victims,
		Scores:     res.Scores,
		Degenerate: res.Degenerate,
		Density:    community.Density,
	}, nil
}

func (c *Correlator) recordStage(stage string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordStage(stage, d)
	}
}

func (c *Correlator) recordRun(err error, d time.Duration, alerts int) {
	if c.metrics == nil {
		return
	}
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	c.metrics.RecordRun(status, d, alerts)
}
