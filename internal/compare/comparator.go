package compare

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Strategy invokes one external comparison engine.
// Compare returns the artifact paths the engine was asked to write; it does
// not need to check that they exist.
type Strategy interface {
	Name() string
	RequiresPreparedReference() bool
	Compare(ctx context.Context, req Request) (Artifacts, error)
}

// Comparator runs a Strategy at most once and caches its artifacts.
//
// A new Comparator is unrun. The first call to Artifacts or any of the three
// accessors runs the engine; later calls read the cache. A failed run caches
// the failure instead, and the engine is never invoked again.
type Comparator struct {
	strategy Strategy
	req      Request
	logger   *zap.Logger

	artifacts *Artifacts
	failure   error
}

// NewComparator creates an unrun comparator for req.
func NewComparator(strategy Strategy, req Request) *Comparator {
	return &Comparator{
		strategy: strategy,
		req:      req,
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for run progress messages.
func (c *Comparator) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Request returns the request this comparator was built with.
func (c *Comparator) Request() Request {
	return c.req
}

// Engine returns the strategy name.
func (c *Comparator) Engine() string {
	return c.strategy.Name()
}

// Done reports whether a successful run has been cached.
func (c *Comparator) Done() bool {
	return c.artifacts != nil
}

// Artifacts returns all three artifacts, running the engine on first use.
func (c *Comparator) Artifacts(ctx context.Context) (Artifacts, error) {
	if c.artifacts != nil {
		return *c.artifacts, nil
	}
	if c.failure != nil {
		return Artifacts{}, fmt.Errorf("%w: %w", ErrComparatorFailed, c.failure)
	}
	if err := c.run(ctx); err != nil {
		c.failure = err
		return Artifacts{}, err
	}
	return *c.artifacts, nil
}

// TruePositives returns the true-positive VCF path.
func (c *Comparator) TruePositives(ctx context.Context) (string, error) {
	a, err := c.Artifacts(ctx)
	return a.TruePositives, err
}

// FalseNegatives returns the false-negative VCF path.
func (c *Comparator) FalseNegatives(ctx context.Context) (string, error) {
	a, err := c.Artifacts(ctx)
	return a.FalseNegatives, err
}

// FalsePositives returns the false-positive VCF path.
func (c *Comparator) FalsePositives(ctx context.Context) (string, error) {
	a, err := c.Artifacts(ctx)
	return a.FalsePositives, err
}

func (c *Comparator) run(ctx context.Context) error {
	name := c.strategy.Name()
	c.logger.Info("running comparison",
		zap.String("engine", name),
		zap.String("prefix", c.req.OutputPrefix),
		zap.Strings("calls", c.req.CallVCFs),
		zap.String("truth", c.req.TruthVCF))

	a, err := c.strategy.Compare(ctx, c.req)
	if err != nil {
		return err
	}
	if err := a.Validate(name); err != nil {
		return err
	}

	c.artifacts = &a
	c.logger.Info("comparison finished",
		zap.String("engine", name),
		zap.String("tp", a.TruePositives),
		zap.String("fn", a.FalseNegatives),
		zap.String("fp", a.FalsePositives))
	return nil
}
