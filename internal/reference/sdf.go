// Package reference prepares reference sequences for engines that cannot
// read FASTA directly.
package reference

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inodb/compare-vcf/internal/compare"
	"github.com/inodb/compare-vcf/internal/process"
)

// SDFSuffix is appended to the reference path to name its SDF directory.
const SDFSuffix = ".sdf"

// Preparer produces a prepared-reference artifact for a FASTA file.
type Preparer interface {
	Prepare(ctx context.Context, reference string) (string, error)
}

// SDFPreparer formats a FASTA reference into an RTG SDF with `rtg format`.
type SDFPreparer struct {
	engines compare.Engines
	runner  process.Runner
	logFile string
	logger  *zap.Logger
}

// NewSDFPreparer creates a preparer. When logFile is set, both output
// streams of `rtg format` are appended to it.
func NewSDFPreparer(engines compare.Engines, runner process.Runner, logFile string) *SDFPreparer {
	return &SDFPreparer{
		engines: engines,
		runner:  runner,
		logFile: logFile,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for preparation notices.
func (p *SDFPreparer) SetLogger(l *zap.Logger) {
	p.logger = l
}

// SDFPath returns where the SDF for reference lives.
func SDFPath(reference string) string {
	return reference + SDFSuffix
}

// Prepare returns the SDF for reference, generating it only if absent.
func (p *SDFPreparer) Prepare(ctx context.Context, reference string) (string, error) {
	sdf := SDFPath(reference)
	if _, err := os.Stat(sdf); err == nil {
		p.logger.Info("SDF exists, doing nothing", zap.String("sdf", sdf))
		p.logger.Info("to recreate it, remove or rename the existing SDF", zap.String("sdf", sdf))
		return sdf, nil
	}
	if p.engines.RTGJar == "" {
		return "", fmt.Errorf("cannot generate %s: RTG jar not configured (set engines.rtg_jar)", sdf)
	}

	args := append(p.engines.JarCommand(p.engines.RTGJar), "format", "-o", sdf, reference)
	stdout, stderr, closeLog, err := process.Streams{LogFile: p.logFile, Capture: true}.Open()
	if err != nil {
		return "", err
	}
	defer closeLog()

	p.logger.Info("formatting reference", zap.String("reference", reference), zap.String("sdf", sdf))
	if err := p.runner.Run(ctx, args, stdout, stderr); err != nil {
		return "", &compare.EngineError{Engine: "rtg format", Args: args, Err: err}
	}
	if _, err := os.Stat(sdf); err != nil {
		return "", &compare.MissingArtifactError{Engine: "rtg format", Path: sdf}
	}
	return sdf, nil
}
