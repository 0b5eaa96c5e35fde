package compare

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedInput is returned when a request names anything other
	// than exactly one call VCF.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrInputNotFound is returned when a required input file is absent.
	ErrInputNotFound = errors.New("input not found")

	// ErrSampleRequired is returned when a multi-sample VCF is compared
	// without a sample name.
	ErrSampleRequired = errors.New("sample name required")

	// ErrEngineExecution is matched by every *EngineError.
	ErrEngineExecution = errors.New("comparison engine failed")

	// ErrMissingArtifact is matched by every *MissingArtifactError.
	ErrMissingArtifact = errors.New("missing artifact")

	// ErrComparatorFailed is returned by a comparator whose run already failed.
	ErrComparatorFailed = errors.New("comparator already failed")

	// ErrUnknownEngine is returned for an engine name with no strategy.
	ErrUnknownEngine = errors.New("unknown comparison engine")
)

// EngineError reports an engine invocation that did not complete successfully.
type EngineError struct {
	Engine string
	Args   []string
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Engine, strings.Join(e.Args, " "), e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

func (e *EngineError) Is(target error) bool { return target == ErrEngineExecution }

// MissingArtifactError reports an output file the engine should have written.
type MissingArtifactError struct {
	Engine string
	Path   string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s was not generated by %s; check the engine log and rerun", e.Path, e.Engine)
}

func (e *MissingArtifactError) Is(target error) bool { return target == ErrMissingArtifact }
