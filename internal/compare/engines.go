package compare

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/inodb/compare-vcf/internal/process"
)

// Engine names accepted by NewStrategy.
const (
	EngineVcfCompare = "vcfcompare"
	EngineVcfEval    = "vcfeval"
)

// Engines locates the external engine executables.
type Engines struct {
	Java      string // java launcher, default "java"
	VarSimJar string // VarSim.jar, provides vcfcompare
	RTGJar    string // RTG.jar, provides vcfeval and format
}

func (e Engines) java() string {
	if e.Java == "" {
		return "java"
	}
	return e.Java
}

// JarCommand returns the argv prefix that launches jar.
func (e Engines) JarCommand(jar string) []string {
	return []string{e.java(), "-jar", jar}
}

// Launcher returns the java executable name.
func (e Engines) Launcher() string {
	return e.java()
}

// EngineNames lists the registered engines, sorted.
func EngineNames() []string {
	names := []string{EngineVcfCompare, EngineVcfEval}
	sort.Strings(names)
	return names
}

// NewStrategy returns the strategy registered under name.
func NewStrategy(name string, engines Engines, runner process.Runner) (Strategy, error) {
	switch strings.ToLower(name) {
	case EngineVcfCompare, "":
		if engines.VarSimJar == "" {
			return nil, fmt.Errorf("%s: VarSim jar not configured (set engines.varsim_jar)", EngineVcfCompare)
		}
		return NewVarSimStrategy(engines, runner), nil
	case EngineVcfEval:
		if engines.RTGJar == "" {
			return nil, fmt.Errorf("%s: RTG jar not configured (set engines.rtg_jar)", EngineVcfEval)
		}
		return NewVcfEvalStrategy(engines, runner), nil
	default:
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownEngine, name, strings.Join(EngineNames(), ", "))
	}
}

// invoke runs args with the stream policy shared by every engine: stdout is
// inherited and stderr is appended to the request's log file when set.
func invoke(ctx context.Context, runner process.Runner, engine string, args []string, logFile string) error {
	stdout, stderr, closeLog, err := process.Streams{LogFile: logFile}.Open()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := runner.Run(ctx, args, stdout, stderr); err != nil {
		return &EngineError{Engine: engine, Args: args, Err: err}
	}
	return nil
}
