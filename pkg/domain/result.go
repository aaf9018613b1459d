package domain

// Stage names an external process step whose failure aborts a run.
type Stage string

const (
	StagePrecompile Stage = "precompile"
	StageCompile    Stage = "compile"
	StageCaide      Stage = "caide"
)

// Header returns the line printed above the captured stderr of the step.
func (s Stage) Header() string {
	switch s {
	case StagePrecompile:
		return "Errors in pre-compilation step."
	case StageCompile:
		return "Error in expanded compilation step"
	case StageCaide:
		return "Errors in Caide optimizer."
	default:
		return "Errors in " + string(s) + " step."
	}
}

// StepError reports a failed external process step together with its stderr.
type StepError struct {
	Stage  Stage  `json:"stage"`
	Stderr string `json:"stderr"`
}

func (e *StepError) Error() string {
	return e.Stage.Header() + "\n" + e.Stderr
}

// Result is the outcome of an expansion (or compilation) run.
// Output is only meaningful when HasErrors is false: a run never
// reports partial text together with problems.
type Result struct {
	Output      string      `json:"output,omitempty"`
	Diagnostics Diagnostics `json:"diagnostics,omitempty"`
	Failure     *StepError  `json:"failure,omitempty"`
}

// Succeeded builds a successful result.
func Succeeded(output string) Result {
	return Result{Output: output}
}

// Failed builds a result carrying the given diagnostics. Any output is dropped.
func Failed(diags Diagnostics) Result {
	return Result{Diagnostics: diags}
}

// FailedStep builds a result for a failed external process step.
func FailedStep(stage Stage, stderr string) Result {
	return Result{Failure: &StepError{Stage: stage, Stderr: stderr}}
}

// HasErrors is the completion signal callers check before using Output.
func (r Result) HasErrors() bool {
	return len(r.Diagnostics) > 0 || r.Failure != nil
}

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	switch {
	case r.Failure != nil:
		return r.Failure
	case len(r.Diagnostics) > 0:
		return r.Diagnostics
	default:
		return nil
	}
}

// Report returns the human-readable error block, or an empty string on success.
func (r Result) Report() string {
	if err := r.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// Text returns the output on success and the report on failure.
func (r Result) Text() string {
	if r.HasErrors() {
		return r.Report()
	}
	return r.Output
}
