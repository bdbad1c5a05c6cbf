package engine

import "errors"

var (
	// ErrStage rejects a life-cycle transition that is not allowed from
	// the current stage.
	ErrStage = errors.New("engine: stage transition not allowed")
	// ErrBusy rejects a command that must wait for the dynamics to calm.
	ErrBusy = errors.New("engine: dynamics still busy")
	// ErrGrammar rejects a second grammar or one submitted after growth.
	ErrGrammar = errors.New("engine: grammar not accepted")
)
