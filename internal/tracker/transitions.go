package tracker

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/studyclock/internal/domain"
)

var (
	// ErrInvalidTransition is returned when an operation is not legal in the
	// tracker's current phase. The phase is left unchanged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrBusy is returned while a store call started by Start or SubmitScore
	// is still outstanding.
	ErrBusy = errors.New("tracker busy")
)

type operation string

const (
	opStart       operation = "start"
	opToggle      operation = "toggle"
	opPause       operation = "pause"
	opEnd         operation = "end"
	opSubmit      operation = "submit score"
	opAcknowledge operation = "acknowledge"
)

// transitions lists the operations accepted in each phase. Reset and Tick are
// accepted everywhere and are not listed.
var transitions = map[domain.Phase][]operation{
	domain.PhaseIdle:        {opStart, opToggle, opEnd},
	domain.PhaseStudying:    {opToggle, opPause, opEnd},
	domain.PhaseOnBreak:     {opToggle, opPause, opEnd},
	domain.PhasePausedStudy: {opToggle, opEnd},
	domain.PhasePausedBreak: {opToggle, opEnd},
	domain.PhaseEnded:       {opSubmit},
	domain.PhaseSubmitted:   {opAcknowledge},
}

func checkTransition(phase domain.Phase, op operation) error {
	for _, allowed := range transitions[phase] {
		if allowed == op {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, phase)
}
