// Package page holds the state of one CRUD screen: list, edit form,
// submission. A State lives for one request and is handed to the template;
// nothing here is global.
package page

import (
	"errors"
	"fmt"
)

type Phase int

const (
	Loading Phase = iota
	Listing
	Editing
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Listing:
		return "listing"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var ErrTransition = errors.New("page: invalid transition")

// State is the page state machine. D is the form draft type.
type State[D any] struct {
	Phase Phase
	// EditingID is empty while creating a new entity.
	EditingID string
	Draft     D
	Err       string
	Notice    string
}

func New[D any]() *State[D] { return &State[D]{Phase: Loading} }

func (s *State[D]) bad(event string) error {
	return fmt.Errorf("%w: %s while %s", ErrTransition, event, s.Phase)
}

// Loaded: Loading -> Listing once the list fetch completed.
func (s *State[D]) Loaded() error {
	if s.Phase != Loading {
		return s.bad("loaded")
	}
	s.Phase = Listing
	return nil
}

// Create: Listing -> Editing with a fresh draft.
func (s *State[D]) Create(draft D) error {
	if s.Phase != Listing {
		return s.bad("create")
	}
	s.Phase, s.EditingID, s.Draft, s.Err = Editing, "", draft, ""
	return nil
}

// Edit: Listing -> Editing(id) with a draft copied from the entity.
func (s *State[D]) Edit(id string, draft D) error {
	if s.Phase != Listing {
		return s.bad("edit")
	}
	s.Phase, s.EditingID, s.Draft, s.Err = Editing, id, draft, ""
	return nil
}

// Submit: Editing -> Submitting with the draft the user sent.
func (s *State[D]) Submit(draft D) error {
	if s.Phase != Editing {
		return s.bad("submit")
	}
	s.Phase, s.Draft = Submitting, draft
	return nil
}

// Succeeded: Submitting -> Listing. The caller refetches the list.
func (s *State[D]) Succeeded() error {
	if s.Phase != Submitting {
		return s.bad("succeeded")
	}
	var zero D
	s.Phase, s.EditingID, s.Draft, s.Err = Listing, "", zero, ""
	return nil
}

// Failed: Submitting -> Editing, keeping the draft and showing msg.
func (s *State[D]) Failed(msg string) error {
	if s.Phase != Submitting {
		return s.bad("failed")
	}
	s.Phase, s.Err = Editing, msg
	return nil
}

// Cancel: Editing -> Listing, dropping the draft.
func (s *State[D]) Cancel() error {
	if s.Phase != Editing {
		return s.bad("cancel")
	}
	var zero D
	s.Phase, s.EditingID, s.Draft, s.Err = Listing, "", zero, ""
	return nil
}

// Editing is for templates.
func (s *State[D]) Editing() bool { return s.Phase == Editing || s.Phase == Submitting }

// Creating is for templates: the open form is for a new entity.
func (s *State[D]) Creating() bool { return s.Editing() && s.EditingID == "" }
