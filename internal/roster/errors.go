package roster

import "errors"

var (
	// ErrValidation reports bad user input. No state was changed.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate reports a name or date that already exists in the group.
	ErrDuplicate = errors.New("already exists")
	// ErrConflict reports an edit that collides with another person.
	ErrConflict = errors.New("conflicts with another person")
	// ErrNotFound reports an unknown person or date id.
	ErrNotFound = errors.New("not found")
	// ErrNoActiveDate reports an attendance operation without an active date.
	ErrNoActiveDate = errors.New("no date selected")
	// ErrFeatureDisabled reports a call to an optional feature that is switched off.
	ErrFeatureDisabled = errors.New("feature disabled")
	// ErrNoGroup reports an operation before a group was selected, or an unknown group name.
	ErrNoGroup = errors.New("no group selected")
)
