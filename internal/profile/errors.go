package profile

import "errors"

// Classification errors. These are data, not failures: a line that
// produces one of them is kept verbatim as invalid content and the
// surrounding parse continues.
var (
	// ErrBadCommand means a line matched no directive keyword or shape.
	ErrBadCommand = errors.New("invalid command")

	// ErrBadCondition means a line started with '?' but the guard
	// keyword is not recognized.
	ErrBadCondition = errors.New("invalid condition")

	// ErrEmptyCondition means a guard was present with no command after it.
	ErrEmptyCondition = errors.New("no command after condition")

	// ErrBadCapability means a caps.drop/caps.keep token is not a
	// known capability name.
	ErrBadCapability = errors.New("invalid capability")

	// ErrBadProtocol means a protocol token is not a known protocol name.
	ErrBadProtocol = errors.New("invalid protocol")

	// ErrBadDBusPolicy means a dbus-user/dbus-system argument is
	// neither "filter" nor "none".
	ErrBadDBusPolicy = errors.New("invalid dbus policy")

	// ErrBadSeccompErrorAction means a seccomp-error-action argument is
	// not "kill", "log" or an errno name.
	ErrBadSeccompErrorAction = errors.New("invalid seccomp error-action")

	// ErrBadBind means a bind argument is missing the src,dst comma.
	ErrBadBind = errors.New("malformed bind argument")

	// ErrBadEnv means an env argument is missing the name=value equals sign.
	ErrBadEnv = errors.New("malformed environment variable")
)

// ErrInvalidProfile is wrapped by the error Parse returns when at least
// one line of the profile failed to classify.
var ErrInvalidProfile = errors.New("profile contains invalid lines")
