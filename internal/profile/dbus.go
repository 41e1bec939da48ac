package profile

import "fmt"

// DBusPolicy is the access policy argument of the dbus-user and
// dbus-system directives.
type DBusPolicy uint8

const (
	// DBusFilter grants filtered bus access.
	DBusFilter DBusPolicy = iota
	// DBusNone disconnects the sandbox from the bus.
	DBusNone
)

// ParseDBusPolicy maps a policy name to its DBusPolicy value.
func ParseDBusPolicy(s string) (DBusPolicy, error) {
	switch s {
	case "filter":
		return DBusFilter, nil
	case "none":
		return DBusNone, nil
	default:
		return 0, ErrBadDBusPolicy
	}
}

func (p DBusPolicy) String() string {
	switch p {
	case DBusFilter:
		return "filter"
	case DBusNone:
		return "none"
	default:
		return fmt.Sprintf("DBusPolicy(%d)", uint8(p))
	}
}
