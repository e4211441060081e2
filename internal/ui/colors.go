package ui

// Role names what a piece of output means rather than how it looks. The
// current theme maps each role to an escape code.
type Role int

const (
	RoleReset Role = iota
	RoleError
	RoleSuccess
	RoleWarning
	RolePrimary
	RoleInfo
	RoleSecondary
	RoleBold
	RoleUnderline
)

// code returns the escape sequence of r in t.
func (r Role) code(t Theme) string {
	switch r {
	case RoleError:
		return t.Error
	case RoleSuccess:
		return t.Success
	case RoleWarning:
		return t.Warning
	case RolePrimary:
		return t.Primary
	case RoleInfo:
		return t.Info
	case RoleSecondary:
		return t.Secondary
	case RoleBold:
		return t.Bold
	case RoleUnderline:
		return t.Underline
	default:
		return t.Reset
	}
}

// Color returns the escape code of role in the current theme. It is empty
// under NoColorTheme.
func Color(role Role) string { return role.code(GetCurrentTheme()) }

// Paint wraps s in the escape code of role and a reset. Under NoColorTheme
// it returns s unchanged.
//
// Parameters:
//   - role: The meaning of s, e.g. RoleError for a failed evaluation.
//   - s: The text to color.
//
// Returns:
//   - string: The colored text.
func Paint(role Role, s string) string {
	t := GetCurrentTheme()
	return role.code(t) + s + t.Reset
}

// The Color* helpers are shorthands for Color with a fixed role; output code
// interleaves them with Fprintf verbs.

func ColorReset() string     { return Color(RoleReset) }
func ColorRed() string       { return Color(RoleError) }
func ColorGreen() string     { return Color(RoleSuccess) }
func ColorYellow() string    { return Color(RoleWarning) }
func ColorBlue() string      { return Color(RolePrimary) }
func ColorMagenta() string   { return Color(RoleInfo) }
func ColorCyan() string      { return Color(RoleSecondary) }
func ColorBold() string      { return Color(RoleBold) }
func ColorUnderline() string { return Color(RoleUnderline) }
