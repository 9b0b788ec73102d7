package model

// Action is one entry reported by an action registry.
type Action struct {
	Code        string
	Title       string
	Description string
	Valid       bool
}

// ActionState is the activation state a registry reports for an action.
type ActionState struct {
	Enabled bool
}

// Command is a palette row: a read view of an action at load time.
type Command struct {
	Code        string
	Title       string
	Description string
	Category    string
	Shortcut    string
	Enabled     bool
}

// Role selects one field of a Command row.
type Role int

const (
	RoleCode Role = iota
	RoleTitle
	RoleDescription
	RoleCategory
	RoleShortcut
	RoleEnabled
)

// RoleNames maps each role to the field name the view layer binds to.
var RoleNames = map[Role]string{
	RoleCode:        "code",
	RoleTitle:       "title",
	RoleDescription: "description",
	RoleCategory:    "category",
	RoleShortcut:    "shortcut",
	RoleEnabled:     "isEnabled",
}

// Field returns the value of the given role, or nil for an unknown role.
func (c Command) Field(role Role) any {
	switch role {
	case RoleCode:
		return c.Code
	case RoleTitle:
		return c.Title
	case RoleDescription:
		return c.Description
	case RoleCategory:
		return c.Category
	case RoleShortcut:
		return c.Shortcut
	case RoleEnabled:
		return c.Enabled
	}
	return nil
}
