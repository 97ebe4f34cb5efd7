package validate

// Role names the position an invalid type was found in
type Role int

const (
	RoleParam Role = iota
	RoleReturn
	RoleVariable
)

// InvalidTypeError reports a member using a type that is not valid for its owner
type InvalidTypeError struct {
	Owner  string // Class name, "" for module-level methods
	Member string // Method or variable name
	Role   Role
	Param  string // Set for RoleParam
	Type   string
}

// QualifiedName returns Owner.Member, or Member at module level
func (e *InvalidTypeError) QualifiedName() string {
	if e.Owner == "" {
		return e.Member
	}
	return e.Owner + "." + e.Member
}

// Reason describes the invalid use without naming the member
func (e *InvalidTypeError) Reason() string {
	switch e.Role {
	case RoleParam:
		return "parameter " + e.Param + " has invalid type " + e.Type
	case RoleReturn:
		return "returns invalid type " + e.Type
	default:
		return "is of invalid type " + e.Type
	}
}

func (e *InvalidTypeError) Error() string {
	if e.Role == RoleVariable {
		return e.QualifiedName() + " " + e.Reason()
	}
	return e.QualifiedName() + ": " + e.Reason()
}
