package assemble

// ClassError records a class that was left out because its compound could not be read
// or extracted
type ClassError struct {
	RefID string
	Class string
	Err   error
}

func (e *ClassError) Error() string {
	return e.Err.Error() + ": class " + e.Class + " (" + e.RefID + ") was not parsed correctly"
}

func (e *ClassError) Unwrap() error {
	return e.Err
}
