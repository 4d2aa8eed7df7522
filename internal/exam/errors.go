package exam

// EmptySelectionError is returned by Build when no module was selected.
type EmptySelectionError struct{}

func (*EmptySelectionError) Error() string {
	return "exam: select at least one module to generate the exam"
}

var ErrEmptySelection error = &EmptySelectionError{}
