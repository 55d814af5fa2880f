package model

import "strings"

// ValidationError describes one invalid field of a request body. An empty Field refers to the
// body as a whole.
type ValidationError struct {
	Field  string
	Reason string
	Type   string
}

func (x *ValidationError) Error() string {
	if x.Field == "" {
		return "body: " + x.Reason
	}
	return x.Field + ": " + x.Reason
}

// ValidationErrors collects every problem found in a request body.
type ValidationErrors []*ValidationError

func (x ValidationErrors) Error() string {
	msgs := make([]string, 0, len(x))
	for _, e := range x {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
