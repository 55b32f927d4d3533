package container

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// UnknownIdentifierError is the value returned when an identifier is
// requested that was never registered as a binding, instance, or alias.
type UnknownIdentifierError struct {
	// Identifier is the identifier that could not be found.
	Identifier string

	// Registered is the list of identifiers that were registered at the
	// time of the lookup. Purely diagnostic; may be empty.
	Registered []string
}

func (e *UnknownIdentifierError) Error() string {
	registered := new(bytes.Buffer)
	if len(e.Registered) == 0 {
		fmt.Fprintf(registered, "    No identifiers registered!\n")
	}

	sorted := make([]string, len(e.Registered))
	copy(sorted, e.Registered)
	sort.Strings(sorted)
	for _, id := range sorted {
		fmt.Fprintf(registered, "    - %s\n", id)
	}

	return fmt.Sprintf(`
Identifier %q is not registered in the container!

This means the identifier was never bound as an instance, constructor,
factory, or alias. Registration must happen before resolution.

==> Registered identifiers

%s`,
		e.Identifier,
		strings.TrimSuffix(registered.String(), "\n"),
	)
}

var _ error = (*UnknownIdentifierError)(nil)
