package descriptor

import "fmt"

// Datatype is the capability a resolved datatype class must provide: typed
// validation of a global property's serialized value. Hosts register their
// concrete handlers with a DatatypeResolver; this package never instantiates
// classes itself.
type Datatype interface {
	// Validate reports whether raw is a legal serialized value for this
	// datatype.
	Validate(raw string) error
}

// DatatypeResolver maps a fully qualified datatype class name to its
// registered handler. Resolution failure is not fatal to a parse: the
// property is kept without a datatype association and the failure is logged.
type DatatypeResolver interface {
	Resolve(className string) (Datatype, error)
}

// DatatypeRegistry is a map-backed DatatypeResolver for hosts that know
// their handler set up front.
type DatatypeRegistry map[string]Datatype

func (r DatatypeRegistry) Resolve(className string) (Datatype, error) {
	dt, ok := r[className]
	if !ok {
		return nil, fmt.Errorf("datatype class %q is not registered", className)
	}
	if dt == nil {
		return nil, fmt.Errorf("datatype class %q resolves to nil", className)
	}
	return dt, nil
}
