package validate

import (
	"maps"
	"net/url"
	"slices"
)

// Args are the request parameters of one call. An empty value counts as present.
type Args struct {
	values map[string]string
}

// NewArgs copies m into an Args value
func NewArgs(m map[string]string) Args {
	return Args{values: maps.Clone(m)}
}

// ArgsFromValues takes the first value of each query or form parameter
func ArgsFromValues(v url.Values) Args {
	values := make(map[string]string, len(v))
	for name, vals := range v {
		if len(vals) > 0 {
			values[name] = vals[0]
		}
	}
	return Args{values: values}
}

// Get returns the value of name and whether it was supplied
func (a Args) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name was supplied
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Names returns the supplied parameter names in sorted order
func (a Args) Names() []string {
	return slices.Sorted(maps.Keys(a.values))
}

// CheckMandatory reports whether every name in required is present in args, and lists the missing
// names in the order they appear in required. A name listed twice is reported twice.
func CheckMandatory(args Args, required []string) (bool, []string) {
	missing := []string{}
	for _, name := range required {
		if !args.Has(name) {
			missing = append(missing, name)
		}
	}
	return len(missing) == 0, missing
}
