// Package routes holds the static route table for the registration app.
package routes

// Key names a logical route.
type Key string

// Path is a concrete URL path served by the router.
type Path string

const (
	Home Key = "HOME"
	Form Key = "FORM"
)

const (
	HomePath Path = "/"
	FormPath Path = "/form"
)

var table = [...]struct {
	key  Key
	path Path
}{
	{Home, HomePath},
	{Form, FormPath},
}

// Lookup returns the path registered for key.
func Lookup(key Key) (Path, bool) {
	for _, entry := range table {
		if entry.key == key {
			return entry.path, true
		}
	}
	return "", false
}

// MustLookup panics when key is not part of the table.
func MustLookup(key Key) Path {
	path, ok := Lookup(key)
	if !ok {
		panic("routes: unknown route " + string(key))
	}
	return path
}

// Keys returns the route keys in declaration order.
func Keys() []Key {
	out := make([]Key, 0, len(table))
	for _, entry := range table {
		out = append(out, entry.key)
	}
	return out
}

// Paths returns the route paths in declaration order.
func Paths() []Path {
	out := make([]Path, 0, len(table))
	for _, entry := range table {
		out = append(out, entry.path)
	}
	return out
}

// String implements fmt.Stringer.
func (p Path) String() string { return string(p) }
