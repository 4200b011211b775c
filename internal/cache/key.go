package cache

import "encoding/json"

// Key identifies one cached query: a resource name plus the serialized
// request parameters. Params serialization goes through encoding/json,
// which sorts map keys, so equal parameters always produce equal keys.
type Key struct {
	Resource string
	Params   string
}

// NewKey builds a key for a parameterized read.
func NewKey(resource string, params any) Key {
	if params == nil {
		return Key{Resource: resource}
	}
	data, err := json.Marshal(params)
	if err != nil {
		// Parameter structs are plain data; a marshal failure is a
		// programming error, not a runtime condition.
		panic("cache: unserializable key params for " + resource + ": " + err.Error())
	}
	return Key{Resource: resource, Params: string(data)}
}

// ResourceKey builds a key that matches every cached query of a resource.
// Used by mutations to invalidate a whole resource family.
func ResourceKey(resource string) Key {
	return Key{Resource: resource}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + "?" + k.Params
}

// matches reports whether k (possibly resource-wide) covers other.
func (k Key) matches(other Key) bool {
	if k.Resource != other.Resource {
		return false
	}
	return k.Params == "" || k.Params == other.Params
}
