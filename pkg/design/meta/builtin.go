package meta

import (
	_ "embed"
	"sync"
)

//go:embed builtin.yaml
var builtinYAML []byte

var (
	builtinOnce sync.Once
	builtinDict *Dictionary
	builtinErr  error
)

// Builtin returns the dictionary of the standard report vocabulary. It is
// parsed once and shared.
func Builtin() (*Dictionary, error) {
	builtinOnce.Do(func() {
		builtinDict, builtinErr = LoadBytes(builtinYAML, "builtin")
	})
	return builtinDict, builtinErr
}

// MustBuiltin is Builtin for callers that cannot proceed without it.
func MustBuiltin() *Dictionary {
	d, err := Builtin()
	if err != nil {
		panic("meta: builtin dictionary is invalid: " + err.Error())
	}
	return d
}
