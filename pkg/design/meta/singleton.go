package meta

import (
	"fmt"
	"sync"
)

var (
	// globalDict holds the process-wide dictionary.
	globalDict *Dictionary

	// dictMutex protects access to globalDict.
	dictMutex sync.RWMutex

	// initOnce ensures the dictionary is initialized only once.
	initOnce sync.Once
)

// Initialize loads the process-wide dictionary. An empty path selects the
// builtin dictionary. Subsequent calls are ignored.
//
// Components do not read the global directly: startup code calls Get and
// hands the result to the parser, validator and editor.
func Initialize(path string) error {
	var initErr error

	initOnce.Do(func() {
		var (
			d   *Dictionary
			err error
		)
		if path == "" {
			d, err = Builtin()
		} else {
			d, err = Load(path)
		}
		if err != nil {
			initErr = fmt.Errorf("failed to load dictionary: %w", err)
			return
		}

		dictMutex.Lock()
		globalDict = d
		dictMutex.Unlock()
	})

	return initErr
}

// Get returns the process-wide dictionary, or nil before Initialize.
func Get() *Dictionary {
	dictMutex.RLock()
	defer dictMutex.RUnlock()
	return globalDict
}

// Set replaces the process-wide dictionary. Intended for tests.
func Set(d *Dictionary) {
	dictMutex.Lock()
	defer dictMutex.Unlock()
	globalDict = d
}

// MustGet returns the process-wide dictionary and panics if it has not been
// initialized.
func MustGet() *Dictionary {
	d := Get()
	if d == nil {
		panic("dictionary not initialized: call meta.Initialize first")
	}
	return d
}
