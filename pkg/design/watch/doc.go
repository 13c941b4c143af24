// Package watch re-runs work when design documents change on disk.
//
// A Watcher is given the document and every library it includes. It watches
// their directories, so editors that save by renaming a temporary file are
// still seen, and passes the changed paths to a callback once the files have
// been quiet for the debounce interval.
//
//	w, err := watch.New(watch.Config{Paths: files, Debounce: 100 * time.Millisecond}, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	err = w.Watch(ctx, func(changed []string) error {
//	    return recheck(changed)
//	})
//
// The callback may call SetPaths when the set of included libraries changes.
package watch
