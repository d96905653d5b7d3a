package utils

import "sync"

var gdalMu sync.Mutex

// ExecuteWithMutex serializes fn with every other GDAL call in the process.
func ExecuteWithMutex(fn func()) {
	gdalMu.Lock()
	defer gdalMu.Unlock()
	fn()
}

// ExecuteWithMutexErr is ExecuteWithMutex for functions that fail.
func ExecuteWithMutexErr(fn func() error) error {
	var err error
	ExecuteWithMutex(func() {
		err = fn()
	})
	return err
}
