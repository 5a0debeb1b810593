package query

import (
	"os"
	"time"

	"github.com/tbrunner/vtd/internal/node"
)

// AddFile registers pathname with the engine and immediately parses it, so
// every tracked file is represented the first time a query runs against it.
func (e *Engine) AddFile(pathname string) {
	root := node.LoadFile(pathname)
	e.Files[pathname] = root
	e.logBadLines(pathname, root)
}

// Refresh reparses each registered pathname whose mtime is newer than
// LastRefreshed (or every pathname, if force), then sets LastRefreshed to
// the current wall clock. A pathname whose mtime
// can't be read (e.g. it was deleted) is reparsed unconditionally, letting
// node.LoadFile record the failure in that file's BadLines.
func (e *Engine) Refresh(force bool) {
	now := time.Now()
	for pathname := range e.Files {
		stale := force
		if !stale {
			info, err := os.Stat(pathname)
			if err != nil || info.ModTime().After(e.LastRefreshed) {
				stale = true
			}
		}
		if stale {
			root := node.LoadFile(pathname)
			e.Files[pathname] = root
			e.logBadLines(pathname, root)
		}
	}
	e.LastRefreshed = now
}
