package zipfile

import (
	"fmt"
	"io"
	"os"

	"github.com/alec-rabold/zipclean/pkg/reader"
	log "github.com/sirupsen/logrus"
)

// Rename records one sanitized entry name.
type Rename struct {
	Old string
	New string
}

// Result reports what a pass over one archive found. On failure it still
// carries the renames seen so far and whether any bytes were already
// rewritten, since there is no rollback.
type Result struct {
	Renames  []Rename
	Modified bool
}

// CleanFile sanitizes the entry names of the zip archive at path. In report
// mode (apply == false) the file is opened read-only and nothing is written;
// in apply mode both the central directory and local header copies of each
// unsafe name are rewritten in place.
func CleanFile(path string, apply bool) (*Result, error) {
	flag := os.O_RDONLY
	if apply {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return &Result{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	s, err := reader.NewStream(f)
	if err != nil {
		return &Result{}, err
	}
	var w io.WriterAt
	if apply {
		w = f
	}
	return Clean(s, w)
}

// Clean walks the central directory of the archive behind s and sanitizes
// every entry name. When w is non-nil each replacement is written over both
// copies of the name; when w is nil the pass only reports. Earlier rewrites
// stay in place when a later entry fails.
func Clean(s *reader.Stream, w io.WriterAt) (*Result, error) {
	res := &Result{}

	endPos, err := reader.FindDirectoryEnd(s)
	if err != nil {
		return res, err
	}
	loc, err := reader.ResolveDirectory(s, endPos)
	if err != nil {
		return res, err
	}
	log.Debugf("central directory: %d entries at offset %d", loc.Entries, loc.Offset)

	for n := loc.Entries; n > 0; n-- {
		e, err := reader.ReadDirectoryEntry(s)
		if err != nil {
			return res, err
		}

		if repl := Sanitize(e.Name); repl != nil {
			res.Renames = append(res.Renames, Rename{Old: string(e.Name), New: string(repl)})

			// Rewrite the central copy first, then locate and verify the
			// local copy against the original name before touching it.
			if w != nil {
				if _, err := w.WriteAt(repl, e.NamePos); err != nil {
					return res, fmt.Errorf("write central directory name: %w", err)
				}
				res.Modified = true
			}
			at, err := e.LocalNameOffset(s)
			if err != nil {
				return res, err
			}
			if w != nil {
				if _, err := w.WriteAt(repl, at); err != nil {
					return res, fmt.Errorf("write local header name: %w", err)
				}
			}
		}

		if err := s.Seek(e.Next); err != nil {
			return res, err
		}
	}
	return res, nil
}
