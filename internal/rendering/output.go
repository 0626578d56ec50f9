package rendering

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/document"
)

const maxPathAttempts = 1000

// SafeName turns a person's name into a file name fragment: spaces become
// underscores and characters that are unsafe in file names are dropped.
func SafeName(name string) string {
	fields := strings.Fields(name)
	joined := strings.Join(fields, "_")

	var sb strings.Builder
	for _, r := range joined {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			continue
		}
		if r < 0x20 {
			continue
		}
		sb.WriteRune(r)
	}
	out := strings.Trim(sb.String(), ".")
	if out == "" {
		return "resume"
	}
	return out
}

// OutputPath returns the preferred output file path:
// <base>/<YYYY-MM-DD>/<Name><suffix>_<YYYYMMDD_HHMMSS>.docx
func OutputPath(base, name, suffix string, now time.Time) string {
	dir := filepath.Join(base, now.Format("2006-01-02"))
	file := fmt.Sprintf("%s%s_%s.docx", SafeName(name), suffix, now.Format("20060102_150405"))
	return filepath.Join(dir, file)
}

// candidatePath returns the n-th alternative for a preferred path.
// n == 0 is the path itself; later ones insert _<n> before the extension.
func candidatePath(path string, n int) string {
	if n == 0 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), n, ext)
}

// saveDocument writes doc next to the preferred path and moves it into place
// without replacing an existing file. It returns the path actually used.
//
// The document is written to a temporary file in the target directory,
// synced and closed, then published under the first free candidate name. The
// temporary file never survives a failed save.
func saveDocument(doc *document.Document, preferred string) (string, error) {
	dir := filepath.Dir(preferred)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &SaveError{Path: preferred, Message: "failed to create output directory", Cause: err}
	}

	tmpPath := filepath.Join(dir, "."+uuid.NewString()+".docx.tmp")
	if err := writeTemp(doc, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", &SaveError{Path: preferred, Message: "failed to write document", Cause: err}
	}
	defer os.Remove(tmpPath)

	for n := 0; n < maxPathAttempts; n++ {
		target := candidatePath(preferred, n)
		err := publish(tmpPath, target)
		if err == nil {
			return target, nil
		}
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return "", &SaveError{Path: target, Message: "failed to move document into place", Cause: err}
	}
	return "", &SaveError{Path: preferred, Message: fmt.Sprintf("no free file name after %d attempts", maxPathAttempts)}
}

func writeTemp(doc *document.Document, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if err := docx.Write(doc, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// publish links tmp to target, failing with os.ErrExist when target is
// taken. File systems without hard links fall back to an existence check
// followed by a rename.
func publish(tmp, target string) error {
	err := os.Link(tmp, target)
	if err == nil || errors.Is(err, os.ErrExist) {
		return err
	}

	if _, statErr := os.Stat(target); statErr == nil {
		return os.ErrExist
	}
	return os.Rename(tmp, target)
}
