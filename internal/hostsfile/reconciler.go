package hostsfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Reconciler owns the managed section of a single hosts file. Writes go
// through a temp file in the target's directory followed by an atomic
// rename, so the target is never observed half-written.
type Reconciler struct {
	fs     afero.Fs
	path   string
	logger zerolog.Logger
}

func NewReconciler(fs afero.Fs, path string, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

// Apply replaces the managed section with body, creating the section at
// end of file when no markers exist yet. Content outside the markers is
// preserved byte for byte. When the result equals the current file content
// the write is skipped entirely.
func (r *Reconciler) Apply(body []string) error {
	current, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", r.path, err)
	}
	updated, err := spliceSection(r.path, string(current), body)
	if err != nil {
		return err
	}
	if updated == string(current) {
		r.logger.Debug().Str("path", r.path).Msg("Hosts file already up to date")
		return nil
	}
	if err := r.replace([]byte(updated)); err != nil {
		return err
	}
	r.logger.Info().Str("path", r.path).Int("entries", len(body)).Msg("Updated hosts file")
	return nil
}

// CheckWritable verifies the target file can be opened for writing. Meant
// as a startup precondition so a privilege problem surfaces immediately
// instead of on the first reconciliation.
func (r *Reconciler) CheckWritable() error {
	f, err := r.fs.OpenFile(r.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("hosts file not writable: %w", err)
	}
	return f.Close()
}

// Sanitize rewrites the target file with non-breaking spaces replaced by
// plain spaces. Meant to run once at startup; NBSP bytes in a hosts file
// break resolution while looking identical in an editor.
func (r *Reconciler) Sanitize() error {
	current, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", r.path, err)
	}
	cleaned := bytes.ReplaceAll(current, []byte("\u00a0"), []byte(" "))
	cleaned = bytes.ReplaceAll(cleaned, []byte{0xA0}, []byte{' '})
	if bytes.Equal(cleaned, current) {
		return nil
	}
	r.logger.Info().Str("path", r.path).Msg("Removing non-breaking spaces from hosts file")
	return r.replace(cleaned)
}

// spliceSection returns the full new file content with the managed section
// replaced by body, or a MarkerCorruptionError when the existing markers
// are malformed.
func spliceSection(path, current string, body []string) (string, error) {
	lines := strings.SplitAfter(current, "\n")
	begin, end := -1, -1
	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case BeginMarker:
			if begin >= 0 {
				return "", NewMarkerCorruptionError(path, "duplicate begin marker")
			}
			begin = i
		case EndMarker:
			if end >= 0 {
				return "", NewMarkerCorruptionError(path, "duplicate end marker")
			}
			end = i
		}
	}

	section := renderSection(body)
	switch {
	case begin == -1 && end == -1:
		s := current
		if s != "" && !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		return s + section, nil
	case begin == -1:
		return "", NewMarkerCorruptionError(path, "end marker without begin marker")
	case end == -1:
		return "", NewMarkerCorruptionError(path, "begin marker without end marker")
	case end < begin:
		return "", NewMarkerCorruptionError(path, "end marker precedes begin marker")
	}

	var b strings.Builder
	for _, line := range lines[:begin] {
		b.WriteString(line)
	}
	b.WriteString(section)
	for _, line := range lines[end+1:] {
		b.WriteString(line)
	}
	return b.String(), nil
}

// replace writes content to a temp file next to the target, mirrors the
// target's permissions and ownership onto it, then renames it over the
// target. On any failure before the rename the original file is untouched.
func (r *Reconciler) replace(content []byte) error {
	info, err := r.fs.Stat(r.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", r.path, err)
	}

	tmp, err := afero.TempFile(r.fs, filepath.Dir(r.path), ".hosts-sync-")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := r.fs.Chmod(tmpName, info.Mode().Perm()); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		// Ownership mirror only succeeds when running as root, which the
		// daemon needs anyway to rewrite /etc/hosts.
		_ = r.fs.Chown(tmpName, int(st.Uid), int(st.Gid))
	}

	if err := r.fs.Rename(tmpName, r.path); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", r.path, err)
	}
	return nil
}
