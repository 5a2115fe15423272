package gs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/KartheekReddy100/PDF-Kompressor/internal/fsutil"
)

// Finder locates a usable Ghostscript console executable. Discovery checks,
// in order: a ghostscript/bin directory bundled next to the running
// executable, the process search path, and well-known install directories
// with glob version matching. Discovery has no side effects and is
// deterministic for a given file system state.
type Finder struct {
	// Override short-circuits discovery. When set, it must point at an
	// existing file or discovery fails outright.
	Override string
	// ExtraDirs are additional directories scanned for a gs binary.
	ExtraDirs []string

	execDir func() (string, error)
}

// NewFinder returns a Finder honoring a configured binary override and
// additional search directories. Both may be empty.
func NewFinder(override string, extraDirs []string) *Finder {
	return &Finder{Override: override, ExtraDirs: extraDirs}
}

// Locate returns the path of the first usable executable and whether one was
// found.
func (f *Finder) Locate() (string, bool) {
	if f.Override != "" {
		if fsutil.IsFile(f.Override) {
			return f.Override, true
		}
		return "", false
	}
	if p, ok := f.bundled(); ok {
		return p, true
	}
	for _, name := range pathCandidates() {
		if p, err := exec.LookPath(name); err == nil {
			return p, true
		}
	}
	return f.wellKnown()
}

// bundled checks for a portable ghostscript/bin directory shipped alongside
// the application binary.
func (f *Finder) bundled() (string, bool) {
	dirFn := f.execDir
	if dirFn == nil {
		dirFn = executableDir
	}
	base, err := dirFn()
	if err != nil {
		return "", false
	}
	for _, name := range bundledNames() {
		p := filepath.Join(base, "ghostscript", "bin", name)
		if fsutil.IsFile(p) {
			return p, true
		}
	}
	return "", false
}

// wellKnown globs conventional install locations plus any configured extra
// directories, preferring the 64-bit console binary and the highest version.
func (f *Finder) wellKnown() (string, bool) {
	patterns := wellKnownPatterns()
	for _, dir := range f.ExtraDirs {
		patterns = append(patterns, filepath.Join(dir, "gs*"))
	}

	var found []string
	for _, pattern := range patterns {
		matches, _ := filepath.Glob(pattern)
		for _, m := range matches {
			if fsutil.IsFile(m) {
				found = append(found, m)
			}
		}
	}
	if len(found) == 0 {
		return "", false
	}

	sort.Slice(found, func(i, j int) bool {
		ci := strings.Contains(filepath.Base(found[i]), "64c")
		cj := strings.Contains(filepath.Base(found[j]), "64c")
		if ci != cj {
			return ci
		}
		// Versioned install paths sort ascending, so the highest wins.
		return found[i] > found[j]
	})
	return found[0], true
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func pathCandidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"gswin64c", "gswin64c.exe", "gswin32c", "gswin32c.exe", "gs"}
	}
	return []string{"gs"}
}

func bundledNames() []string {
	if runtime.GOOS == "windows" {
		return []string{"gswin64c.exe", "gswin32c.exe"}
	}
	return []string{"gs"}
}

func wellKnownPatterns() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\gs\gs*\bin\gswin64c.exe`,
			`C:\Program Files\gs\gs*\bin\gswin32c.exe`,
			`C:\Program Files (x86)\gs\gs*\bin\gswin64c.exe`,
			`C:\Program Files (x86)\gs\gs*\bin\gswin32c.exe`,
		}
	case "darwin":
		return []string{"/opt/homebrew/bin/gs", "/usr/local/bin/gs"}
	default:
		return []string{"/usr/local/bin/gs", "/usr/bin/gs", "/snap/bin/gs"}
	}
}

// Version reports the version string printed by the given executable.
func Version(ctx context.Context, bin string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
