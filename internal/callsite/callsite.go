// Package callsite locates the source declaration of an annotated method so
// its documentation block can be inferred. Location is strictly best-effort:
// every lookup degrades to "not found" rather than an error, because callers
// fall back to explicit configuration when inference is impossible.
package callsite

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

// MethodSite returns the source file and zero-based line index of the named
// method's declaration, using the position the compiler recorded for the
// function itself. This is the primary locator: it needs no stack walking
// and works no matter where the registration call lives.
func MethodSite(owner reflect.Type, method string) (string, int, bool) {
	if owner == nil || method == "" {
		return "", 0, false
	}
	m, ok := owner.MethodByName(method)
	if !ok {
		return "", 0, false
	}
	fn := runtime.FuncForPC(m.Func.Pointer())
	if fn == nil {
		return "", 0, false
	}
	file, line := fn.FileLine(fn.Entry())
	if file == "" {
		return "", 0, false
	}
	return file, line - 1, true
}

// CallerSite walks the captured call chain and returns the source file of
// the first frame outside this module, the standard library, and the module
// cache. By construction that frame is the user's declaration site. It is
// the fallback when MethodSite cannot see the method (unexported methods,
// for instance).
func CallerSite(skip int) (string, bool) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return "", false
	}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" && qualifies(frame.File) {
			return frame.File, true
		}
		if !more {
			return "", false
		}
	}
}

var (
	frameworkDirs = func() []string {
		_, self, _, _ := runtime.Caller(0)
		pkgDir := filepath.Dir(self)                         // .../internal/callsite
		internalDir := filepath.Dir(pkgDir)                  // .../internal
		rootDir := filepath.Dir(internalDir)                 // module root
		return []string{internalDir, rootDir + string(filepath.Separator)}
	}()
	goroot = runtime.GOROOT()
)

// qualifies reports whether file sits outside the framework boundary.
func qualifies(file string) bool {
	if goroot != "" && strings.HasPrefix(file, goroot) {
		return false
	}
	if strings.Contains(file, filepath.Join("pkg", "mod")+string(filepath.Separator)) {
		return false
	}
	if strings.HasPrefix(file, frameworkDirs[0]) {
		return false
	}
	// Root-package framework files live directly under the module root.
	if dir := filepath.Dir(file) + string(filepath.Separator); dir == frameworkDirs[1] {
		return false
	}
	return true
}

// MethodLine finds the line index defining method: an optional receiver
// clause followed by the method name and its opening parameter delimiter.
// The hint, when valid, anchors the scan; a multi-line signature reports a
// position inside the declaration, so the scan walks upward from the hint
// before falling back to a whole-file pass.
func MethodLine(lines []string, method string, hint int) (int, bool) {
	if method == "" {
		return 0, false
	}
	re := methodPattern(method)
	if hint >= 0 && hint < len(lines) {
		for i := hint; i >= 0 && i > hint-8; i-- {
			if re.MatchString(lines[i]) {
				return i, true
			}
		}
	}
	for i, line := range lines {
		if re.MatchString(line) {
			return i, true
		}
	}
	return 0, false
}

func methodPattern(method string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*func\s+(\([^)]*\)\s+)?` + regexp.QuoteMeta(method) + `\s*\(`)
}

// fileCache holds source text for the process lifetime, keyed by cleaned
// path. Append-only: source files are not expected to change while the
// server runs.
var fileCache sync.Map

// ReadLines returns the cached lines of the file at path, reading it at most
// once per process.
func ReadLines(path string) ([]string, bool) {
	key := filepath.Clean(path)
	if v, ok := fileCache.Load(key); ok {
		lines, _ := v.([]string)
		return lines, lines != nil
	}
	data, err := os.ReadFile(key)
	if err != nil {
		fileCache.Store(key, []string(nil))
		return nil, false
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	fileCache.Store(key, lines)
	return lines, true
}
