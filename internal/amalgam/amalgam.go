package amalgam

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gavrilikhin-d/libos/internal/fsio"
)

const (
	headerOnlySuffix = ". Header-only"
	separator        = "// ========================="

	sourcesBannerTop = "// -------------------------"
	sourcesBannerMid = "// |        SOURCES        |"
)

// Platform describes one platform-specific source tree to inline.
type Platform struct {
	Guard string // preprocessor macro, e.g. "IS_OS_LINUX"
	Dir   string // source tree, e.g. "src/linux"
}

// Options configure a run. All paths are slash-separated and relative to the
// repo root.
type Options struct {
	HeaderDir   string
	OutputDir   string
	IncludeRoot string // root that include references are resolved against

	Ignore   []string // glob patterns; matching headers are never amalgamated
	Umbrella string   // never contributes to the sources section

	// LicenseEndLine is the 0-indexed line on which every header's license
	// banner ends. Everything up to and including it is dropped from inlined
	// header bodies.
	LicenseEndLine int

	HeaderExt string // e.g. ".hpp"
	SourceExt string // e.g. ".cpp"

	Sources   bool // inline platform sources after the header body
	Platforms []Platform

	Only string // optional glob restricting which headers are processed
}

// Result reports what one run considered and produced.
type Result struct {
	Considered []string
	Generated  []string
	Skipped    []string
	// Outputs maps output path to full rendered content.
	Outputs map[string]string
}

// Amalgamator turns each eligible header into a self-contained header-only
// variant: local include references are replaced by the referenced file's
// body, and optionally the matching platform sources are appended under
// preprocessor guards.
type Amalgamator struct {
	fs   fsio.FS
	opts Options
}

// New creates an Amalgamator over the given file system.
func New(fs fsio.FS, opts Options) *Amalgamator {
	return &Amalgamator{fs: fs, opts: opts}
}

// Run amalgamates every eligible header and writes one output per header into
// the output directory. It aborts on the first failure; outputs written before
// the failure stay in place.
func (a *Amalgamator) Run() (*Result, error) {
	return a.run(true)
}

// Render is Run without the writes. Check mode uses it to compare what would
// be generated against what is on disk.
func (a *Amalgamator) Render() (*Result, error) {
	return a.run(false)
}

func (a *Amalgamator) run(write bool) (*Result, error) {
	names, err := a.fs.ReadDir(a.opts.HeaderDir)
	if err != nil {
		return nil, fmt.Errorf("could not list header directory %s: %w", a.opts.HeaderDir, err)
	}

	res := &Result{Considered: names, Outputs: make(map[string]string)}
	for _, name := range names {
		if a.ignored(name) || !a.selected(name) {
			res.Skipped = append(res.Skipped, name)
			continue
		}

		content, err := a.amalgamate(name)
		if err != nil {
			return res, fmt.Errorf("%s: %w", name, err)
		}

		outPath := path.Join(a.opts.OutputDir, name)
		if write {
			if err := a.fs.WriteFile(outPath, []byte(content)); err != nil {
				return res, fmt.Errorf("could not write %s: %w", outPath, err)
			}
		}
		res.Outputs[outPath] = content
		res.Generated = append(res.Generated, name)
	}
	return res, nil
}

// amalgamate renders the header-only variant of a single header.
func (a *Amalgamator) amalgamate(name string) (string, error) {
	raw, err := a.fs.ReadFile(path.Join(a.opts.HeaderDir, name))
	if err != nil {
		return "", fmt.Errorf("could not read header: %w", err)
	}
	lines := splitLines(raw)
	outPath := path.Join(a.opts.OutputDir, name)

	// The first line holds the one-line description; restate it with the
	// header-only suffix.
	var description string
	if len(lines) > 0 {
		description = strings.TrimRight(strings.TrimPrefix(lines[0], "// "), " \t\r") + headerOnlySuffix
		lines[0] = "// " + description
	}

	// Point the first file metadata tag at the generated path and restate the
	// description on the line below it. A header without the tag is left as is.
	for i, line := range lines {
		if Classify(line).Kind != LineFileTag {
			continue
		}
		lines[i] = fileTagPrefix + " " + strings.TrimPrefix(outPath, a.opts.IncludeRoot+"/")
		if i+1 < len(lines) {
			lines[i+1] = " *  " + description
		}
		break
	}

	// Replace each include reference with the dependency's inlined body,
	// accumulating into a fresh buffer so a one-line match can expand into a
	// multi-line block without index juggling.
	out := make([]string, 0, len(lines))
	var deps []string
	for _, line := range lines {
		c := Classify(line)
		if c.Kind != LineInclude {
			out = append(out, line)
			continue
		}

		if a.opts.Sources {
			if err := a.collectDeps(c.Path, &deps); err != nil {
				return "", err
			}
		}

		body, err := a.headerBody(c.Path)
		if err != nil {
			return "", err
		}
		out = append(out,
			`// #include "`+c.Path+`"`,
			separator,
		)
		out = append(out, strings.Split(body, "\n")...)
		out = append(out,
			`// End of   "`+c.Path+`"`,
			separator,
			"",
		)
	}

	if a.opts.Sources {
		section, err := a.sourcesSection(append([]string{name}, deps...))
		if err != nil {
			return "", err
		}
		out = append(out, section...)
	}

	return strings.Join(out, "\n") + "\n", nil
}

// headerBody returns a dependency's content with its license banner and its
// own include references stripped, ready for inlining.
func (a *Amalgamator) headerBody(ref string) (string, error) {
	raw, err := a.fs.ReadFile(path.Join(a.opts.IncludeRoot, ref))
	if err != nil {
		return "", fmt.Errorf("could not read dependency %q: %w", ref, err)
	}

	var kept []string
	for _, line := range splitLines(raw) {
		if Classify(line).Kind == LineInclude {
			continue
		}
		kept = append(kept, line)
	}

	start := a.opts.LicenseEndLine + 1
	if start > len(kept) {
		start = len(kept)
	}
	return strings.Join(kept[start:], "\n"), nil
}

// collectDeps appends ref and, transitively, every include reference inside
// it to acc. Duplicates are kept; ordering is depth-first in encounter order.
func (a *Amalgamator) collectDeps(ref string, acc *[]string) error {
	*acc = append(*acc, ref)
	raw, err := a.fs.ReadFile(path.Join(a.opts.IncludeRoot, ref))
	if err != nil {
		return fmt.Errorf("could not read dependency %q: %w", ref, err)
	}
	for _, line := range splitLines(raw) {
		if c := Classify(line); c.Kind == LineInclude {
			if err := a.collectDeps(c.Path, acc); err != nil {
				return err
			}
		}
	}
	return nil
}

// sourcesSection renders the trailing SOURCES banner plus, per dependency and
// per platform, the guarded implementation file body.
func (a *Amalgamator) sourcesSection(deps []string) ([]string, error) {
	out := []string{"", sourcesBannerTop, sourcesBannerMid, sourcesBannerTop}
	for _, dep := range deps {
		base := path.Base(dep)
		if a.ignored(base) || base == a.opts.Umbrella {
			continue
		}
		stem := strings.TrimSuffix(base, a.opts.HeaderExt)

		for _, pl := range a.opts.Platforms {
			srcPath := path.Join(pl.Dir, stem+a.opts.SourceExt)
			body, err := a.sourceBody(srcPath)
			if err != nil {
				return nil, err
			}
			out = append(out,
				"",
				"#if "+pl.Guard,
				"// "+srcPath,
				separator,
			)
			out = append(out, strings.Split(body, "\n")...)
			out = append(out,
				"// End of "+srcPath,
				separator,
				"",
				"#endif // "+pl.Guard,
			)
		}
	}
	return out, nil
}

// sourceBody returns an implementation file's content with include references
// stripped. Unlike headers, sources carry no license banner to drop.
func (a *Amalgamator) sourceBody(srcPath string) (string, error) {
	raw, err := a.fs.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("could not read platform source %q: %w", srcPath, err)
	}
	var kept []string
	for _, line := range splitLines(raw) {
		if Classify(line).Kind == LineInclude {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), nil
}

// splitLines splits raw content into lines. CRLF endings are folded to plain
// newlines so include references in Windows-edited files still resolve.
func splitLines(raw []byte) []string {
	return strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
}

// ignored reports whether a filename matches the ignore set.
func (a *Amalgamator) ignored(name string) bool {
	for _, pattern := range a.opts.Ignore {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// selected applies the optional --only filter.
func (a *Amalgamator) selected(name string) bool {
	if a.opts.Only == "" {
		return true
	}
	ok, err := doublestar.Match(a.opts.Only, name)
	return err == nil && ok
}
