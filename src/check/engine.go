package check

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/config"
)

// SyntaxCheck names the engine-level finding synthesized when a file does
// not parse; the registered checks never see such files.
const SyntaxCheck = "syntax"

// Engine runs the enabled checks across configuration files.
type Engine struct {
	Checks   []Check
	Override map[string]Severity
	Verbose  bool
}

// NewEngine builds an engine from the registry. A non-empty only list
// selects checks explicitly; otherwise every default-enabled check runs,
// minus skip and minus checks the tool config disables. Per-check options
// and severity overrides come from cfg.
func NewEngine(cfg map[string]config.CheckConfig, only, skip []string, verbose bool) (*Engine, error) {
	skipSet := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipSet[name] = true
	}

	var checks []Check
	if len(only) > 0 {
		for _, name := range only {
			if skipSet[name] {
				continue
			}
			c, err := Get(name)
			if err != nil {
				return nil, err
			}
			if err := configure(c, cfg[name].Options); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			checks = append(checks, c)
		}
	} else {
		for _, name := range All() {
			if skipSet[name] {
				continue
			}
			if cc, ok := cfg[name]; ok && cc.Enabled != nil && !*cc.Enabled {
				continue
			}
			c, err := Get(name)
			if err != nil {
				return nil, err
			}
			if !c.DefaultEnabled() {
				continue
			}
			if err := configure(c, cfg[name].Options); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			checks = append(checks, c)
		}
	}
	if len(checks) == 0 {
		return nil, fmt.Errorf("no checks selected")
	}

	override := map[string]Severity{}
	for name, cc := range cfg {
		if cc.Severity == "" {
			continue
		}
		sev, err := ParseSeverity(cc.Severity)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", name, err)
		}
		override[name] = sev
	}

	return &Engine{Checks: checks, Override: override, Verbose: verbose}, nil
}

func configure(c Check, opts map[string]any) error {
	if len(opts) == 0 {
		return nil
	}
	cc, ok := c.(Configurable)
	if !ok {
		return fmt.Errorf("check takes no options")
	}
	return cc.Configure(opts)
}

// Stats holds per-check counters for one run.
type Stats struct {
	Name     string
	Files    int
	Findings int
	Critical int
	Warnings int
}

// Run executes the checks over the given configuration files and returns
// findings sorted by file, line and check. Files that fail to parse
// become critical syntax findings instead of aborting the run.
func (e *Engine) Run(ctx context.Context, paths []string) ([]Finding, []Stats, error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		findings []Finding
	)
	stats := make([]Stats, len(e.Checks))
	index := make(map[string]int, len(e.Checks))
	for i, c := range e.Checks {
		stats[i].Name = c.Name()
		index[c.Name()] = i
	}

	sem := semaphore.NewWeighted(int64(runtime.NumCPU() * 2))
	for _, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, nil, err
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			results, parsed := e.runFile(path)

			mu.Lock()
			defer mu.Unlock()
			if parsed {
				for i := range stats {
					stats[i].Files++
				}
			}
			for _, f := range results {
				if i, ok := index[f.Check]; ok {
					stats[i].Findings++
					switch f.Severity {
					case SeverityCritical:
						stats[i].Critical++
					case SeverityWarning:
						stats[i].Warnings++
					}
				}
				findings = append(findings, f)
			}
		}(path)
	}
	wg.Wait()

	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Check != b.Check {
			return a.Check < b.Check
		}
		return a.Message < b.Message
	})
	return findings, stats, nil
}

func (e *Engine) runFile(path string) ([]Finding, bool) {
	f, err := conffile.Load(path)
	if err != nil {
		return []Finding{syntaxFinding(path, err)}, false
	}

	var out []Finding
	for _, c := range e.Checks {
		results := c.Run(f)
		if sev, ok := e.Override[c.Name()]; ok {
			for i := range results {
				results[i].Severity = sev
			}
		}
		out = append(out, results...)
	}
	return out, true
}

// syntaxFinding turns a load error into a finding, pulling the line number
// out of the "path:line:" prefix parse errors carry.
func syntaxFinding(path string, err error) Finding {
	f := Finding{File: path, Check: SyntaxCheck, Severity: SeverityCritical}
	msg := strings.TrimSpace(strings.TrimPrefix(err.Error(), path+":"))
	if i := strings.Index(msg, ":"); i > 0 {
		if n, aerr := strconv.Atoi(msg[:i]); aerr == nil {
			f.Line = n
			msg = strings.TrimSpace(msg[i+1:])
		}
	}
	f.Message = msg
	return f
}

// HasCritical reports whether any finding is critical.
func HasCritical(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// CheckNames returns the names of the engine's active checks.
func (e *Engine) CheckNames() []string {
	names := make([]string, len(e.Checks))
	for i, c := range e.Checks {
		names[i] = c.Name()
	}
	return names
}
