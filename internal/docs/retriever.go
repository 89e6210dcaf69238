// Package docs retrieves contextual documentation for a detected
// application: man page, --help output, or an online search, in the order
// configured. A source that fails simply falls through to the next one;
// "nothing found" is a result, not an error.
package docs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	SourceMan    = "man"
	SourceHelp   = "help"
	SourceOnline = "online"

	// DefaultURLPattern backs the online source when the config names no
	// pattern for the application.
	DefaultURLPattern = "https://www.google.com/search?q={query}"

	defaultTimeout = 5 * time.Second
	maxOnlineBody  = 1 << 20
)

// DefaultSources is the lookup order when the config specifies none.
var DefaultSources = []string{SourceMan, SourceHelp, SourceOnline}

// runCommand executes a documentation lookup; swapped out in tests.
var runCommand = func(ctx context.Context, extraEnv []string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), extraEnv...)
	out, err := cmd.Output()
	return string(out), err
}

// Result is the outcome of a documentation lookup.
type Result struct {
	Command string `yaml:"command"          json:"command"`
	Found   bool   `yaml:"found"            json:"found"`
	Source  string `yaml:"source,omitempty" json:"source,omitempty"`
	Title   string `yaml:"title,omitempty"  json:"title,omitempty"`
	Content string `yaml:"content,omitempty" json:"content,omitempty"`
}

// AgentString summarizes a result on one line for piped consumers.
func (r Result) AgentString() string {
	if !r.Found {
		return fmt.Sprintf("command=%s found=false", r.Command)
	}
	return fmt.Sprintf("command=%s found=true source=%s bytes=%d", r.Command, r.Source, len(r.Content))
}

// Retriever chains documentation sources.
type Retriever struct {
	Sources     []string
	URLPatterns map[string]string
	Timeout     time.Duration
	Client      *http.Client
}

func New(sources []string, urlPatterns map[string]string) *Retriever {
	if len(sources) == 0 {
		sources = DefaultSources
	}
	return &Retriever{
		Sources:     sources,
		URLPatterns: urlPatterns,
		Timeout:     defaultTimeout,
		Client:      http.DefaultClient,
	}
}

// Get retrieves documentation for command, trying each configured source
// in order.
func (r *Retriever) Get(ctx context.Context, command string) Result {
	command = CleanAppName(command)
	if command == "" {
		return Result{Command: command}
	}

	for _, source := range r.Sources {
		var content string
		switch source {
		case SourceMan:
			content = r.manPage(ctx, command)
		case SourceHelp:
			content = r.helpOutput(ctx, command)
		case SourceOnline:
			content = r.onlineDocs(ctx, command)
		}
		if content == "" {
			continue
		}
		return Result{
			Command: command,
			Found:   true,
			Source:  source,
			Title:   titleFor(source, command),
			Content: content,
		}
	}
	return Result{Command: command}
}

func titleFor(source, command string) string {
	switch source {
	case SourceMan:
		return fmt.Sprintf("Man page for %s", command)
	case SourceHelp:
		return fmt.Sprintf("Help for %s", command)
	default:
		return fmt.Sprintf("Online documentation for %s", command)
	}
}

// FormatDocumentation renders a result for display.
func FormatDocumentation(r Result) string {
	if !r.Found {
		return fmt.Sprintf("No documentation found for %s", r.Command)
	}
	return fmt.Sprintf("--- %s ---\n\n%s", r.Title, r.Content)
}

func (r *Retriever) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return defaultTimeout
}

func (r *Retriever) manPage(ctx context.Context, command string) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()
	out, err := runCommand(ctx, []string{"MANPAGER=cat", "MANWIDTH=80"}, "man", command)
	if err != nil {
		return ""
	}
	return strings.TrimRight(out, "\n")
}

func (r *Retriever) helpOutput(ctx context.Context, command string) string {
	for _, flag := range []string{"--help", "-h"} {
		cctx, cancel := context.WithTimeout(ctx, r.timeout())
		out, err := runCommand(cctx, nil, command, flag)
		cancel()
		if err == nil && strings.TrimSpace(out) != "" {
			return strings.TrimRight(out, "\n")
		}
	}
	return ""
}

func (r *Retriever) onlineDocs(ctx context.Context, command string) string {
	pattern, ok := r.URLPatterns[command]
	if !ok {
		pattern = r.URLPatterns["default"]
	}
	if pattern == "" {
		pattern = DefaultURLPattern
	}
	target := strings.ReplaceAll(pattern, "{query}", url.QueryEscape(command))

	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ""
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxOnlineBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}

// CleanAppName normalizes a detected application identifier into a command
// to look up: the last path component, with reverse-DNS app ids reduced to
// their final segment and a single file extension stripped.
func CleanAppName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	// Wayland app ids are often reverse-DNS (org.mozilla.firefox).
	if strings.Count(name, ".") >= 2 {
		return name[strings.LastIndex(name, ".")+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}
