package docs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// stubRunner replaces runCommand with a scripted responder keyed on the
// executable name and first argument.
func stubRunner(t *testing.T, fn func(name string, args []string) (string, error)) {
	t.Helper()
	prev := runCommand
	runCommand = func(_ context.Context, _ []string, name string, args ...string) (string, error) {
		return fn(name, args)
	}
	t.Cleanup(func() { runCommand = prev })
}

func TestGet_ManPageFirst(t *testing.T) {
	stubRunner(t, func(name string, args []string) (string, error) {
		if name == "man" && args[0] == "grep" {
			return "GREP(1)\n\nNAME\n    grep - print lines\n", nil
		}
		return "", errors.New("unexpected call")
	})

	r := New(nil, nil)
	res := r.Get(context.Background(), "grep")
	if !res.Found || res.Source != SourceMan {
		t.Fatalf("result: %+v", res)
	}
	if !strings.Contains(res.Content, "GREP(1)") {
		t.Errorf("content: %q", res.Content)
	}
	if res.Title != "Man page for grep" {
		t.Errorf("title: %q", res.Title)
	}
}

func TestGet_FallsThroughToHelp(t *testing.T) {
	stubRunner(t, func(name string, args []string) (string, error) {
		switch {
		case name == "man":
			return "", errors.New("no manual entry")
		case name == "mytool" && args[0] == "--help":
			return "", errors.New("unknown flag")
		case name == "mytool" && args[0] == "-h":
			return "usage: mytool [options]", nil
		}
		return "", errors.New("unexpected call")
	})

	r := New([]string{SourceMan, SourceHelp}, nil)
	res := r.Get(context.Background(), "mytool")
	if !res.Found || res.Source != SourceHelp {
		t.Fatalf("result: %+v", res)
	}
	if res.Content != "usage: mytool [options]" {
		t.Errorf("content: %q", res.Content)
	}
}

func TestGet_EmptyHelpOutputIsNotFound(t *testing.T) {
	stubRunner(t, func(name string, args []string) (string, error) {
		return "   \n", nil // exits 0 but prints nothing useful
	})

	r := New([]string{SourceHelp}, nil)
	res := r.Get(context.Background(), "quiettool")
	if res.Found {
		t.Errorf("blank help output should not count as found: %+v", res)
	}
}

func TestGet_Online(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("q"); got != "rg" {
			t.Errorf("query: got %q, want rg", got)
		}
		fmt.Fprint(w, "<html>ripgrep docs</html>")
	}))
	defer srv.Close()

	r := New([]string{SourceOnline}, map[string]string{
		"default": srv.URL + "/search?q={query}",
	})
	res := r.Get(context.Background(), "rg")
	if !res.Found || res.Source != SourceOnline {
		t.Fatalf("result: %+v", res)
	}
	if !strings.Contains(res.Content, "ripgrep docs") {
		t.Errorf("content: %q", res.Content)
	}
}

func TestGet_OnlinePerAppPattern(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/vim/docs" {
			http.NotFound(w, req)
			return
		}
		fmt.Fprint(w, "vim reference")
	}))
	defer srv.Close()

	r := New([]string{SourceOnline}, map[string]string{
		"vim":     srv.URL + "/vim/docs",
		"default": srv.URL + "/missing/{query}",
	})
	res := r.Get(context.Background(), "vim")
	if !res.Found || res.Content != "vim reference" {
		t.Fatalf("result: %+v", res)
	}
}

func TestGet_OnlineServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := New([]string{SourceOnline}, map[string]string{"default": srv.URL + "?q={query}"})
	if res := r.Get(context.Background(), "anything"); res.Found {
		t.Errorf("5xx should not count as found: %+v", res)
	}
}

func TestGet_NothingFound(t *testing.T) {
	stubRunner(t, func(name string, args []string) (string, error) {
		return "", errors.New("not installed")
	})

	r := New([]string{SourceMan, SourceHelp}, nil)
	res := r.Get(context.Background(), "ghost")
	if res.Found {
		t.Fatalf("result: %+v", res)
	}
	if got := FormatDocumentation(res); got != "No documentation found for ghost" {
		t.Errorf("format: %q", got)
	}
}

func TestFormatDocumentation(t *testing.T) {
	res := Result{Command: "grep", Found: true, Title: "Man page for grep", Content: "NAME\n    grep"}
	got := FormatDocumentation(res)
	if !strings.HasPrefix(got, "--- Man page for grep ---\n\n") {
		t.Errorf("format: %q", got)
	}
}

func TestCleanAppName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"firefox", "firefox"},
		{"/usr/bin/vim", "vim"},
		{"wine.exe", "wine"},
		{"org.mozilla.firefox", "firefox"},
		{"org.gnome.Nautilus", "Nautilus"},
		{"/opt/app/tool.bin", "tool"},
		{"  kitty  ", "kitty"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanAppName(tt.in); got != tt.want {
			t.Errorf("CleanAppName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
