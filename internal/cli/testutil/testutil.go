// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/svclint/internal/cli/output"
)

// BundleConfigDir is where the fixture bundles keep their service documents.
const BundleConfigDir = "src/Resources/config"

// CoreServicesFile is the fixture document with one wrong identifier.
const CoreServicesFile = "vendor/contao/contao/core-bundle/src/Resources/config/services.yml"

// NewsListenerFile is the fixture document whose identifiers are correct.
const NewsListenerFile = "vendor/contao/contao/news-bundle/src/Resources/config/listener.yml"

const coreServices = `services:
    _defaults:
        autoconfigure: true

    contao.listener.backend_menu:
        class: Contao\CoreBundle\EventListener\BackendMenuListener

    contao.listener.wrong_name:
        class: Contao\CoreBundle\EventListener\DataContainerListener

    contao.framework:
        class: Contao\CoreBundle\Framework\ContaoFramework

    _contao.private_helper:
        class: Contao\CoreBundle\Util\Helper
`

const newsListeners = `services:
    contao_news.listener.generate_page:
        class: Contao\NewsBundle\EventListener\GeneratePageListener

    contao_news.feed_a:
        class: Contao\NewsBundle\Feed\FeedGenerator

    contao_news.feed_b:
        class: Contao\NewsBundle\Feed\FeedGenerator
`

// Outside the bundle config directories, so never discovered by default.
const toolsConfig = `services:
    tools.thing:
        class: Contao\CoreBundle\Whatever\Thing
`

// SetupTestProject creates a temporary project with a small bundle corpus
// below vendor/contao/contao and returns its root.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	files := map[string]string{
		CoreServicesFile: coreServices,
		NewsListenerFile: newsListeners,
		"vendor/contao/contao/tools/config.yml": toolsConfig,
	}
	for rel, content := range files {
		WriteFile(t, tmpDir, rel, content)
	}

	return tmpDir
}

// WriteFile writes content below dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create %s: %v", rel, err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
