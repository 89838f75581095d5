package guide

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrNoGuides is returned when a guides directory yields no guide files.
var ErrNoGuides = errors.New("no guides found")

// ErrInvalidSlug is returned for slugs that cannot name a page under the site root.
var ErrInvalidSlug = errors.New("invalid slug")

// LoadOptions controls which files become guides and how edit links are built.
type LoadOptions struct {
	Include     []string
	Exclude     []string
	EditURLBase string
}

// frontmatter holds the optional YAML header of a guide file.
type frontmatter struct {
	Slug      string `yaml:"slug"`
	Title     string `yaml:"title"`
	MenuTitle string `yaml:"menu_title"`
	Order     int    `yaml:"order"`
	EditURL   string `yaml:"edit_url"`
}

// Load walks dir and returns its guides sorted by order, then path.
func Load(dir string, opts LoadOptions) (Guides, error) {
	var guides Guides
	seen := make(map[string]string)

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !MatchesInclude(rel, opts.Include) || MatchesExclude(rel, opts.Exclude) {
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		g, err := Parse(rel, content, opts.EditURLBase)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", rel, err)
		}
		if other, dup := seen[g.Slug]; dup {
			return fmt.Errorf("duplicate slug %q in %s and %s", g.Slug, other, rel)
		}
		seen[g.Slug] = rel
		guides = append(guides, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking guides dir: %w", err)
	}

	if len(guides) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoGuides, dir)
	}

	sort.SliceStable(guides, func(i, j int) bool {
		if guides[i].Order != guides[j].Order {
			return guides[i].Order < guides[j].Order
		}
		return guides[i].Path < guides[j].Path
	})
	return guides, nil
}

// Parse builds a Guide from a file's relative path and raw content.
func Parse(relPath string, content []byte, editURLBase string) (Guide, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return Guide{}, err
	}

	g := Guide{
		Slug:      fm.Slug,
		Title:     fm.Title,
		MenuTitle: fm.MenuTitle,
		EditURL:   fm.EditURL,
		Order:     fm.Order,
		Path:      relPath,
		Body:      string(body),
	}
	if g.Slug == "" {
		g.Slug = strings.TrimSuffix(relPath, ".md")
	}
	g.Slug = strings.Trim(g.Slug, "/")
	if err := checkSlug(g.Slug); err != nil {
		return Guide{}, err
	}
	if g.Title == "" {
		g.Title = extractTitle(g.Body)
	}
	if g.Title == "" {
		g.Title = titleFromSlug(g.Slug)
	}
	if g.MenuTitle == "" {
		g.MenuTitle = g.Title
	}
	if g.EditURL == "" && editURLBase != "" {
		g.EditURL = strings.TrimRight(editURLBase, "/") + "/" + relPath
	}
	return g, nil
}

var fence = []byte("---")

// splitFrontmatter separates a leading "---" fenced YAML block from the body.
// Content without a fence has an empty frontmatter.
func splitFrontmatter(content []byte) (frontmatter, []byte, error) {
	var fm frontmatter

	trimmed := bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(trimmed, fence) {
		return fm, content, nil
	}
	rest := trimmed[len(fence):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return fm, content, nil
	}
	rest = rest[nl+1:]

	end := bytes.Index(rest, []byte("\n---"))
	var header []byte
	switch {
	case bytes.HasPrefix(rest, fence):
		header, rest = nil, rest[len(fence):]
	case end < 0:
		return fm, nil, errors.New("unterminated frontmatter")
	default:
		header, rest = rest[:end], rest[end+len("\n---"):]
	}
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		rest = nil
	}

	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, nil, fmt.Errorf("frontmatter: %w", err)
	}
	return fm, rest, nil
}

// extractTitle returns the text of the first "# " heading, if any.
func extractTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// titleFromSlug turns "getting-started/first_app" into "First App".
func titleFromSlug(slug string) string {
	words := strings.FieldsFunc(path.Base(slug), func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// checkSlug rejects slugs with empty, "." or ".." segments, backslashes or
// control characters. Slugs become output paths when the site is prerendered.
func checkSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSlug)
	}
	if strings.ContainsRune(slug, '\\') || strings.IndexFunc(slug, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w %q", ErrInvalidSlug, slug)
	}
	for _, seg := range strings.Split(slug, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w %q", ErrInvalidSlug, slug)
		}
	}
	return nil
}
