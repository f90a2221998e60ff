package publisher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// DefaultOutDir is where posts land when no out_dir is configured.
const DefaultOutDir = "posts"

// ErrFilesystem marks failed directory or file operations under the output
// directory. Callers match it with errors.Is.
var ErrFilesystem = errors.New("publisher: filesystem error")

// Config is the optional JSON config file.
type Config struct {
	OutDir       string     `json:"out_dir,omitempty"`
	AffiliateURL string     `json:"affiliate_url,omitempty"`
	ServerAddr   string     `json:"server_addr,omitempty"`
	LLM          *LLMConfig `json:"llm,omitempty"`
}

// LLMConfig carries model settings for the generator module.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// PostInfo is one row of a post listing, taken from the file's frontmatter.
type PostInfo struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Date     string `json:"date"`
}

// postMeta is the subset of frontmatter fields the lister cares about.
type postMeta struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

// Publisher writes posts into the output directory and reads them back for
// listings and HTML previews.
type Publisher struct {
	cfg     Config
	verbose bool
	logger  *log.Logger
}

// New creates a Publisher. A nil logger falls back to the default logger and
// an empty out_dir falls back to DefaultOutDir.
func New(cfg Config, verbose bool, logger *log.Logger) *Publisher {
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{cfg: cfg, verbose: verbose, logger: logger}
}

func (p *Publisher) infof(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	p.logger.Printf("[INFO] "+format, args...)
}

// LoadConfig reads JSON config from disk. Every field is optional; the zero
// Config is valid.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// OutDir returns the resolved output directory.
func (p *Publisher) OutDir() string {
	return p.cfg.OutDir
}

// SavePost writes content to <out_dir>/<date>-<slug>.md and returns the path.
// The directory is created on demand. An existing file with the same name is
// overwritten.
func (p *Publisher) SavePost(title, content string) (string, error) {
	if err := os.MkdirAll(p.cfg.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrFilesystem, p.cfg.OutDir, err)
	}
	date := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s-%s.md", date, Slugify(title))
	path := filepath.Join(p.cfg.OutDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrFilesystem, path, err)
	}
	p.infof("Saved post %q to %s", title, path)
	return path, nil
}

// Slugify lowercases the title, replaces every non-alphanumeric rune with a
// hyphen, truncates to 60 runes, and strips hyphens from both ends.
func Slugify(title string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, strings.ToLower(title))
	runes := []rune(mapped)
	if len(runes) > 60 {
		runes = runes[:60]
	}
	return strings.Trim(string(runes), "-")
}

// ListPosts returns the posts in the output directory, newest first. Files
// without a parseable frontmatter block are skipped; a missing directory
// yields an empty listing.
func (p *Publisher) ListPosts() ([]PostInfo, error) {
	entries, err := os.ReadDir(p.cfg.OutDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrFilesystem, p.cfg.OutDir, err)
	}

	var infos []PostInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(p.cfg.OutDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrFilesystem, entry.Name(), err)
		}
		meta, ok := parseFrontmatter(string(data))
		if !ok {
			p.infof("Skipping %s: no frontmatter", entry.Name())
			continue
		}
		infos = append(infos, PostInfo{
			Filename: entry.Name(),
			Title:    meta.Title,
			Date:     meta.Date,
		})
	}

	// Filenames start with the ISO date, so reverse-lexicographic order is
	// newest first.
	sort.Slice(infos, func(i, j int) bool { return infos[i].Filename > infos[j].Filename })
	return infos, nil
}

// LoadPost reads one post from the output directory by bare filename. Path
// separators in the name are ignored; only the base name is used.
func (p *Publisher) LoadPost(filename string) (string, error) {
	path := filepath.Join(p.cfg.OutDir, filepath.Base(filename))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrFilesystem, path, err)
	}
	return string(data), nil
}

// RenderHTML converts post markdown to HTML, dropping the frontmatter block
// so it does not render as literal text.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(stripFrontmatter(md)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SavePreview renders the markdown file at mdPath and writes the HTML next to
// it with the extension swapped.
func (p *Publisher) SavePreview(mdPath string) (string, error) {
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrFilesystem, mdPath, err)
	}
	html, err := RenderHTML(string(data))
	if err != nil {
		return "", err
	}
	htmlPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".html"
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrFilesystem, htmlPath, err)
	}
	p.infof("Saved HTML preview to %s", htmlPath)
	return htmlPath, nil
}

func parseFrontmatter(content string) (postMeta, bool) {
	block, ok := frontmatterBlock(content)
	if !ok {
		return postMeta{}, false
	}
	var meta postMeta
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return postMeta{}, false
	}
	return meta, true
}

// frontmatterBlock returns the YAML between the opening and closing --- lines.
func frontmatterBlock(content string) (string, bool) {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)
	rest, ok := strings.CutPrefix(trimmed, "---\n")
	if !ok {
		return "", false
	}
	block, _, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", false
	}
	return block, true
}

func stripFrontmatter(content string) string {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)
	rest, ok := strings.CutPrefix(trimmed, "---\n")
	if !ok {
		return content
	}
	_, body, ok := strings.Cut(rest, "\n---")
	if !ok {
		return content
	}
	return strings.TrimLeft(body, "\n")
}
