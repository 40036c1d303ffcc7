// Package schema holds the front-matter contract lesson pages are built
// against and checks Markdown files on disk before a site build picks them up.
package schema

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FrontMatter mirrors the fields the lesson page template consumes. Title and
// Order are mandatory; the rest is optional page decoration.
type FrontMatter struct {
	Title    string   `yaml:"title"`
	Unit     string   `yaml:"unit"`
	Order    int      `yaml:"order"`
	Summary  string   `yaml:"summary"`
	Keywords []string `yaml:"keywords"`
	Minutes  int      `yaml:"minutes"`
	Image    string   `yaml:"image"`
}

// Validate reports which fields break the contract.
func (fm FrontMatter) Validate() error {
	return validation.ValidateStruct(&fm,
		validation.Field(&fm.Title, validation.Required),
		validation.Field(&fm.Order, validation.Required, validation.Min(1)),
		validation.Field(&fm.Minutes, validation.Min(0)),
		validation.Field(&fm.Image, validation.By(httpURL)),
	)
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("lesson.front_matter.image_url", "image must be an absolute http(s) URL")
	}
	return nil
}

// ParseFile reads one Markdown file and returns its front matter and body.
// Keywords come back as an empty slice rather than nil when the field is
// absent.
func ParseFile(path string) (FrontMatter, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parsing front matter of %s: %w", path, err)
	}
	if meta.Keywords == nil {
		meta.Keywords = []string{}
	}
	return meta, body, nil
}

// Issue pairs a file with the reason it failed the contract.
type Issue struct {
	Path string
	Err  error
}

// CheckDir validates every .md file under dir, subdirectories included, and
// returns one Issue per failing file plus the number of files inspected.
func CheckDir(dir string) ([]Issue, int, error) {
	var issues []Issue
	checked := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		checked++

		meta, _, err := ParseFile(path)
		if err != nil {
			issues = append(issues, Issue{Path: path, Err: err})
			return nil
		}
		if err := meta.Validate(); err != nil {
			issues = append(issues, Issue{Path: path, Err: err})
		}
		return nil
	})
	if err != nil {
		return nil, checked, fmt.Errorf("walking %s: %w", dir, err)
	}
	return issues, checked, nil
}
