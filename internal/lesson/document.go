// Package lesson assembles generated completions into Markdown lesson files
// with YAML front matter.
package lesson

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jnpd11/grade6-science-prep/internal/outline"
)

// imageURLTemplate is an Unsplash source URL; the keyword drives the search
// and the order number acts as a cache-busting signature so two lessons with
// the same keyword do not share an image.
const imageURLTemplate = "https://source.unsplash.com/1600x900/?%s&sig=%d"

// imageMarker matches the single trailing line the prompt asks the model to
// emit when image extraction is enabled. Models writing Chinese punctuation
// sometimes answer with a fullwidth colon, so both forms are accepted.
var imageMarker = regexp.MustCompile(`(?i)^unsplash[:：]\s*(.+?)\s*$`)

// Document is one fully assembled lesson, ready to be rendered to disk.
type Document struct {
	Title    string
	Unit     string
	Order    int
	Keywords []string
	Image    string
	Body     string
}

// FromCompletion builds a Document from an outline entry and the raw text the
// model returned. When withImage is set, a trailing image-keyword marker line
// is lifted out of the body and turned into the Image URL; without a marker
// the Image field stays empty.
func FromCompletion(e outline.Entry, completion string, withImage bool) Document {
	doc := Document{
		Title:    e.Title,
		Unit:     e.Unit,
		Order:    e.Order,
		Keywords: e.Keywords,
	}

	body := completion
	if withImage {
		if keyword, rest := splitImageKeyword(completion); keyword != "" {
			doc.Image = imageURL(keyword, e.Order)
			body = rest
		}
	}
	doc.Body = strings.TrimSpace(body)
	return doc
}

// splitImageKeyword checks the last non-blank line of the completion for an
// image-keyword marker. It returns the keyword and the body with the marker
// line removed, or an empty keyword and the untouched text.
func splitImageKeyword(completion string) (keyword, body string) {
	trimmed := strings.TrimRight(completion, " \t\r\n")
	lastLine := trimmed
	cut := strings.LastIndexByte(trimmed, '\n')
	if cut >= 0 {
		lastLine = trimmed[cut+1:]
	}

	m := imageMarker.FindStringSubmatch(strings.TrimSpace(lastLine))
	if m == nil {
		return "", completion
	}
	if cut < 0 {
		return m[1], ""
	}
	return m[1], trimmed[:cut]
}

// imageURL renders the Unsplash URL for a keyword. The keyword is encoded
// with %20 for spaces so it reads as a phrase query, not a form field.
func imageURL(keyword string, order int) string {
	escaped := strings.ReplaceAll(url.QueryEscape(keyword), "+", "%20")
	return fmt.Sprintf(imageURLTemplate, escaped, order)
}

// Filename returns the output name, a zero-padded order prefix plus the
// slugified title.
func (d Document) Filename() string {
	return fmt.Sprintf("%02d-%s.md", d.Order, Slugify(d.Title))
}

// Render serializes the document: YAML front matter between --- fences, one
// blank line, then the body with a final newline. Field order is fixed so
// diffs across regenerations stay readable.
func (d Document) Render() ([]byte, error) {
	meta := &yaml.Node{Kind: yaml.MappingNode}
	putString(meta, "title", d.Title)
	if d.Unit != "" {
		putString(meta, "unit", d.Unit)
	}
	putInt(meta, "order", d.Order)
	if len(d.Keywords) > 0 {
		putStringList(meta, "keywords", d.Keywords)
	}
	if d.Image != "" {
		putString(meta, "image", d.Image)
	}

	encoded, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(encoded)
	buf.WriteString("---\n\n")
	buf.WriteString(d.Body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write renders the document into dir, creating it if needed. An existing
// file with the same name is overwritten.
func (d Document) Write(dir string) (string, error) {
	content, err := d.Render()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, d.Filename())
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing lesson file: %w", err)
	}
	return path, nil
}

func putString(m *yaml.Node, key, value string) {
	m.Content = append(m.Content, scalarKey(key), &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Value: value,
	})
}

func putInt(m *yaml.Node, key string, value int) {
	m.Content = append(m.Content, scalarKey(key), &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
		Value: strconv.Itoa(value),
	})
}

func putStringList(m *yaml.Node, key string, values []string) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Style: yaml.DoubleQuotedStyle,
			Value: v,
		})
	}
	m.Content = append(m.Content, scalarKey(key), seq)
}

func scalarKey(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: key}
}
