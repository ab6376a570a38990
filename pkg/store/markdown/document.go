package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eventmem/eventmem-go/pkg/store"
)

// delimiter separates the YAML metadata block from the document body.
const delimiter = "---"

// frontmatter is the wire form of a record's metadata block.
type frontmatter struct {
	Target      string   `yaml:"target"`
	Expires     string   `yaml:"expires"`
	Title       string   `yaml:"title,omitempty"`
	Time        string   `yaml:"time,omitempty"`
	Place       string   `yaml:"place,omitempty"`
	Attachments []string `yaml:"attachments,omitempty"`
	UserID      string   `yaml:"user_id,omitempty"`
}

// EncodeDocument serializes a record as a markdown document with a YAML
// frontmatter block followed by the body.
//
// The format is lossless for the defined field set: decoding the result
// yields a record equal in all fields (leading and trailing blank lines of
// the body are not significant).
func EncodeDocument(record *store.Record) ([]byte, error) {
	fm := frontmatter{
		Target:      store.FormatDate(record.Target),
		Expires:     store.FormatDate(record.Expires),
		Title:       record.Title,
		Time:        record.Time,
		Place:       record.Place,
		Attachments: record.Attachments,
		UserID:      record.UserID,
	}

	meta, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(meta)
	buf.WriteString(delimiter + "\n")
	if body := strings.TrimSpace(record.Body); body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// DecodeDocument parses a markdown document into a record.
//
// The identity is supplied by the caller (it is derived from the document's
// filename, never from its content). A document missing required dates, or
// whose expires date precedes its target date, is rejected; the store
// reports such documents as malformed rather than failing the whole load.
func DecodeDocument(identity string, data []byte) (*store.Record, error) {
	content := string(data)
	if !strings.HasPrefix(content, delimiter+"\n") && content != delimiter {
		return nil, fmt.Errorf("missing frontmatter block")
	}

	rest := strings.TrimPrefix(content, delimiter+"\n")
	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return nil, fmt.Errorf("unterminated frontmatter block")
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	body := rest[end+len("\n"+delimiter):]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	record := &store.Record{
		Identity:    identity,
		Title:       fm.Title,
		Time:        fm.Time,
		Place:       fm.Place,
		Body:        strings.TrimSpace(body),
		Attachments: fm.Attachments,
		UserID:      fm.UserID,
	}

	if fm.Target == "" {
		return nil, fmt.Errorf("missing target date")
	}
	target, err := store.ParseDate(fm.Target)
	if err != nil {
		return nil, fmt.Errorf("parse target date %q: %w", fm.Target, err)
	}
	record.Target = target

	if fm.Expires == "" {
		return nil, fmt.Errorf("missing expires date")
	}
	expires, err := store.ParseDate(fm.Expires)
	if err != nil {
		return nil, fmt.Errorf("parse expires date %q: %w", fm.Expires, err)
	}
	record.Expires = expires

	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
