package structure

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
)

const (
	indentSpaces = 4
	filePerm     = 0o644

	// xmlProlog replaces whatever declaration the template had. Only the root
	// element is written, so comments and processing instructions outside it
	// are dropped; the output always ends with a newline.
	xmlProlog = `version="1.0" encoding="UTF-8"`
)

// Load parses a structure template.
func Load(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing structure template: %w", err)
	}

	if doc.Root() == nil {
		return nil, ErrNoRoot
	}

	return doc, nil
}

// LoadFile parses the structure template at path.
func LoadFile(path string) (*etree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening structure template: %w", err)
	}

	defer func() { _ = f.Close() }()

	return Load(f)
}

// Write serializes the root element of doc with a fresh XML declaration,
// 4-space indentation and no blank lines.
func Write(doc *etree.Document, w io.Writer) error {
	root := doc.Root()
	if root == nil {
		return ErrNoRoot
	}

	out := etree.NewDocument()
	out.CreateProcInst("xml", xmlProlog)
	out.SetRoot(root.Copy())
	out.Indent(indentSpaces)

	var raw bytes.Buffer
	if _, err := out.WriteTo(&raw); err != nil {
		return fmt.Errorf("serializing structure: %w", err)
	}

	bw := bufio.NewWriter(w)

	for _, line := range strings.Split(raw.String(), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("writing structure: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing structure: %w", err)
	}

	return nil
}

// Render returns the serialized document.
func Render(doc *etree.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes content to path, replacing any existing file.
func WriteFile(content []byte, path string) error {
	err := os.WriteFile(path, content, filePerm)
	if err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}
