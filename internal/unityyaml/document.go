// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package unityyaml

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Unity writes one YAML document per serialized object, introduced by a
// header such as "--- !u!114 &11400000" or "--- !u!1001 &100100000 stripped".
var headerPattern = regexp.MustCompile(`^--- !u!(-?\d+) &(-?\d+)( stripped)?\s*$`)

// Entry is one serialized object of a Unity asset file.
type Entry struct {
	ClassID  int
	FileID   int64
	Stripped bool
	// Class is the top level key of the object body, e.g. "MonoBehaviour".
	Class string
	Line  int

	body Node
}

// Body returns the mapping holding the object's serialized fields.
func (e Entry) Body() Node {
	return e.body
}

// Field is shorthand for e.Body().Get(path...).
func (e Entry) Field(path ...string) Node {
	return e.body.Get(path...)
}

// Document is a parsed Unity multi-document YAML file (.prefab, .unity, .playable, .asset).
type Document struct {
	Path    string
	Entries []Entry
}

// Load reads and parses the Unity YAML file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.Path = path

	return doc, nil
}

// Parse splits data on Unity object headers and decodes every object body.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}

	var current *Entry
	var body bytes.Buffer

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := decodeEntry(current, body.Bytes()); err != nil {
			return err
		}
		doc.Entries = append(doc.Entries, *current)
		body.Reset()
		return nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()

		if m := headerPattern.FindSubmatch(text); m != nil {
			if err := flush(); err != nil {
				return nil, err
			}

			classID, err := strconv.Atoi(string(m[1]))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid class id: %w", line, err)
			}
			fileID, err := strconv.ParseInt(string(m[2]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid file id: %w", line, err)
			}

			current = &Entry{
				ClassID:  classID,
				FileID:   fileID,
				Stripped: len(m[3]) > 0,
				Line:     line,
			}
			continue
		}

		if current == nil {
			// %YAML and %TAG directives
			continue
		}

		body.Write(text)
		body.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(doc.Entries) == 0 {
		return nil, fmt.Errorf("no unity objects found, file is not a text serialized asset")
	}

	return doc, nil
}

func decodeEntry(e *Entry, body []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(body, &root); err != nil {
		return fmt.Errorf("object &%d (class %d, line %d): %w", e.FileID, e.ClassID, e.Line, err)
	}

	if root.Kind == 0 {
		// empty body
		return nil
	}

	top := Node{n: &root}.unwrap()
	if top.n.Kind != yaml.MappingNode || len(top.n.Content) < 2 {
		return fmt.Errorf("object &%d (class %d, line %d): expected a single class mapping", e.FileID, e.ClassID, e.Line)
	}

	e.Class = top.n.Content[0].Value
	e.body = Node{n: top.n.Content[1]}.unwrap()
	return nil
}

// Filter returns the entries of the given class that carry every one of the
// given top level fields. An empty class matches any class. Stripped entries
// are skipped: their fields live in the source prefab.
func (d *Document) Filter(class string, fields ...string) []Entry {
	var result []Entry
	for _, e := range d.Entries {
		if e.Stripped {
			continue
		}
		if class != "" && e.Class != class {
			continue
		}

		ok := true
		for _, f := range fields {
			if !e.body.Has(f) {
				ok = false
				break
			}
		}
		if ok {
			result = append(result, e)
		}
	}
	return result
}

// Classes returns the entries whose class is any of the given names.
func (d *Document) Classes(classes ...string) []Entry {
	var result []Entry
	for _, e := range d.Entries {
		for _, c := range classes {
			if e.Class == c {
				result = append(result, e)
				break
			}
		}
	}
	return result
}
