package pathkit

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// ReadJSON reads the file and unmarshals it into v.
func (p *Path) ReadJSON(v any) error {
	content, err := p.Read()
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("parse json %s: %w", p.raw, err)
	}
	return nil
}

// WriteJSON writes v as indented JSON, creating parents as needed.
func (p *Path) WriteJSON(v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json %s: %w", p.raw, err)
	}
	return p.Write(string(data))
}

// ReadYAML reads the file and unmarshals it into v.
func (p *Path) ReadYAML(v any) error {
	content, err := p.Read()
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("parse yaml %s: %w", p.raw, err)
	}
	return nil
}

// WriteYAML writes v as YAML, creating parents as needed.
func (p *Path) WriteYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml %s: %w", p.raw, err)
	}
	return p.Write(string(data))
}

// ReadTOML reads the file and unmarshals it into v.
func (p *Path) ReadTOML(v any) error {
	content, err := p.Read()
	if err != nil {
		return err
	}
	if err := toml.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("parse toml %s: %w", p.raw, err)
	}
	return nil
}

// WriteTOML writes v as TOML, creating parents as needed.
func (p *Path) WriteTOML(v any) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode toml %s: %w", p.raw, err)
	}
	return p.Write(string(data))
}

// ReadCSV reads the file as CSV records.
func (p *Path) ReadCSV() ([][]string, error) {
	content, err := p.Read()
	if err != nil {
		return nil, err
	}
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", p.raw, err)
	}
	return records, nil
}

// WriteCSV writes records as CSV, creating parents as needed.
func (p *Path) WriteCSV(records [][]string) error {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("encode csv %s: %w", p.raw, err)
	}
	return p.Write(b.String())
}

// ReadLines reads the file as lines, tolerating CRLF endings. A trailing
// newline does not produce an empty final line.
func (p *Path) ReadLines() ([]string, error) {
	content, err := p.Read()
	if err != nil {
		return nil, err
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}, nil
	}
	return strings.Split(content, "\n"), nil
}

// WriteLines writes the lines joined by newlines, creating parents as
// needed.
func (p *Path) WriteLines(lines []string) error {
	return p.Write(strings.Join(lines, "\n"))
}
