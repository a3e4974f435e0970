package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"enclosure-designer/internal/designer/models"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Formats
// ============================================================

var ErrUnsupportedFormat = errors.New("unsupported parameter format")

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const unitKey = "unit"

// DetectFormat определяет формат файла параметров по расширению, затем по Content-Type.
func DetectFormat(filename, contentType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt", ".params", ".kcl":
		return FormatText
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return FormatJSON
	case strings.Contains(ct, "yaml"):
		return FormatYAML
	}
	return FormatText
}

// ============================================================
// Parser
// ============================================================

// ParseParameters читает параметры поверх base: отсутствующие имена сохраняют
// значения base, неизвестные имена отклоняются.
func ParseParameters(r io.Reader, format string, base models.Parameters) (models.Parameters, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Parameters{}, fmt.Errorf("read parameters: %w", err)
	}

	var raw map[string]any
	switch format {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatText, "":
		raw, err = decodeText(data)
	default:
		return models.Parameters{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return models.Parameters{}, err
	}

	return apply(base, raw)
}

func decodeJSON(data []byte) (map[string]any, error) {
	raw := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: json: %v", models.ErrInvalidParameter, err)
	}
	return raw, nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", models.ErrInvalidParameter, err)
	}
	return raw, nil
}

var assignment = regexp.MustCompile(`^(?:const\s+)?([A-Za-z_]\w*)\s*=\s*(.+)$`)

// decodeText построчный формат `name = value`, допускается префикс const и
// комментарии # и //.
func decodeText(data []byte) (map[string]any, error) {
	raw := make(map[string]any)
	scanner := bufio.NewScanner(bytes.NewReader(data))

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		m := assignment.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: line %d: expected name = value, got %q",
				models.ErrInvalidParameter, lineNo, line)
		}
		name, value := m[1], strings.TrimSpace(m[2])
		if _, dup := raw[name]; dup {
			return nil, fmt.Errorf("%w: line %d: %s assigned twice", models.ErrInvalidParameter, lineNo, name)
		}
		raw[name] = strings.Trim(value, `"'`)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read parameters: %w", err)
	}
	return raw, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func apply(base models.Parameters, raw map[string]any) (models.Parameters, error) {
	p := base
	if p.Unit == "" {
		p.Unit = models.DefaultUnit
	}

	for name, v := range raw {
		if name == unitKey {
			unit, ok := v.(string)
			if !ok {
				return models.Parameters{}, fmt.Errorf("%w: unit must be a string, got %v", models.ErrInvalidParameter, v)
			}
			p.Unit = strings.ToLower(strings.TrimSpace(unit))
			continue
		}

		value, err := toFloat(v)
		if err != nil {
			return models.Parameters{}, fmt.Errorf("%w: %s: %v", models.ErrInvalidParameter, name, err)
		}
		if err := p.Set(name, value); err != nil {
			return models.Parameters{}, err
		}
	}
	return p, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}
