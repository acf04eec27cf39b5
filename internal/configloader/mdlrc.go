package configloader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Mdlrc holds the settings mdlstyle honours from an mdl .mdlrc file.
type Mdlrc struct {
	// Style is the style path, resolved against the .mdlrc directory.
	Style string

	// Ignored lists keys that were present but have no mdlstyle meaning.
	Ignored []string
}

// LoadMdlrc reads an .mdlrc file.
func LoadMdlrc(path string) (*Mdlrc, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	rc, err := ParseMdlrc(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if rc.Style != "" && !filepath.IsAbs(rc.Style) {
		rc.Style = filepath.Join(filepath.Dir(path), rc.Style)
	}
	return rc, nil
}

// ParseMdlrc parses .mdlrc content. Each setting is a key followed by a
// value, e.g. `style "docs/.mdl_style.rb"`. Comments start with '#'.
func ParseMdlrc(content []byte) (*Mdlrc, error) {
	rc := &Mdlrc{}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)

		if key != "style" {
			rc.Ignored = append(rc.Ignored, key)
			continue
		}

		style, err := mdlrcString(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		rc.Style = style
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return rc, nil
}

// mdlrcString unquotes a style value. Interpolated strings are rejected
// since they need a Ruby interpreter.
func mdlrcString(value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("style needs a path")
	}

	switch value[0] {
	case '"':
		if strings.Contains(value, "#{") {
			return "", fmt.Errorf("interpolated style path %s is not supported", value)
		}
		unquoted, err := strconv.Unquote(value)
		if err != nil {
			return "", fmt.Errorf("invalid style path %s: %w", value, err)
		}
		return unquoted, nil
	case '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated style path %s", value)
		}
		return value[1 : len(value)-1], nil
	default:
		return value, nil
	}
}
