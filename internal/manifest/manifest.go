// # internal/manifest/manifest.go
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/phantomcyber/soar-app-linter/internal/core/errors"
)

// Required fields of an app's JSON descriptor.
var requiredFields = []string{
	"appid",
	"name",
	"description",
	"publisher",
	"package_name",
	"type",
	"main_module",
	"app_version",
	"product_vendor",
	"product_name",
	"product_version_regex",
	"min_phantom_version",
	"logo",
	"configuration",
	"actions",
	"python_version",
}

// Descriptor is a parsed and validated app manifest.
type Descriptor struct {
	Path      string
	Publisher string
	Name      string
	// Declared Python versions, normalized to major.minor.
	PythonVersions []string

	raw map[string]any
}

var versionPrefix = regexp.MustCompile(`^\d+(\.\d+)?`)

// Find locates and validates an app's descriptor: the first *.json file in
// the directory carrying every required field. Candidates that fail to
// parse or miss fields are collected into the NOT_FOUND error.
func Find(appDir string) (*Descriptor, error) {
	paths, err := filepath.Glob(filepath.Join(appDir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, errors.New(errors.CodeNotFound,
			fmt.Sprintf("no JSON files found in directory %q", appDir))
	}

	var problems []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", path, err))
			continue
		}

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", path, err))
			continue
		}

		var missing []string
		for _, field := range requiredFields {
			if _, ok := raw[field]; !ok {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			problems = append(problems,
				fmt.Sprintf("%s: missing required fields: %s", path, strings.Join(missing, ", ")))
			continue
		}

		d := &Descriptor{Path: path, raw: raw}
		d.Publisher, _ = raw["publisher"].(string)
		d.Name, _ = raw["name"].(string)
		versions, err := pythonVersions(raw["python_version"])
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		d.PythonVersions = versions
		return d, nil
	}

	msg := fmt.Sprintf("no suitable app JSON found in directory %q:\n  - %s",
		appDir, strings.Join(problems, "\n  - "))
	return nil, errors.New(errors.CodeNotFound, msg)
}

// ShouldProcess reports whether the app belongs to the given publisher.
// An empty publisher filter accepts everything; a missing or invalid
// descriptor rejects the app.
func ShouldProcess(appDir, publisher string) bool {
	if publisher == "" {
		return true
	}
	d, err := Find(appDir)
	if err != nil {
		return false
	}
	return d.Publisher == publisher
}

// DeclaresPython reports whether the descriptor lists the given
// major.minor version.
func (d *Descriptor) DeclaresPython(version string) bool {
	for _, v := range d.PythonVersions {
		if v == version {
			return true
		}
	}
	return false
}

// pythonVersions normalizes the descriptor's python_version field, which
// may be a number, a comma-separated string, or a list. Versions truncate
// to major.minor; a bare "3" means "3.9".
func pythonVersions(field any) ([]string, error) {
	if field == nil {
		return nil, errors.New(errors.CodeValidationError,
			"'python_version' must be defined in app json")
	}

	var parts []string
	switch v := field.(type) {
	case string:
		parts = strings.Split(v, ",")
	case float64:
		parts = []string{formatNumber(v)}
	case []any:
		for _, item := range v {
			switch it := item.(type) {
			case string:
				parts = append(parts, it)
			case float64:
				parts = append(parts, formatNumber(it))
			default:
				parts = append(parts, fmt.Sprintf("%v", it))
			}
		}
	default:
		return nil, errors.New(errors.CodeValidationError,
			"'python_version' must be a list, string, float or int")
	}

	seen := make(map[string]struct{})
	var out []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := versionPrefix.FindString(part); m != "" {
			part = m
		}
		if part == "3" {
			part = "3.9"
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	sort.Strings(out)
	return out, nil
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
