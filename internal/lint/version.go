// # internal/lint/version.go
package lint

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the Python runtime version the analysis targets. It gates the
// version-specific checkers once, at engine construction.
type Version struct {
	Major int
	Minor int
}

func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	// A bare "3" means the oldest supported 3.x runtime.
	if s == "3" {
		return Version{Major: 3, Minor: 9}, nil
	}

	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("invalid python version %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid python version %q", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid python version %q", s)
	}
	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func (v Version) Is(major, minor int) bool {
	return v.Major == major && v.Minor == minor
}

func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}
