// # internal/lint/diagnostics.go
package lint

import (
	"fmt"
	"sort"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q", s)
}

// Message describes one diagnostic kind: a pylint-style numeric ID, a
// symbolic code, and a template rendered with the diagnostic's arguments.
type Message struct {
	ID       string
	Code     string
	Template string
	Help     string
}

// Severity derives from the ID prefix: I = info, W = warning, E/F = error.
func (m Message) Severity() Severity {
	switch m.ID[0] {
	case 'I':
		return SeverityInfo
	case 'W':
		return SeverityWarning
	}
	return SeverityError
}

const productName = "Splunk SOAR"

var messages = map[string]Message{
	"no-sleeps": {
		ID:       "W0001",
		Code:     "no-sleeps",
		Template: "Using the sleep function is not recommended.",
		Help:     "Using the sleep function is not recommended.",
	},
	"no-infinite-loops": {
		ID:   "W0002",
		Code: "no-infinite-loops",
		Template: "No break or return condition was identified for this loop. " +
			"Please check the loop for a valid break or return to avoid an infinite loop.",
		Help: "No break or return condition was identified for this loop.",
	},
	"not-recommended-libraries-requests": {
		ID:   "W0003",
		Code: "not-recommended-libraries-requests",
		Template: "Using the requests library is not recommended. " +
			"Where possible, use the " + productName + " HTTP app instead.",
		Help: "Using the requests library is not recommended.",
	},
	"not-recommended-libraries-lxml": {
		ID:   "W0004",
		Code: "not-recommended-libraries-lxml",
		Template: "Using the lxml library is not recommended. Where possible, " +
			"use another library, such as html5lib or html.parser instead.",
		Help: "Using the lxml library is not recommended.",
	},
	"no-lxml": {
		ID:   "W0005",
		Code: "no-lxml",
		Template: "Using the lxml library with BeautifulSoup may cause problems in playbooks. " +
			"Where possible, use another library, such as html5lib or html.parser instead.",
		Help: "Using the lxml library with BeautifulSoup may cause problems in playbooks.",
	},
	"no-filesystem-access": {
		ID:       "W0006",
		Code:     "no-filesystem-access",
		Template: "Accessing the filesystem is not recommended.",
		Help:     "Accessing the filesystem is not recommended.",
	},
	"no-shell-access": {
		ID:       "W0007",
		Code:     "no-shell-access",
		Template: "Shell access is not recommended.",
		Help:     "Shell access is not recommended.",
	},
	"not-recommended-libraries-psycopg2": {
		ID:   "W0008",
		Code: "not-recommended-libraries-psycopg2",
		Template: "Using the psycopg2 library is not recommended. " +
			"Where possible, use the SOAR API instead.",
		Help: "Using the psycopg2 library is not recommended.",
	},
	"no-global-updates": {
		ID:   "E0006",
		Code: "no-global-updates",
		Template: `Updating global variable "%s" once created is not allowed, ` +
			"as it leads to undefined behavior within playbook runs.",
		Help: "Used when a global variable is updated after its initial creation.",
	},
	"no-global-playbook-apis": {
		ID:   "E0007",
		Code: "no-global-playbook-apis",
		Template: `Usage of playbook API "%s" in global scope is not allowed, ` +
			"as it leads to undefined behavior within playbook runs.",
		Help: "Used when a playbook API is called within global scope.",
	},
	"consider-random-sample-sequence": {
		ID:   "I9900",
		Code: "consider-random-sample-sequence",
		Template: `The "population" parameter of "random.sample()" must be a sequence (e.g. a list) on Python 3.13. ` +
			"On Python 3.9, non-sequences (e.g. a set) were automatically converted to a list, but on Python 3.13 " +
			"will raise a TypeError. Please confirm your inputs are correct on migration to Python 3.13.",
		Help: "Warns about potential issues with random.sample() usage.",
	},
	"consider-random-randrange-integer-args": {
		ID:   "I9901",
		Code: "consider-random-randrange-integer-args",
		Template: `Arguments to "random.randrange()" must be ints on Python 3.13. ` +
			"On Python 3.9, non-integers (e.g floats) were automatically converted an int, but on Python 3.13 " +
			"will raise a TypeError. Please confirm your inputs are correct on migration to Python 3.13.",
		Help: "Warns about potential issues with random.randrange() usage.",
	},
	"no-random-shuffle-random-param": {
		ID:   "W9902",
		Code: "no-random-shuffle-random-param",
		Template: `Stop using the parameter "random" of "random.shuffle()" to aid in migration ` +
			"to Python 3.13 where it is removed.",
		Help: "Warns about issues with random.shuffle() usage.",
	},
	"no-chained-classmethod": {
		ID:   "E9903",
		Code: "no-chained-classmethod",
		Template: "Chaining classmethod descriptors are deprecated. " +
			`Consider using __wrapped__ instead of chaining "%s".`,
		Help: "Used when chained classmethod descriptors are detected.",
	},
	"no-313-removed-method": {
		ID:       "W9904",
		Code:     "no-313-removed-method",
		Template: `Stop using method "%s" from library "%s" to aid in migration to Python 3.13 where it is removed.`,
		Help:     "Used when a Python 3.13 unsupported method is detected.",
	},
	"no-313-removed-module": {
		ID:       "W9905",
		Code:     "no-313-removed-module",
		Template: `Stop using module "%s" to aid in migration to Python 3.13 where it is removed.`,
		Help:     "Used when a Python 3.13 removed module is detected in the imports.",
	},
	"no-313-removed-attribute": {
		ID:       "W9906",
		Code:     "no-313-removed-attribute",
		Template: `Stop using attribute "%s" from module "%s" to aid in migration to Python 3.13 where it is removed.`,
		Help:     "Used when a Python 3.13 removed attribute is detected.",
	},
	"no-313-removed-class": {
		ID:       "W9907",
		Code:     "no-313-removed-class",
		Template: `Stop using class "%s" from module "%s" to aid in migration to Python 3.13 where it is removed.`,
		Help:     "Used when a Python 3.13 removed class is detected.",
	},
	"no-313-removed-decorator": {
		ID:       "W9908",
		Code:     "no-313-removed-decorator",
		Template: `Stop using decorator "%s" from module "%s" to aid in migration to Python 3.13 where it is removed.`,
		Help:     "Used when a Python 3.13 removed decorator is detected.",
	},
}

func MessageFor(code string) (Message, bool) {
	m, ok := messages[code]
	return m, ok
}

// AllMessages returns the registry sorted by ID, for rule tables in
// structured reports.
func AllMessages() []Message {
	out := make([]Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Diagnostic is one finding: a symbolic code, where it was found, and the
// arguments for the message template. Multiplicities are preserved; the
// engine never deduplicates.
type Diagnostic struct {
	Code     string
	Location pyast.Location
	Args     []string
}

func (d Diagnostic) Message() Message {
	m, ok := messages[d.Code]
	if !ok {
		return Message{ID: "F0001", Code: d.Code, Template: d.Code}
	}
	return m
}

func (d Diagnostic) Severity() Severity {
	return d.Message().Severity()
}

// Render fills the message template with the diagnostic's arguments.
func (d Diagnostic) Render() string {
	m := d.Message()
	if len(d.Args) == 0 {
		return m.Template
	}
	args := make([]any, len(d.Args))
	for i, a := range d.Args {
		args[i] = a
	}
	return fmt.Sprintf(m.Template, args...)
}
