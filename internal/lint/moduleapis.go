// # internal/lint/moduleapis.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/phantomcyber/soar-app-linter/internal/pyast"
)

const (
	phantomModule      = "phantom"
	playbookSubmodule  = "rules"
	phEngineSubmodule  = "ph_engine"
	playbookModulePath = phantomModule + "." + playbookSubmodule
	phEngineModulePath = phantomModule + "." + phEngineSubmodule
)

// Playbook APIs that are neither REST based nor backed by ph_engine; safe
// to call at import time.
var allowlistAPIs = []string{
	"address_in_network",
	"build_phantom_rest_url",
	"concatenate",
	"get_base_url",
	"get_default_rest_headers",
	"get_phantom_home",
	"get_rest_base_url",
	"parse_errors",
	"parse_results",
	"parse_success",
	"print_errors",
	"render_template",
	"valid_ip",
	"valid_net",
}

// moduleScopeAPIs flags playbook API calls at module level. Module-level
// code runs at import time, outside any playbook run, where these APIs
// have undefined behavior.
type moduleScopeAPIs struct {
	playbookAliases map[string]struct{}
	phEngineAliases map[string]struct{}
	playbookModules map[string]struct{}
	phEngineModules map[string]struct{}
}

func newModuleScopeAPIs() *moduleScopeAPIs {
	return &moduleScopeAPIs{
		playbookAliases: make(map[string]struct{}),
		phEngineAliases: make(map[string]struct{}),
		playbookModules: map[string]struct{}{playbookModulePath: {}},
		phEngineModules: map[string]struct{}{phEngineModulePath: {}},
	}
}

func (m *moduleScopeAPIs) Name() string { return "no-global-playbook-apis" }

func (m *moduleScopeAPIs) Import(ctx *Context, n *sitter.Node, names []pyast.ImportName) {
	for _, name := range names {
		// "import phantom as p" makes p.rules and p.ph_engine restricted too.
		if name.Name == phantomModule && name.Alias != "" {
			m.playbookModules[name.Alias+"."+playbookSubmodule] = struct{}{}
			m.phEngineModules[name.Alias+"."+phEngineSubmodule] = struct{}{}
		}
		if name.Name == playbookModulePath && name.Alias != "" {
			m.playbookAliases[name.Alias] = struct{}{}
		}
		if name.Name == phEngineModulePath && name.Alias != "" {
			m.phEngineAliases[name.Alias] = struct{}{}
		}
	}
}

func (m *moduleScopeAPIs) ImportFrom(ctx *Context, n *sitter.Node, module string, names []pyast.ImportName) {
	if module != phantomModule {
		return
	}
	for _, name := range names {
		if name.Name == playbookSubmodule {
			m.playbookAliases[name.Local()] = struct{}{}
		}
		if name.Name == phEngineSubmodule {
			m.phEngineAliases[name.Local()] = struct{}{}
		}
	}
}

// Call matches the receiver by its literal source text, so that
// "p.rules.act(...)" is caught whenever p aliases phantom.
func (m *moduleScopeAPIs) Call(ctx *Context, n *sitter.Node) {
	if !ModuleLevel(n) {
		return
	}
	callee := pyast.Callee(n)
	if callee == nil || callee.Kind() != pyast.KindAttribute {
		return
	}
	object, attr := pyast.AttributeParts(callee)
	if object == nil || attr == nil {
		return
	}

	receiver := ctx.Tree.Text(object)
	attrName := ctx.Tree.Text(attr)

	if m.restricted(receiver, m.phEngineModules, m.phEngineAliases) {
		ctx.Report("no-global-playbook-apis", n, ctx.Tree.Text(callee))
	}
	if m.restricted(receiver, m.playbookModules, m.playbookAliases) {
		if !contains(allowlistAPIs, attrName) {
			ctx.Report("no-global-playbook-apis", n, ctx.Tree.Text(callee))
		}
	}
}

func (m *moduleScopeAPIs) restricted(receiver string, modules, aliases map[string]struct{}) bool {
	if _, ok := modules[receiver]; ok {
		return true
	}
	_, ok := aliases[receiver]
	return ok
}
