// # internal/lint/classmethod_test.go
package lint

import "testing"

func TestChainedClassmethodProperty(t *testing.T) {
	diags := lintSource(t, "3.13", `
class Asset:
    @classmethod
    @property
    def kind(cls):
        return "asset"
`)
	assertCodes(t, diags, "no-chained-classmethod")
}

func TestChainedClassmethodOrderIrrelevant(t *testing.T) {
	diags := lintSource(t, "3.13", `
class Asset:
    @property
    @classmethod
    def kind(cls):
        return "asset"
`)
	assertCodes(t, diags, "no-chained-classmethod")
}

func TestPlainClassmethodAllowed(t *testing.T) {
	diags := lintSource(t, "3.13", `
class Asset:
    @classmethod
    def create(cls):
        return cls()
`)
	assertCodes(t, diags)
}

func TestClassmethodWithNonDescriptorDecorator(t *testing.T) {
	diags := lintSource(t, "3.13", `
class Asset:
    @classmethod
    @logged
    def create(cls):
        return cls()
`)
	assertCodes(t, diags)
}

func TestChainedClassmethodGatedByVersion(t *testing.T) {
	diags := lintSource(t, "3.9", `
class Asset:
    @classmethod
    @property
    def kind(cls):
        return "asset"
`)
	assertCodes(t, diags)
}
