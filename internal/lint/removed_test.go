// # internal/lint/removed_test.go
package lint

import "testing"

func TestRemovedModuleImport(t *testing.T) {
	diags := lintSource(t, "3.9", `
import imp
`)
	assertCodes(t, diags, "no-313-removed-module")
}

func TestRemovedModuleFromImport(t *testing.T) {
	diags := lintSource(t, "3.9", `
from distutils import sysconfig
`)
	assertCodes(t, diags, "no-313-removed-module")
}

func TestRemovedMethodFromImport(t *testing.T) {
	diags := lintSource(t, "3.9", `
from ssl import wrap_socket
`)
	assertCodes(t, diags, "no-313-removed-method")
}

func TestRemovedMethodCall(t *testing.T) {
	diags := lintSource(t, "3.9", `
import ssl

def handshake(sock):
    return ssl.wrap_socket(sock)
`)
	assertCodes(t, diags, "no-313-removed-method")
}

func TestRemovedAttributeAccess(t *testing.T) {
	diags := lintSource(t, "3.9", `
import re

FLAG = re.TEMPLATE
`)
	assertCodes(t, diags, "no-313-removed-attribute")
}

func TestRemovedClassAsBase(t *testing.T) {
	diags := lintSource(t, "3.9", `
import importlib.abc

class PluginFinder(importlib.abc.Finder):
    pass
`)
	assertCodes(t, diags, "no-313-removed-class")
}

func TestRemovedClassConstructed(t *testing.T) {
	diags := lintSource(t, "3.9", `
import configparser

def load():
    return configparser.SafeConfigParser()
`)
	assertCodes(t, diags, "no-313-removed-class")
}

func TestRemovedDecorator(t *testing.T) {
	diags := lintSource(t, "3.9", `
import asyncio

@asyncio.coroutine
def fetch():
    yield
`)
	assertCodes(t, diags, "no-313-removed-decorator")
}

func TestRemovedAPIsOnlyCheckedAtTargetThreeNine(t *testing.T) {
	diags := lintSource(t, "3.13", `
import imp
from ssl import wrap_socket
`)
	assertCodes(t, diags)
}

func TestAliasedRemovedMethodResolved(t *testing.T) {
	diags := lintSource(t, "3.9", `
import ssl as secure

def handshake(sock):
    return secure.wrap_socket(sock)
`)
	assertCodes(t, diags, "no-313-removed-method")
}
