// # internal/lint/banned_test.go
package lint

import "testing"

func TestFilesystemAccessDirect(t *testing.T) {
	diags := lintSource(t, "3.13", `
import os

def cleanup(path):
    os.remove(path)
`)
	assertCodes(t, diags, "no-filesystem-access")
}

func TestFilesystemAccessModuleAlias(t *testing.T) {
	diags := lintSource(t, "3.13", `
import os as operating

def cleanup(path):
    operating.unlink(path)
`)
	assertCodes(t, diags, "no-filesystem-access")
}

func TestFilesystemAccessFromImport(t *testing.T) {
	diags := lintSource(t, "3.13", `
from os import remove

def cleanup(path):
    remove(path)
`)
	assertCodes(t, diags, "no-filesystem-access")
}

func TestFilesystemAccessAssignedAlias(t *testing.T) {
	diags := lintSource(t, "3.13", `
import os

deleter = os.remove

def cleanup(path):
    deleter(path)
`)
	assertCodes(t, diags, "no-filesystem-access")
}

func TestBareOpenIsBanned(t *testing.T) {
	diags := lintSource(t, "3.13", `
def read(path):
    with open(path) as f:
        return f.read()
`)
	assertCodes(t, diags, "no-filesystem-access")
}

func TestPathlibMethodChain(t *testing.T) {
	diags := lintSource(t, "3.13", `
from pathlib import Path

def cleanup(name):
    Path(name).unlink()
`)
	assertCodes(t, diags, "no-filesystem-access")
}

func TestShutilAndTempfile(t *testing.T) {
	diags := lintSource(t, "3.13", `
import shutil
import tempfile

def stage(src, dst):
    shutil.copytree(src, dst)
    return tempfile.mkdtemp()
`)
	assertCodes(t, diags, "no-filesystem-access", "no-filesystem-access")
}

func TestShellAccess(t *testing.T) {
	diags := lintSource(t, "3.13", `
import subprocess
import os

def run(cmd):
    subprocess.call(cmd)
    os.system(cmd)
`)
	assertCodes(t, diags, "no-shell-access", "no-shell-access")
}

func TestSubprocessPopenConstructor(t *testing.T) {
	diags := lintSource(t, "3.13", `
import subprocess

def run(cmd):
    return subprocess.Popen(cmd)
`)
	assertCodes(t, diags, "no-shell-access")
}

func TestUnrelatedCallsNotFlagged(t *testing.T) {
	diags := lintSource(t, "3.13", `
import os

def where():
    return os.path.join("a", "b")
`)
	assertCodes(t, diags)
}

func TestEachCallSiteReportedOnce(t *testing.T) {
	diags := lintSource(t, "3.13", `
import os

def cleanup(a, b):
    os.remove(a)
    os.remove(b)
`)
	assertCodes(t, diags, "no-filesystem-access", "no-filesystem-access")
}
