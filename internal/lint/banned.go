// # internal/lint/banned.go
package lint

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// bannedCalls is a reusable table-driven checker: the table maps a module
// path to its banned members, and an entry with no members bans calling the
// bare path itself (module-as-constructor). The table is flattened into
// fully-qualified paths once, at construction; every call node resolves and
// tests exact membership. Concrete instantiations differ only in data.
type bannedCalls struct {
	name   string
	code   string
	banned map[string]struct{}
}

func newBannedCalls(name, code string, table symbolTable) *bannedCalls {
	banned := make(map[string]struct{})
	for _, entry := range table {
		for _, member := range entry.Members {
			banned[entry.Module+"."+member] = struct{}{}
		}
		if len(entry.Members) == 0 {
			banned[entry.Module] = struct{}{}
		}
	}
	return &bannedCalls{name: name, code: code, banned: banned}
}

func (b *bannedCalls) Name() string { return b.name }

func (b *bannedCalls) Call(ctx *Context, n *sitter.Node) {
	fullName := ctx.Resolver.Resolve(n)
	if fullName == "" {
		return
	}
	if _, ok := b.banned[fullName]; ok {
		ctx.Report(b.code, n)
	}
}

var filesystemTable = symbolTable{
	// The bare open() builtin.
	{"open", nil},
	{"os", []string{
		"access",
		"chdir",
		"chflags",
		"chmod",
		"chown",
		"chroot",
		"fchdir",
		"fwalk",
		"get_exec_path",
		"getcwd",
		"getcwdb",
		"lchflags",
		"lchmod",
		"lchown",
		"link",
		"listdir",
		"lstat",
		"major",
		"makedirs",
		"minor",
		"mkdev",
		"mkdir",
		"mkfifo",
		"mknod",
		"open",
		"pathconf",
		"readlink",
		"remove",
		"rename",
		"renames",
		"replace",
		"rmdir",
		"scandir",
		"stat",
		"statvfs",
		"symlink",
		"sync",
		"unlink",
		"utime",
		"walk",
	}},
	{"pathlib.Path", []string{
		"absolute",
		"chmod",
		"cwd",
		"exists",
		"expanduser",
		"glob",
		"group",
		"hardlink_to",
		"home",
		"is_block_device",
		"is_char_device",
		"is_dir",
		"is_fifo",
		"is_file",
		"is_mount",
		"is_socket",
		"is_symlink",
		"iterdir",
		"lchmod",
		"lstat",
		"mkdir",
		"open",
		"owner",
		"read_bytes",
		"read_text",
		"readlink",
		"rename",
		"replace",
		"resolve",
		"rglob",
		"rmdir",
		"samefile",
		"stat",
		"symlink_to",
		"touch",
		"unlink",
		"walk",
		"write_bytes",
		"write_text",
	}},
	{"shutil", []string{
		"chown",
		"copy",
		"copy2",
		"copyfile",
		"copyfileobj",
		"copymode",
		"copystat",
		"copytree",
		"diskusage",
		"make_archive",
		"move",
		"rmtree",
		"unpack_archive",
		"which",
	}},
	{"tempfile", []string{
		"NamedTemporaryFile",
		"SpooledTemporaryFile",
		"TemporaryDirectory",
		"TemporaryFile",
		"gettempdir",
		"gettempdirb",
		"gettempprefix",
		"gettempprefixb",
		"mkdtemp",
		"mkstemp",
	}},
}

var shellTable = symbolTable{
	{"subprocess", []string{
		"run",
		"call",
		"check_call",
		"check_output",
	}},
	{"subprocess.Popen", nil},
	{"os", []string{
		"system",
		"popen",
		"posix_spawn",
		"posix_spawnp",
		"spawnl",
		"spawnle",
		"spawnlp",
		"spawnlpe",
		"spawnv",
		"spawnve",
		"spawnvp",
		"spawnvpe",
		"startfile",
	}},
	{"phantom_common.phproc", []string{
		"run",
	}},
	{"phantom_common.phproc.Process", nil},
}
