package combine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codecollector/pkg/ignore"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func relPaths(files []CollectedFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out
}

func readArtifact(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunWritesArtifact(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "import os\n\nprint(1)\n")
	writeFile(t, root, "src/B.java", "package com.x;\nimport com.y.Z;\n/* header\n comment */\nclass B {}\n")
	writeFile(t, root, "README.md", "# readme\n")
	output := filepath.Join(t.TempDir(), "out", "codebase.prompt")

	summary, err := Run(&Arguments{
		Root:         root,
		Output:       output,
		Extensions:   DefaultExtensions,
		ExcludeDirs:  DefaultExcludeDirs,
		Tree:         true,
		UseGitignore: true,
		Capture:      true,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Files)
	assert.Zero(t, summary.Placeholders)
	assert.True(t, summary.TreeIncluded)

	want := "Folder Structure (ASCII Tree):\n" +
		filepath.Base(root) + "/\n" +
		"├── src/\n" +
		"│   └── B.java\n" +
		"├── a.py\n" +
		"└── README.md\n" +
		"\n" +
		"Consolidated Code Files (Import statements excluded):\n\n" +
		"# File: a.py\n\nprint(1)\n\n" +
		"# File: src/B.java\n\nclass B {}\n\n"

	got := readArtifact(t, output)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, got, summary.Artifact)
}

func TestRunWithoutTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.ts", "import { x } from './x';\nconsole.log(x);\n")
	output := filepath.Join(t.TempDir(), "codebase.prompt")

	summary, err := Run(&Arguments{Root: root, Output: output, Extensions: []string{"ts"}}, nil)
	require.NoError(t, err)
	assert.False(t, summary.TreeIncluded)
	assert.Empty(t, summary.Artifact)

	want := "Consolidated Code Files (Import statements excluded):\n\n# File: main.ts\n\nconsole.log(x);\n\n"
	assert.Equal(t, want, readArtifact(t, output))
}

func TestRunNoFilesFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "hello\n")
	output := filepath.Join(t.TempDir(), "codebase.prompt")

	summary, err := Run(&Arguments{Root: root, Output: output, Extensions: []string{".go"}}, nil)
	require.NoError(t, err)
	assert.Zero(t, summary.Files)
	assert.Equal(t, NoFilesNotice+"\n", readArtifact(t, output))
}

func TestRunOverwritesOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x = 1\n")
	output := writeFile(t, t.TempDir(), "codebase.prompt", strings.Repeat("stale\n", 100))

	_, err := Run(&Arguments{Root: root, Output: output, Extensions: []string{".py"}}, nil)
	require.NoError(t, err)
	assert.NotContains(t, readArtifact(t, output), "stale")
}

func TestRunDoesNotCollectItsOwnOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x = 1\n")
	output := writeFile(t, root, "codebase.py", "previous run\n")

	summary, err := Run(&Arguments{Root: root, Output: output, Extensions: []string{".py"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Files)
	assert.NotContains(t, readArtifact(t, output), "# File: codebase.py")
}

func TestRunFailsWhenOutputCannotBeCreated(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x = 1\n")
	blocker := writeFile(t, t.TempDir(), "file", "")

	_, err := Run(&Arguments{Root: root, Output: filepath.Join(blocker, "codebase.prompt"), Extensions: []string{".py"}}, nil)
	require.Error(t, err)
}

func TestRunRejectsMissingRoot(t *testing.T) {
	_, err := Run(&Arguments{Root: filepath.Join(t.TempDir(), "missing")}, nil)
	require.Error(t, err)

	file := writeFile(t, t.TempDir(), "a.py", "")
	_, err = Run(&Arguments{Root: file}, nil)
	require.Error(t, err)
}

func TestCollectFilesExcludesDirectoriesAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.py", "")
	writeFile(t, root, "venv/lib/site.py", "")
	writeFile(t, root, "a/b/c/build/gen.py", "")
	writeFile(t, root, "a/b/c/real.py", "")
	writeFile(t, root, "a/venvish/ok.py", "")

	args := Arguments{ExcludeDirs: []string{"build", "venv/"}}
	files, err := CollectFiles(root, NewExtensionSet([]string{".py"}), args.ExcludeSet(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b/c/real.py", "a/venvish/ok.py", "keep.py"}, relPaths(files))
}

func TestCollectFilesHonorsNestedIgnoreFiles(t *testing.T) {
	for _, engine := range []ignore.Engine{ignore.EngineGit, ignore.EngineRegexp} {
		t.Run(string(engine), func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, root, ".gitignore", "build/\n")
			writeFile(t, root, "sub/.gitignore", "*.log\n")
			writeFile(t, root, "sub/debug.log", "")
			writeFile(t, root, "sub/app.py", "")
			writeFile(t, root, "other/debug.log", "")
			writeFile(t, root, "build/out.log", "")

			set := ignore.Load(root, nil, engine, nil)
			files, err := CollectFiles(root, NewExtensionSet([]string{".log", ".py"}), nil, set, nil)
			require.NoError(t, err)
			assert.Equal(t, []string{"other/debug.log", "sub/app.py"}, relPaths(files))
		})
	}
}

func TestCollectFilesNegationReincludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.js\n")
	writeFile(t, root, "web/.gitignore", "!keep.js\n")
	writeFile(t, root, "web/keep.js", "")
	writeFile(t, root, "web/drop.js", "")

	set := ignore.Load(root, nil, ignore.EngineGit, nil)
	files, err := CollectFiles(root, NewExtensionSet([]string{".js"}), nil, set, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"web/keep.js"}, relPaths(files))
}

func TestCollectFilesExtensionMatchIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Main.JAVA", "")
	writeFile(t, root, "types.d.ts", "")
	writeFile(t, root, "notes.txt", "")

	files, err := CollectFiles(root, NewExtensionSet([]string{"java", ".TS"}), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Main.JAVA", "types.d.ts"}, relPaths(files))
	assert.Equal(t, ".java", files[0].Ext)
}

func TestRenderTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, "b.txt", "")
	writeFile(t, root, "A.txt", "")
	writeFile(t, root, "debug.log", "")
	writeFile(t, root, "zeta/inner/x.go", "")
	writeFile(t, root, "alpha/y.go", "")
	writeFile(t, root, "build/skip.go", "")

	set := ignore.Load(root, nil, ignore.EngineGit, nil)
	tree, err := RenderTree(root, map[string]struct{}{"build": {}}, set, nil)
	require.NoError(t, err)

	want := filepath.Base(root) + "/\n" +
		"├── alpha/\n" +
		"│   └── y.go\n" +
		"├── zeta/\n" +
		"│   └── inner/\n" +
		"│       └── x.go\n" +
		"├── .gitignore\n" +
		"├── A.txt\n" +
		"└── b.txt\n"
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessSingleFilePlaceholders(t *testing.T) {
	root := t.TempDir()
	logger := zap.NewNop()

	missing := CollectedFile{Path: filepath.Join(root, "gone.py"), RelPath: "gone.py", Ext: ".py"}
	content := ProcessSingleFile(missing, 0, logger)
	assert.True(t, content.Placeholder)
	assert.True(t, strings.HasPrefix(content.Content, "<!-- Could not read file: "))

	binPath := writeFile(t, root, "blob.js", "\x00\x01\x02binary")
	content = ProcessSingleFile(CollectedFile{Path: binPath, RelPath: "blob.js", Ext: ".js"}, 0, logger)
	assert.True(t, content.Placeholder)
	assert.Equal(t, binaryPlaceholder, content.Content)

	bigPath := writeFile(t, root, "big.py", strings.Repeat("x = 1\n", 400))
	content = ProcessSingleFile(CollectedFile{Path: bigPath, RelPath: "big.py", Ext: ".py"}, 1, logger)
	assert.True(t, content.Placeholder)
	assert.Equal(t, "<!-- Skipped file larger than 1 KB -->\n", content.Content)

	content = ProcessSingleFile(CollectedFile{Path: bigPath, RelPath: "big.py", Ext: ".py"}, 0, logger)
	assert.False(t, content.Placeholder)
}

func TestWriteCombinedFileContinuesAfterPlaceholder(t *testing.T) {
	var out strings.Builder
	contents := []FileContent{
		{Path: "a.py", Content: "<!-- Could not read file: boom -->\n", Placeholder: true},
		{Path: "b.py", Content: "y = 2"},
	}
	require.NoError(t, WriteCombinedFile(&out, "", contents, zap.NewNop()))

	want := FilesHeading + "\n\n" +
		"# File: a.py\n\n<!-- Could not read file: boom -->\n\n" +
		"# File: b.py\n\ny = 2\n\n"
	assert.Equal(t, want, out.String())
}

func TestNewExtensionSet(t *testing.T) {
	set := NewExtensionSet([]string{"go", ".PY", "*.ts", " .kt ", "", "."})
	assert.Equal(t, []string{".go", ".kt", ".py", ".ts"}, set.Sorted())
	assert.True(t, set.Contains("MAIN.GO"))
	assert.False(t, set.Contains("main.gox"))
}

func TestIsBinaryContent(t *testing.T) {
	assert.False(t, isBinaryContent(nil))
	assert.False(t, isBinaryContent([]byte("plain text\nwith lines\n")))
	assert.False(t, isBinaryContent([]byte("héllo wörld")))
	assert.True(t, isBinaryContent([]byte{'a', 0, 'b'}))
	assert.True(t, isBinaryContent([]byte{1, 2, 3, 4, 5, 'a'}))
}
