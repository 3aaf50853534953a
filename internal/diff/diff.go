// Package diff renders git-style unified diffs between an existing output
// file and freshly converted text.
package diff

import (
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContextLines is the number of unchanged lines shown around a
// change unless WithContextLines says otherwise.
const DefaultContextLines = diff.DefaultContextLines

type options struct {
	color   bool
	newFile bool
	context int
}

type Option func(*options)

// WithColor enables ANSI colors in the output.
func WithColor() Option {
	return func(o *options) { o.color = true }
}

// WithNewFile marks the old side as missing, so the diff creates the file.
func WithNewFile() Option {
	return func(o *options) { o.newFile = true }
}

// WithContextLines sets the number of unchanged lines around a change.
// Negative values mean zero.
func WithContextLines(n int) Option {
	return func(o *options) { o.context = max(n, 0) }
}

// Unified compares from and to line by line and returns a unified diff
// labeled with path. changed is false, and text empty, when both sides are
// equal and the old side exists.
func Unified(path, from, to string, opts ...Option) (text string, changed bool, err error) {
	o := options{context: DefaultContextLines}
	for _, opt := range opts {
		opt(&o)
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 1 * time.Second
	fromRunes, toRunes, runesToLines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(fromRunes, toRunes, false), runesToLines)

	changed = o.newFile
	chunks := make([]diff.Chunk, 0, len(diffs))
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			changed = true
		}
		chunks = append(chunks, newChunkFromDiff(d))
	}
	if !changed {
		return "", false, nil
	}

	fp := &filePatch{
		to:     newDiffFile(path, to),
		chunks: chunks,
	}
	if !o.newFile {
		fp.from = newDiffFile(path, from)
	}

	var b strings.Builder
	encoder := diff.NewUnifiedEncoder(&b, o.context)
	if o.color {
		encoder.SetColor(diff.NewColorConfig())
	}
	if err := encoder.Encode(&gitDiffPatch{filePatches: []diff.FilePatch{fp}}); err != nil {
		return "", false, err
	}
	return b.String(), true, nil
}

// newDiffFile describes one side of the patch as a regular file whose hash
// is the git blob hash of content.
func newDiffFile(path, content string) *diffFile {
	return &diffFile{
		fileMode: filemode.Regular,
		relPath:  path,
		hash:     plumbing.ComputeHash(plumbing.BlobObject, []byte(content)),
	}
}

// The types below adapt diffmatchpatch output to the go-git encoder
// interfaces, after chezmoi's diff command.
type gitDiffPatch struct {
	filePatches []diff.FilePatch
	message     string
}

func (p *gitDiffPatch) FilePatches() []diff.FilePatch { return p.filePatches }
func (p *gitDiffPatch) Message() string               { return p.message }

type filePatch struct {
	// from stays an untyped nil for new files
	from, to diff.File
	chunks   []diff.Chunk
}

var _ diff.FilePatch = (*filePatch)(nil)

func (f *filePatch) Chunks() []diff.Chunk        { return f.chunks }
func (f *filePatch) Files() (from, to diff.File) { return f.from, f.to }
func (f *filePatch) IsBinary() bool              { return false }

type diffFile struct {
	fileMode filemode.FileMode
	relPath  string
	hash     plumbing.Hash
}

var _ diff.File = (*diffFile)(nil)

func (f *diffFile) Hash() plumbing.Hash     { return f.hash }
func (f *diffFile) Mode() filemode.FileMode { return f.fileMode }
func (f *diffFile) Path() string            { return f.relPath }

type diffChunk struct {
	content   string
	operation diff.Operation
}

var _ diff.Chunk = diffChunk{}

func (d diffChunk) Content() string      { return d.content }
func (d diffChunk) Type() diff.Operation { return d.operation }

// newChunkFromDiff converts a diffmatchpatch line diff into a patch chunk.
func newChunkFromDiff(d diffmatchpatch.Diff) diff.Chunk {
	var op diff.Operation
	switch d.Type {
	case diffmatchpatch.DiffInsert:
		op = diff.Add
	case diffmatchpatch.DiffDelete:
		op = diff.Delete
	default:
		op = diff.Equal
	}
	return diffChunk{content: d.Text, operation: op}
}
