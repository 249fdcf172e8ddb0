package syntax

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// Cursor abstracts a tree walk that may cross an injection boundary
// (e.g. a fenced code block lexed by a different grammar than its
// containing document). No production implementation is provided here:
// which side of the boundary a cursor resides on after FirstChild, when
// the boundary itself sits exactly at a child's start byte, is left to
// whatever embeds this package to resolve against its own injection
// layer representation.
type Cursor interface {
	Node() tree_sitter.Node
	FirstChild() bool
	NextSibling() bool
	Parent() bool
	ResetToByteRange(start, end uint32)
	ByteRange() (start, end uint32)
}
