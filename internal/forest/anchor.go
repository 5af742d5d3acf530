package forest

// Kind identifies which anchor family a documentation file belongs to.
// Each kind forms its own independent coverage forest.
type Kind string

const (
	KindPrimary Kind = "primary"
	KindMirror  Kind = "mirror"
)

// AnchorFile is the identity of one documentation anchor. Symlink metadata
// is carried for display and validation only; symlinked anchors participate
// in the tree identically to regular files.
type AnchorFile struct {
	Path          string `json:"path"`
	Kind          Kind   `json:"kind"`
	IsSymlink     bool   `json:"is_symlink,omitempty"`
	SymlinkTarget string `json:"symlink_target,omitempty"`
}
