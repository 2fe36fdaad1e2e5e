package rules

import "github.com/npillmayer/cascade/content"

// ScopeFunc is the registration hook of a styled block. The dispatcher
// pushes a fresh scope when it enters the block and invokes the hook with a
// chain ending at that scope; the hook registers the block's rules by
// calling Set, Show, Revoke and friends. Registration errors abort
// resolution of the whole document.
type ScopeFunc func(c Chain) error

// Styled creates a content block which brackets a style scope. Rules
// registered by setup are only visible inside the block and are released
// when the block's traversal frame ends.
func Styled(setup ScopeFunc, children ...*content.Node) *content.Node {
	return content.Scoped(setup, children...)
}
