package node

import "regexp"

var (
	sectionRe          = regexp.MustCompile(`^(=+)\s+(.*?)\s+(=+)$`)
	orderedProjectRe   = regexp.MustCompile(`^(\s*)#\s+(.*)$`)
	unorderedProjectRe = regexp.MustCompile(`^(\s*)-\s+(.*)$`)
	nextActionRe       = regexp.MustCompile(`^(\s*)@\s+(.*)$`)
	commentRe          = regexp.MustCompile(`^(\s*)\*\s+(.*)$`)
)

// ClassifyLine matches raw against the five ordered line patterns and, on
// a match, returns a freshly allocated node carrying only
// the structural fields the classifier can determine (Kind, Indent or
// HeaderDepth, Ordered) and the unprocessed text captured after the sigil.
// The caller is responsible for running the token lexer over Text and for
// setting LineInFile. ok is false for a continuation line (no pattern
// matched).
func ClassifyLine(raw string) (n *Node, ok bool) {
	if m := sectionRe.FindStringSubmatch(raw); m != nil && len(m[1]) == len(m[3]) {
		return &Node{Kind: KindSection, HeaderDepth: len(m[1]), Text: m[2]}, true
	}
	if m := orderedProjectRe.FindStringSubmatch(raw); m != nil {
		return &Node{Kind: KindProject, Ordered: true, Indent: len(m[1]), Text: m[2]}, true
	}
	if m := unorderedProjectRe.FindStringSubmatch(raw); m != nil {
		return &Node{Kind: KindProject, Ordered: false, Indent: len(m[1]), Text: m[2]}, true
	}
	if m := nextActionRe.FindStringSubmatch(raw); m != nil {
		return &Node{Kind: KindNextAction, Indent: len(m[1]), Text: m[2]}, true
	}
	if m := commentRe.FindStringSubmatch(raw); m != nil {
		return &Node{Kind: KindComment, Indent: len(m[1]), Text: m[2]}, true
	}
	return nil, false
}
