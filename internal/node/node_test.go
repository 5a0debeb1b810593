package node

import "testing"

func TestCanContain(t *testing.T) {
	tests := []struct {
		name string
		p    *Node
		c    *Node
		want bool
	}{
		{"file contains section", &Node{Kind: KindFile}, &Node{Kind: KindSection}, true},
		{"section contains project", &Node{Kind: KindSection}, &Node{Kind: KindProject}, true},
		{"project contains nextaction", &Node{Kind: KindProject}, &Node{Kind: KindNextAction}, true},
		{"nextaction contains comment", &Node{Kind: KindNextAction}, &Node{Kind: KindComment}, true},
		{"nextaction cannot contain nextaction", &Node{Kind: KindNextAction}, &Node{Kind: KindNextAction}, false},
		{"file cannot contain file", &Node{Kind: KindFile}, &Node{Kind: KindFile}, false},
		{"section nests by deeper header depth", &Node{Kind: KindSection, HeaderDepth: 1}, &Node{Kind: KindSection, HeaderDepth: 2}, true},
		{"section rejects equal header depth", &Node{Kind: KindSection, HeaderDepth: 2}, &Node{Kind: KindSection, HeaderDepth: 2}, false},
		{"project nests by deeper indent", &Node{Kind: KindProject, Indent: 0}, &Node{Kind: KindProject, Indent: 2}, true},
		{"project rejects equal indent", &Node{Kind: KindProject, Indent: 2}, &Node{Kind: KindProject, Indent: 2}, false},
		{"comment nests by deeper indent", &Node{Kind: KindComment, Indent: 2}, &Node{Kind: KindComment, Indent: 4}, true},
		{"comment cannot contain nextaction", &Node{Kind: KindComment}, &Node{Kind: KindNextAction}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.CanContain(tt.c); got != tt.want {
				t.Errorf("CanContain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectivePriority(t *testing.T) {
	two := 2
	root := &Node{Kind: KindProject, Priority: &two}
	child := &Node{Kind: KindNextAction, Parent: root}
	if got := child.EffectivePriority(); got == nil || *got != 2 {
		t.Errorf("EffectivePriority() = %v, want 2", got)
	}
}

func TestEffectiveContexts(t *testing.T) {
	root := &Node{Kind: KindProject, Contexts: map[string]bool{"home": true, "phone": true}}
	child := &Node{Kind: KindNextAction, Parent: root, CanceledContexts: map[string]bool{"phone": true}}
	got := child.EffectiveContexts()
	if !got["home"] || got["phone"] {
		t.Errorf("EffectiveContexts() = %v, want {home} only", got)
	}
}

func TestEffectiveInboxWaitingOR(t *testing.T) {
	root := &Node{Kind: KindProject, Waiting: true}
	child := &Node{Kind: KindNextAction, Parent: root}
	if !child.EffectiveWaiting() {
		t.Error("EffectiveWaiting() = false, want true (inherited from parent)")
	}
	if child.EffectiveInbox() {
		t.Error("EffectiveInbox() = true, want false")
	}
}
