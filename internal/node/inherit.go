package node

import "time"

// EffectivePriority returns n's own priority if set, else the nearest
// ancestor's.
func (n *Node) EffectivePriority() *int {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Priority != nil {
			return cur.Priority
		}
	}
	return nil
}

// EffectiveDueDate returns the minimum due_date along n's parent chain.
func (n *Node) EffectiveDueDate() *time.Time {
	return minAlongChain(n, func(c *Node) *time.Time { return c.DueDate })
}

// EffectiveReadyDate returns the minimum ready_date along n's parent chain.
func (n *Node) EffectiveReadyDate() *time.Time {
	return minAlongChain(n, func(c *Node) *time.Time { return c.ReadyDate })
}

// EffectiveVisibleDate returns the maximum visible_date along n's parent
// chain.
func (n *Node) EffectiveVisibleDate() *time.Time {
	var best *time.Time
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.VisibleDate == nil {
			continue
		}
		if best == nil || cur.VisibleDate.After(*best) {
			best = cur.VisibleDate
		}
	}
	return best
}

func minAlongChain(n *Node, get func(*Node) *time.Time) *time.Time {
	var best *time.Time
	for cur := n; cur != nil; cur = cur.Parent {
		v := get(cur)
		if v == nil {
			continue
		}
		if best == nil || v.Before(*best) {
			best = v
		}
	}
	return best
}

// EffectiveContexts returns the union of own contexts over the parent
// chain minus the union of canceled contexts over the chain.
func (n *Node) EffectiveContexts() map[string]bool {
	contexts := map[string]bool{}
	canceled := map[string]bool{}
	for cur := n; cur != nil; cur = cur.Parent {
		for c := range cur.Contexts {
			contexts[c] = true
		}
		for c := range cur.CanceledContexts {
			canceled[c] = true
		}
	}
	for c := range canceled {
		delete(contexts, c)
	}
	return contexts
}

// EffectiveFileName returns the root File ancestor's FileName.
func (n *Node) EffectiveFileName() string {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur.FileName
}

// EffectiveInbox and EffectiveWaiting implement the reserved-context
// Open Question decision: inbox/waiting are inherited by boolean OR up
// the parent chain (see DESIGN.md).
func (n *Node) EffectiveInbox() bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Inbox {
			return true
		}
	}
	return false
}

func (n *Node) EffectiveWaiting() bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Waiting {
			return true
		}
	}
	return false
}

// EffectiveBlockers returns the union of n's own blockers and every
// ancestor's blockers; an unfinished blocker anywhere up the chain blocks n.
func (n *Node) EffectiveBlockers() []string {
	var out []string
	for cur := n; cur != nil; cur = cur.Parent {
		out = append(out, cur.Blockers...)
	}
	return out
}
