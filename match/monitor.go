package match

import "github.com/poiesic/intently/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and scores during a match.
type MatchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(dim int)
	EntryScored(entry *core.KnowledgeEntry, score float32)
	Finish(result *core.MatchResult)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)                     {}
func (n *noopMonitor) EntryScored(_ *core.KnowledgeEntry, _ float32) {}
func (n *noopMonitor) Finish(_ *core.MatchResult)                    {}
