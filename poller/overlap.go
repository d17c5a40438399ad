package poller

import "fmt"

// Overlap selects what happens when a tick fires while an earlier fetch is
// still outstanding.
type Overlap int

const (
	// OverlapAllow issues every fetch and applies completions in the order
	// they complete. A slow older fetch can overwrite a newer result.
	OverlapAllow Overlap = iota
	// OverlapLatest issues every fetch but drops a completion that is older
	// than the last one applied.
	OverlapLatest
	// OverlapSkip issues nothing on a tick that finds a fetch outstanding.
	OverlapSkip
)

func (o Overlap) String() string {
	switch o {
	case OverlapAllow:
		return "allow"
	case OverlapLatest:
		return "latest"
	case OverlapSkip:
		return "skip"
	default:
		return fmt.Sprintf("overlap(%d)", int(o))
	}
}

// ParseOverlap parses "allow", "latest" or "skip".
func ParseOverlap(s string) (Overlap, error) {
	switch s {
	case "allow", "":
		return OverlapAllow, nil
	case "latest":
		return OverlapLatest, nil
	case "skip":
		return OverlapSkip, nil
	default:
		return OverlapAllow, fmt.Errorf("unknown overlap policy %q (want allow, latest or skip)", s)
	}
}
