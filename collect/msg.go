package collect

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/pktai/pktfilter/packet"
)

// Msg is the JSON envelope for a published packet: its listing summary,
// when it was published, and a stable ID.
type Msg struct {
	Packet packet.Summary `json:"packet"`
	Time   time.Time      `json:"time"`
	ID     string         `json:"id"`
}

// NewMsg wraps one packet view for publishing.  The ID is an fnv hash of
// the frame number and summary columns, stable for a given capture so
// downstream consumers can de-duplicate replays.
func NewMsg(v *packet.View) *Msg {
	s := v.Summary()
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s|%s|%s|%d", s.No, s.Time, s.Src, s.Dst, s.Proto, s.Length)
	return &Msg{
		Packet: s,
		Time:   time.Now().UTC(),
		ID:     fmt.Sprintf("%x", h.Sum64()),
	}
}
