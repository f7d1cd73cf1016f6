package packet

import (
	"fmt"
	"strings"
)

// Summary is the one-line listing form of a packet, in the column order
// used by capture UIs: No., Time, Source, Destination, Protocol, Length,
// Info.
type Summary struct {
	No     int    `json:"no"`
	Time   string `json:"time"`
	Src    string `json:"src"`
	Dst    string `json:"dst"`
	Proto  string `json:"proto"`
	Length int    `json:"length"`
	Info   string `json:"info"`
}

// transports are the layers whose ports make a useful Info column.
var transports = []string{"tcp", "udp", "sctp"}

// Summary derives the listing row for a view.  Source and destination
// prefer the network layer and fall back to link addresses; the protocol
// column is the highest decoded layer.
func (v *View) Summary() Summary {
	s := Summary{
		No:     v.Number,
		Length: v.Length,
	}
	if !v.Time.IsZero() {
		s.Time = v.Time.Format("15:04:05.000")
	}

	for _, name := range []string{"ip", "ipv6", "eth"} {
		l, ok := v.Layer(name)
		if !ok {
			continue
		}
		if src, ok := l.Field("src"); ok {
			s.Src = src.Text()
		}
		if dst, ok := l.Field("dst"); ok {
			s.Dst = dst.Text()
		}
		break
	}

	s.Proto = strings.ToUpper(v.highestLayer())
	s.Info = s.Proto
	for _, t := range transports {
		l, ok := v.Layer(t)
		if !ok {
			continue
		}
		sp, spok := l.Field("srcport")
		dp, dpok := l.Field("dstport")
		if spok && dpok {
			s.Info = fmt.Sprintf("%s %s -> %s", s.Proto, sp.Text(), dp.Text())
		}
		break
	}
	return s
}

// highestLayer names the last decoded protocol, skipping the frame
// pseudo-layer.
func (v *View) highestLayer() string {
	for i := len(v.layers) - 1; i >= 0; i-- {
		if strings.ToLower(v.layers[i].name) != "frame" {
			return v.layers[i].name
		}
	}
	return ""
}
