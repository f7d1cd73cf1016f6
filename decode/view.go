package decode

import (
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/pktai/pktfilter/packet"
)

// wellKnown maps transport ports to application-protocol labels, for
// protocols gopacket has no dissector for.  A match adds a presence-only
// layer so filters like `ngap` work the way capture UIs lead users to
// expect.
var wellKnown = map[string]map[int64]string{
	"sctp": {
		36412: "s1ap",
		38412: "ngap",
		3868:  "diameter",
	},
	"tcp": {
		21:   "ftp",
		22:   "ssh",
		80:   "http",
		443:  "tls",
		5060: "sip",
	},
	"udp": {
		123:  "ntp",
		2152: "gtp",
		5060: "sip",
	},
}

// buildView flattens one decoded packet into a protocol→field view.  The
// field names follow the usual capture-tool spelling (ip.src, tcp.dstport)
// so filter expressions read naturally.
func buildView(no int, ci gopacket.CaptureInfo, pkt gopacket.Packet) *packet.View {
	decoded := []packet.Layer{}

	for _, l := range pkt.Layers() {
		switch t := l.(type) {
		case *layers.Ethernet:
			decoded = append(decoded, packet.NewLayer("eth", map[string]packet.Value{
				"src":  packet.StringValue(t.SrcMAC.String()),
				"dst":  packet.StringValue(t.DstMAC.String()),
				"type": packet.StringValue(t.EthernetType.String()),
			}))
		case *layers.ARP:
			decoded = append(decoded, packet.NewLayer("arp", map[string]packet.Value{
				"opcode": packet.IntValue(int64(t.Operation)),
			}))
		case *layers.IPv4:
			decoded = append(decoded, packet.NewLayer("ip", map[string]packet.Value{
				"src":   packet.StringValue(t.SrcIP.String()),
				"dst":   packet.StringValue(t.DstIP.String()),
				"ttl":   packet.IntValue(int64(t.TTL)),
				"proto": packet.StringValue(strings.ToLower(t.Protocol.String())),
				"len":   packet.IntValue(int64(t.Length)),
			}))
		case *layers.IPv6:
			decoded = append(decoded, packet.NewLayer("ipv6", map[string]packet.Value{
				"src":  packet.StringValue(t.SrcIP.String()),
				"dst":  packet.StringValue(t.DstIP.String()),
				"nxt":  packet.StringValue(strings.ToLower(t.NextHeader.String())),
				"hlim": packet.IntValue(int64(t.HopLimit)),
			}))
		case *layers.TCP:
			decoded = append(decoded, packet.NewLayer("tcp", map[string]packet.Value{
				"srcport": packet.IntValue(int64(t.SrcPort)),
				"dstport": packet.IntValue(int64(t.DstPort)),
				"seq":     packet.IntValue(int64(t.Seq)),
				"syn":     packet.BoolValue(t.SYN),
				"ack":     packet.BoolValue(t.ACK),
				"fin":     packet.BoolValue(t.FIN),
				"rst":     packet.BoolValue(t.RST),
			}))
		case *layers.UDP:
			decoded = append(decoded, packet.NewLayer("udp", map[string]packet.Value{
				"srcport": packet.IntValue(int64(t.SrcPort)),
				"dstport": packet.IntValue(int64(t.DstPort)),
				"length":  packet.IntValue(int64(t.Length)),
			}))
		case *layers.SCTP:
			decoded = append(decoded, packet.NewLayer("sctp", map[string]packet.Value{
				"srcport": packet.IntValue(int64(t.SrcPort)),
				"dstport": packet.IntValue(int64(t.DstPort)),
			}))
		case *layers.ICMPv4:
			decoded = append(decoded, packet.NewLayer("icmp", map[string]packet.Value{
				"type": packet.IntValue(int64(t.TypeCode.Type())),
				"code": packet.IntValue(int64(t.TypeCode.Code())),
			}))
		case *layers.DNS:
			fields := map[string]packet.Value{
				"id": packet.IntValue(int64(t.ID)),
				"qr": packet.BoolValue(t.QR),
			}
			if len(t.Questions) > 0 {
				fields["qname"] = packet.StringValue(string(t.Questions[0].Name))
			}
			decoded = append(decoded, packet.NewLayer("dns", fields))
		}
	}

	if label := appLabel(decoded); label != "" && !hasLayer(decoded, label) {
		decoded = append(decoded, packet.NewLayer(label, nil))
	}

	names := make([]string, len(decoded))
	for i, l := range decoded {
		names[i] = l.Name()
	}
	frame := packet.NewLayer("frame", map[string]packet.Value{
		"number":    packet.IntValue(int64(no)),
		"len":       packet.IntValue(int64(ci.Length)),
		"protocols": packet.StringValue(strings.Join(names, ":")),
	})

	v := packet.NewView(append([]packet.Layer{frame}, decoded...)...)
	v.Number = no
	v.Time = ci.Timestamp
	v.Length = ci.Length
	return v
}

// appLabel names the application protocol implied by a well-known port
// on either side of the transport layer, or "" when none applies.
func appLabel(decoded []packet.Layer) string {
	for _, l := range decoded {
		ports, ok := wellKnown[l.Name()]
		if !ok {
			continue
		}
		for _, f := range []string{"dstport", "srcport"} {
			v, ok := l.Field(f)
			if !ok {
				continue
			}
			if n, ok := v.Int(); ok {
				if label, ok := ports[n]; ok {
					return label
				}
			}
		}
	}
	return ""
}

func hasLayer(decoded []packet.Layer, name string) bool {
	for _, l := range decoded {
		if l.Name() == name {
			return true
		}
	}
	return false
}
