package translate

// vocabulary maps each recognized protocol word to the transport that
// carries it, which is where a "dst port N" phrase attaches.  The
// transports map to themselves; protocols with no single meaningful
// transport (or none at all) map to "".
//
// Extending the translator's reach is adding entries here.
var vocabulary = map[string]string{
	// transports
	"tcp":  "tcp",
	"udp":  "udp",
	"sctp": "sctp",

	// network and link
	"ip":   "",
	"ipv6": "",
	"icmp": "",
	"arp":  "",
	"eth":  "",

	// application, keyed by usual carrier
	"http":     "tcp",
	"tls":      "tcp",
	"ftp":      "tcp",
	"ssh":      "tcp",
	"dns":      "udp",
	"dhcp":     "udp",
	"ntp":      "udp",
	"sip":      "udp",
	"rtp":      "udp",
	"gtp":      "udp",
	"quic":     "udp",
	"ngap":     "sctp",
	"s1ap":     "sctp",
	"nas":      "sctp",
	"diameter": "sctp",
}
