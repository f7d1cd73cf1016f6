package decode

import (
	"context"
	"errors"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pktai/pktfilter/filters"
	"github.com/pktai/pktfilter/packet"
)

// writeCapture synthesizes a small pcap file: one TCP SYN to port 443
// and one UDP packet to port 2152 (GTP's well-known port).
func writeCapture(t *testing.T) string {
	t.Helper()
	is := is.New(t)

	dir, err := ioutil.TempDir("", "decode-test")
	is.NoErr(err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "two-packets.pcap")

	f, err := os.Create(path)
	is.NoErr(err)
	defer f.Close()

	w := pcapgo.NewWriter(f)
	is.NoErr(w.WriteFileHeader(65535, layers.LinkTypeEthernet))

	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0xaa, 0xbb, 0xcc, 0x00, 0x11, 0x22},
		DstMAC:       net.HardwareAddr{0xaa, 0xbb, 0xcc, 0x00, 0x11, 0x33},
		EthernetType: layers.EthernetTypeIPv4,
	}

	ts := time.Date(2020, 6, 1, 12, 30, 45, 0, time.UTC)
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}

	ip := &layers.IPv4{
		Version: 4, TTL: 64, Protocol: layers.IPProtocolTCP,
		SrcIP: net.IP{10, 0, 0, 1}, DstIP: net.IP{192, 168, 1, 9},
	}
	tcp := &layers.TCP{SrcPort: 51234, DstPort: 443, SYN: true}
	is.NoErr(tcp.SetNetworkLayerForChecksum(ip))
	buf := gopacket.NewSerializeBuffer()
	is.NoErr(gopacket.SerializeLayers(buf, opts, eth, ip, tcp))
	data := buf.Bytes()
	is.NoErr(w.WritePacket(gopacket.CaptureInfo{
		Timestamp: ts, CaptureLength: len(data), Length: len(data),
	}, data))

	ip2 := &layers.IPv4{
		Version: 4, TTL: 64, Protocol: layers.IPProtocolUDP,
		SrcIP: net.IP{10, 0, 0, 2}, DstIP: net.IP{10, 0, 0, 3},
	}
	udp := &layers.UDP{SrcPort: 40000, DstPort: 2152}
	is.NoErr(udp.SetNetworkLayerForChecksum(ip2))
	buf = gopacket.NewSerializeBuffer()
	// payload is a minimal GTPv1-U echo of nothing: version 1, G-PDU,
	// zero length, TEID 1
	is.NoErr(gopacket.SerializeLayers(buf, opts, eth, ip2, udp,
		gopacket.Payload([]byte{0x30, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})))
	data = buf.Bytes()
	is.NoErr(w.WritePacket(gopacket.CaptureInfo{
		Timestamp: ts.Add(time.Millisecond), CaptureLength: len(data), Length: len(data),
	}, data))

	return path
}

func TestFile(t *testing.T) {
	is := is.New(t)
	path := writeCapture(t)

	src := NewSource()
	views, err := src.File(context.Background(), path)
	is.NoErr(err)
	is.Equal(len(views), 2)
	is.Equal(testutil.ToFloat64(src.metrics.Decoded), 2.0)

	syn := views[0]
	is.Equal(syn.Number, 1)
	is.True(syn.HasLayer("frame"))
	is.True(syn.HasLayer("eth"))
	is.True(syn.HasLayer("ip"))
	is.True(syn.HasLayer("tcp"))
	is.True(syn.HasLayer("tls")) // port 443 labels the application layer

	v, ok := syn.Field("ip", "src")
	is.True(ok)
	is.Equal(v.Text(), "10.0.0.1")
	v, ok = syn.Field("tcp", "dstport")
	is.True(ok)
	n, ok := v.Int()
	is.True(ok)
	is.Equal(n, int64(443))
	v, ok = syn.Field("tcp", "syn")
	is.True(ok)
	is.Equal(v.Text(), "true")

	gtp := views[1]
	is.Equal(gtp.Number, 2)
	is.True(gtp.HasLayer("udp"))
	is.True(gtp.HasLayer("gtp")) // well-known port 2152
	is.True(!gtp.HasLayer("tcp"))

	v, ok = gtp.Field("frame", "protocols")
	is.True(ok)
	is.Equal(v.Text(), "eth:ip:udp:gtp")
}

func TestFileFilterRoundTrip(t *testing.T) {
	is := is.New(t)
	path := writeCapture(t)

	views, err := NewSource().File(context.Background(), path)
	is.NoErr(err)

	out, err := filters.Filter(views, `tcp.dstport == 443`)
	is.NoErr(err)
	is.Equal(len(out), 1)
	is.Equal(out[0].Number, 1)

	out, err = filters.Filter(views, `ip.src == 10.0.0.2 && udp`)
	is.NoErr(err)
	is.Equal(len(out), 1)
	is.Equal(out[0].Number, 2)
}

func TestFileErrors(t *testing.T) {
	is := is.New(t)

	_, err := NewSource().File(context.Background(), "testdata/nope.pcap")
	is.True(err != nil) // missing file

	dir, err := ioutil.TempDir("", "decode-test")
	is.NoErr(err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "capture.txt")
	is.NoErr(ioutil.WriteFile(path, []byte("not a capture"), 0600))

	_, err = NewSource().File(context.Background(), path)
	is.True(errors.Is(err, ErrUnsupportedFile))
}

// appLabel on hand-built layers, covering the SCTP ports that the pcap
// writer above can't easily synthesize.
func TestAppLabel(t *testing.T) {
	is := is.New(t)

	sctpLayer := func(dstport int64) []packet.Layer {
		return []packet.Layer{
			packet.NewLayer("ip", nil),
			packet.NewLayer("sctp", map[string]packet.Value{
				"srcport": packet.IntValue(60000),
				"dstport": packet.IntValue(dstport),
			}),
		}
	}

	is.Equal(appLabel(sctpLayer(38412)), "ngap")
	is.Equal(appLabel(sctpLayer(36412)), "s1ap")
	is.Equal(appLabel(sctpLayer(3868)), "diameter")
	is.Equal(appLabel(sctpLayer(9999)), "") // unremarkable port, no label

	// the label also matches on the source side
	reply := []packet.Layer{
		packet.NewLayer("sctp", map[string]packet.Value{
			"srcport": packet.IntValue(38412),
			"dstport": packet.IntValue(60000),
		}),
	}
	is.Equal(appLabel(reply), "ngap")
}
