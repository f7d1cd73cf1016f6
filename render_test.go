package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/pktai/pktfilter/packet"
	"github.com/pktai/pktfilter/testhelpers"
)

func renderView(no int, src, dst, proto string, srcport, dstport int64, length int) *packet.View {
	v := packet.NewView(
		packet.NewLayer("eth", nil),
		packet.NewLayer("ip", map[string]packet.Value{
			"src": packet.StringValue(src),
			"dst": packet.StringValue(dst),
		}),
		packet.NewLayer(proto, map[string]packet.Value{
			"srcport": packet.IntValue(srcport),
			"dstport": packet.IntValue(dstport),
		}),
	)
	v.Number = no
	v.Time = time.Date(2020, 6, 1, 12, 30, 45, (no-1)*1000000, time.UTC)
	v.Length = length
	return v
}

func TestRenderSummaries(t *testing.T) {
	views := []*packet.View{
		renderView(1, "10.0.0.1", "192.168.1.9", "tcp", 51234, 443, 74),
		renderView(2, "10.0.0.2", "10.0.0.3", "udp", 40000, 2152, 60),
	}

	buf := &bytes.Buffer{}
	renderSummaries(buf, views)

	testhelpers.CompareGolden(t, "summaries", "summaries.golden", buf.Bytes())
}

func TestRenderSummariesEmpty(t *testing.T) {
	is := is.New(t)

	buf := &bytes.Buffer{}
	renderSummaries(buf, nil)

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	is.Equal(len(lines), 1) // header only
	is.True(bytes.Contains(lines[0], []byte("Destination")))
}
