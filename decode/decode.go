// Package decode turns capture files into per-packet protocol views.
//
// It is the boundary between raw capture bytes and the rest of the
// program: everything downstream (filtering, translation, publishing)
// works on the read-only packet.View values produced here and never
// touches wire formats.
package decode

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pktai/pktfilter/packet"
)

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrUnsupportedFile indicates a capture file extension other than
	// .pcap or .pcapng.
	ErrUnsupportedFile = constError("unsupported capture file type")
)

// packetReader is the slice of the pcapgo reader types we consume, so
// pcap and pcapng files flow through the same loop.
type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// Source decodes capture files into packet views and keeps metrics about
// the decoding.
type Source struct {
	metrics *Metrics
}

// NewSource returns a ready Source.
func NewSource() *Source {
	return &Source{metrics: NewMetrics()}
}

// Metrics returns a slice of prometheus.Collector items for exposing
// decode counters via a prometheus.Registry.
func (s Source) Metrics() []prometheus.Collector { return s.metrics.List() }

// File decodes every packet in a capture file, in file order.  The file
// type is chosen by extension: .pcap or .pcapng, anything else is
// ErrUnsupportedFile.
//
// A packet that only partially decodes still yields a view with the
// layers that did decode; it is counted, logged at debug, and kept.
func (s *Source) File(ctx context.Context, path string) ([]*packet.View, error) {
	log := zerolog.Ctx(ctx).With().Str("component", "decode").Str("file", path).Logger()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture file: %w", err)
	}
	defer f.Close()

	r, err := newReader(f, path)
	if err != nil {
		return nil, err
	}

	s.metrics.Capture.WithLabelValues(filepath.Base(path), r.LinkType().String()).Set(1)

	views := []*packet.View{}
	no := 0
	for {
		data, ci, err := r.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading packet %d: %w", no+1, err)
		}
		no++

		pkt := gopacket.NewPacket(data, r.LinkType(), gopacket.Default)
		if errLayer := pkt.ErrorLayer(); errLayer != nil {
			s.metrics.Truncated.Inc()
			log.Debug().Int("no", no).Err(errLayer.Error()).Msg("packet decoded partially")
		}

		views = append(views, buildView(no, ci, pkt))
		s.metrics.Decoded.Inc()
	}

	log.Debug().Int("packets", no).Msg("capture decoded")
	return views, nil
}

func newReader(f *os.File, path string) (packetReader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pcap":
		r, err := pcapgo.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading pcap header: %w", err)
		}
		return r, nil
	case ".pcapng":
		r, err := pcapgo.NewNgReader(f, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, fmt.Errorf("reading pcapng header: %w", err)
		}
		return r, nil
	}
	return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFile)
}
