package main

import (
	"fmt"
	"io"

	"github.com/pktai/pktfilter/packet"
)

const summaryFormat = "%6s  %-12s  %-15s  %-15s  %-8s  %6s  %s\n"

// renderSummaries prints the packet-list columns for the matching
// packets, one row per packet.
func renderSummaries(w io.Writer, views []*packet.View) {
	fmt.Fprintf(w, summaryFormat, "No.", "Time", "Source", "Destination", "Protocol", "Length", "Info")
	for _, v := range views {
		s := v.Summary()
		fmt.Fprintf(w, summaryFormat,
			fmt.Sprintf("%d", s.No), s.Time, s.Src, s.Dst, s.Proto,
			fmt.Sprintf("%d", s.Length), s.Info)
	}
}
