/*
Package filters implements the packet display-filter expression language.

A filter expression selects packets out of a decoded capture.  The input
to a compiled expression is a *packet.View, the per-packet mapping of
protocol layers to decoded fields produced by the decode package.

The simplest filter is the empty string, which compiles to an expression
matching every packet.

Expression forms:

	proto			the packet has a layer named proto
	proto.field		that layer is present and contains field
	proto.field == value	the field is present and equals value
	proto.field != value	the field is present and differs from value
	!expr			negation
	expr && expr		both sub-expressions match
	expr || expr		either sub-expression matches
	( expr )		grouping

Protocol and field names are matched case-insensitively, the way capture
tools conventionally treat them.  Comparison values are case-sensitive.

A comparison value is either a quoted string ("GET" or 'GET', no escape
processing) or a bare numeric token, which also covers dotted-quad
address literals such as 10.0.0.1.  When both the stored field and the
value parse as integers the comparison is numeric, so tcp.dstport == 443
matches whether the dissector stored the port as a number or as text.
Otherwise the comparison is an exact text match.

A comparison on an absent field is false for both == and !=.  An absent
field is never equal to anything, and never unequal to anything either;
use field presence (proto.field) when "has any value" is what is meant.

&& binds tighter than ||, both are left-associative, and ! binds tightest,
so

	a || b && c	reads as	a || (b && c)
	!a && b		reads as	(!a) && b

Parentheses may nest arbitrarily.

The language deliberately has no substring or pattern matching.  Using
contains, matches, or any other word in operator position is rejected
with UnsupportedOperatorError rather than approximated.

Compiled expressions are immutable and safe to share: one Expr may be
applied to any number of packets from any number of goroutines, and
callers that filter repeatedly with the same source are free to keep the
Expr around instead of recompiling.

Examples

	""

Matches every packet.

	ngap

Matches packets with an NGAP layer.

	sctp.dstport == 38412

Matches packets whose SCTP destination port is 38412.

	ip.src == 10.0.0.1 && (tcp || udp)

Matches TCP or UDP packets sent by 10.0.0.1.

	http.method == "POST" && !(ip.dst == 192.168.0.1)

Matches POST requests going anywhere but 192.168.0.1.
*/
package filters
