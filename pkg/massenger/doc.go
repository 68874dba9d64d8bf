// Package massenger provides message framing over a byte-oriented link.
package massenger

// A message is an address token followed by a flat list of numeric
// arguments. Two encodings share the same buffer discipline:
//
//   - ASCII: "<address> <arg1> <arg2>\n", arguments in decimal text.
//   - SLIP: "<address><raw args>" terminated by SLIP END (0xC0), with
//     END and ESC bytes inside the payload escaped.
//
// The receiver is a byte-at-a-time state machine filling a fixed-size
// buffer. It never blocks: Receive drains what the transport has and
// reports whether a frame completed. Once a frame is complete, the
// Next* readers walk its arguments in order.
//
// A Massenger is not safe for concurrent use. A receive, the argument
// reads that follow it and the next flush must be serialized by the caller.
