// File: api/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Build-time style configuration knobs. These are process-wide and read
// once at container construction; mutate them before building any pool.

package api

// VirtualAddressBits is the number of usable low bits in a pointer,
// used by tagged-pointer packing to place the upper tag half. 56 covers
// every mainstream 64-bit platform (x86-64 uses 48, ARM64 up to 52).
var VirtualAddressBits uint = 56

// IntegrityCheck enables the object-pool back-pointer verification on
// Release and the leak diagnostic on Close.
var IntegrityCheck = true
