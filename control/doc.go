// File: control/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package control provides observability glue for the netbuff
// containers: a registry that snapshots container statistics on demand
// and a probe set for dumping internal state during debugging.
//
// Nothing here sits on a fast path; containers are polled, they do not
// push.
package control
