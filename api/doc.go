// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package api defines the public contracts of the netbuff container
// library: byte rings, typed queues, object pools and the shared error
// vocabulary.
//
// Concrete implementations live in core/ and pool/. Byte rings, typed
// queues and the serialization buffer are bounded and never grow
// implicitly; callers resize explicitly and handle false returns from
// Try* operations. Object pools are the exception: Acquire adds a block
// when no slot is free.
package api
