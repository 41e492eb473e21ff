package msgpack

import "sync"

// packerPool backs the one-shot Pack function: encoding a single Value
// should not force a fresh Packer (and its backing byte slice) into
// existence on every call.
var packerPool = sync.Pool{
	New: func() any { return &Packer{} },
}
