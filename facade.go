// facade.go: the typed, per-client view onto a shared Core.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
)

// scratchResetEvery is the cadence at which the facade discards a
// scratch buffer instead of recycling it: a fixed, simple policy
// rather than a size-triggered one.
const scratchResetEvery = 10

// Codec converts values of type V to and from the byte payloads the
// Core stores. Both methods receive a scratch buffer they may use to
// avoid allocating on every call; neither may retain it past return.
type Codec[V any] interface {
	Serialize(value V, scratch *bytes.Buffer) ([]byte, error)
	Deserialize(data []byte, scratch *bytes.Buffer) (V, error)
}

// GobCodec is the default Codec for every V other than []byte,
// serializing values with encoding/gob. It works for any V that gob
// can encode.
type GobCodec[V any] struct{}

func (GobCodec[V]) Serialize(value V, scratch *bytes.Buffer) ([]byte, error) {
	scratch.Reset()
	if err := gob.NewEncoder(scratch).Encode(&value); err != nil {
		return nil, err
	}
	out := make([]byte, scratch.Len())
	copy(out, scratch.Bytes())
	return out, nil
}

func (GobCodec[V]) Deserialize(data []byte, scratch *bytes.Buffer) (V, error) {
	var value V
	scratch.Reset()
	scratch.Write(data)
	err := gob.NewDecoder(scratch).Decode(&value)
	return value, err
}

// ByteCodec is the identity Codec for V = []byte, and the default
// Codec for that V. The Core already
// tracks payload length, so no length prefix is needed inside the
// byte slice itself.
type ByteCodec struct{}

func (ByteCodec) Serialize(value []byte, _ *bytes.Buffer) ([]byte, error) {
	return value, nil
}

func (ByteCodec) Deserialize(data []byte, _ *bytes.Buffer) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Cache is the typed, per-client facade over a shared Core. Many
// Cache values may wrap the same Core, the way many svn_cache__t
// instances shared one membuffer_cache_t in the original; the client
// prefix is what keeps their keyspaces apart.
//
// A Cache is safe for concurrent use whenever its Core is: every
// operation draws its own scratch buffer from the pool, so no mutable
// state is shared between concurrent callers.
type Cache[K comparable, V any] struct {
	core   *Core
	prefix fingerprint
	codec  Codec[V]

	scratch sync.Pool // *bytes.Buffer, one drawn per operation
	opCount atomic.Uint64
}

// NewCache builds a Cache bound to core, namespaced by clientID (its
// digest becomes the 16-byte client prefix). A nil codec defaults to
// ByteCodec when V is []byte and to GobCodec[V] otherwise.
func NewCache[K comparable, V any](core *Core, clientID string, codec Codec[V]) *Cache[K, V] {
	if codec == nil {
		if bc, ok := any(ByteCodec{}).(Codec[V]); ok {
			codec = bc
		} else {
			codec = GobCodec[V]{}
		}
	}
	prefix, ok := core.hash.Fingerprint([]byte(clientID))
	if !ok {
		// Digest failure on construction: fall back to the zero
		// prefix. Every client that fails digesting collapses into
		// one keyspace, the same collision-as-identity tolerance the
		// key fingerprints themselves accept.
		prefix = fingerprint{}
	}
	c := &Cache[K, V]{core: core, prefix: prefix, codec: codec}
	c.scratch.New = func() interface{} { return new(bytes.Buffer) }
	return c
}

// Get looks up key, deserializing the stored payload with the Codec.
// Deserializer failures surface as a deserializer-failed error; a
// plain miss returns (zero, false, nil).
func (c *Cache[K, V]) Get(key K) (value V, found bool, err error) {
	fullKey := c.fullKey(key)
	scratch := c.getScratch()
	defer c.putScratch(scratch)

	hit, derr := c.core.Get(fullKey, func(payload []byte) error {
		v, e := c.codec.Deserialize(payload, scratch)
		if e != nil {
			return e
		}
		value = v
		return nil
	})

	if derr != nil {
		var zero V
		return zero, false, NewErrDeserializeFailed(fmt.Sprintf("%v", key), derr)
	}
	if !hit {
		var zero V
		return zero, false, nil
	}
	return value, true, nil
}

// Set stores value under key. A serializer failure leaves the cache
// unchanged and surfaces as a serializer-failed error; Serialize runs
// before core.Set is called, so the Core's lock is never taken for a
// Set whose serialization fails.
func (c *Cache[K, V]) Set(key K, value V) error {
	scratch := c.getScratch()
	defer c.putScratch(scratch)

	bytesOut, err := c.codec.Serialize(value, scratch)
	if err != nil {
		return NewErrSerializerFailed(fmt.Sprintf("%v", key), err)
	}

	c.core.Set(c.fullKey(key), bytesOut)
	return nil
}

// Iterate is not supported: the directory stores key fingerprints,
// never the original keys, so there is nothing to enumerate.
func (c *Cache[K, V]) Iterate(func(K, V) error) error {
	return NewErrUnsupported("iterate")
}

// Stats proxies to the underlying Core.
func (c *Cache[K, V]) Stats() Stats {
	return c.core.Stats()
}

func (c *Cache[K, V]) fullKey(key K) []byte {
	prefixed := make([]byte, 0, len(c.prefix)+16)
	prefixed = append(prefixed, c.prefix[:]...)
	prefixed = append(prefixed, keyToBytes(key)...)
	return prefixed
}

// getScratch draws a scratch buffer for one serializer or
// deserializer invocation.
func (c *Cache[K, V]) getScratch() *bytes.Buffer {
	buf := c.scratch.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putScratch recycles a scratch buffer, except on every
// scratchResetEvery-th operation, where the buffer is dropped so a
// scratch that grew large under a spike does not live forever. This
// bounds residual scratch memory to O(1) amortized per operation.
func (c *Cache[K, V]) putScratch(buf *bytes.Buffer) {
	if c.opCount.Add(1)%scratchResetEvery == 0 {
		return
	}
	c.scratch.Put(buf)
}

// keyToBytes renders a comparable key as bytes without allocating for
// the common scalar cases.
func keyToBytes[K comparable](key K) []byte {
	switch v := any(key).(type) {
	case string:
		return []byte(v)
	case int:
		return strconv.AppendInt(nil, int64(v), 10)
	case int32:
		return strconv.AppendInt(nil, int64(v), 10)
	case int64:
		return strconv.AppendInt(nil, v, 10)
	case uint:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint32:
		return strconv.AppendUint(nil, uint64(v), 10)
	case uint64:
		return strconv.AppendUint(nil, v, 10)
	default:
		return []byte(fmt.Sprintf("%v", key))
	}
}
