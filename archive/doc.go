// Package archive stores encoded records in zone-sharded, compressed blobs.
//
// A flush writes one generation of the archive:
//
//	ec_lattice_shard_<zone>-<gen>.jsonl   JSON-lines entries, block-compressed
//	ec_lattice_shard_<zone>-<gen>.idx     roaring64 bitmap of the godel numbers
//	MANIFEST-<gen>.json                   shard table of the generation
//	CURRENT                               name of the live manifest
//
// CURRENT is written last, so readers never observe a half-written
// generation. Zones not touched by a flush carry over from the previous
// manifest; touched zones are rewritten with the previous entries first.
//
// Any blobstore.Store works as a backend. With s3.CommitStore the CURRENT
// pointer is a DynamoDB conditional write, which turns concurrent flushes of
// the same generation into s3.ErrConcurrentModification.
package archive
