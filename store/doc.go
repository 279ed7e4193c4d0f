/*
Package store provides the key value stores the wallet state lives in.

MemStore keeps everything in memory and is what tests use. CommitStore
persists state in a tendermint database (goleveldb on disk). Both support
CacheWrap: a scratch-pad over the store that can be written back in one
batch, or discarded without leaving a trace. Every command processed by the
wallet runs inside its own cache wrap, which is what makes a failed payout
roll back the signature that triggered it.
*/
package store
