/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* Models are serialized with RLP, so big integers and addresses are stored
  without any custom codec.
* Sequences hand out dense, monotonic integer keys starting at zero.

Do not use so much reflection magic. Better do stuff compile-time static,
even if it is a bit of boilerplate: every extension wraps a Bucket in its
own type-safe bucket.
*/
package orm
