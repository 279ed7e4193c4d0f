/*
Package vault defines the common interfaces used to tie together the
subpackages of a threshold-approval wallet, as well as implementations of
some of the simpler components (when interfaces would be too much
overhead).

A wallet is held jointly by a fixed set of owners. Any owner may propose an
outbound transfer, and the transfer is only paid out once enough distinct
owners approved it. The engine lives in x/multisig, the funds it moves are
held by x/cash and the app package glues both into a single service object
processing one command at a time.

We pass context through context.Context between app, middleware, and
handlers. To do so, vault defines some common keys to store info, such as
the logger. Each extension, such as x, may add its own keys to enrich the
context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package vault
