/*
Package domain contains the core vocabulary shared by every layer of espalier.

It defines the Value variant carried through transformer pipelines, the error
taxonomy raised by the binding lifecycle, and the hook stages a node fires
while processing data. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Value: A tagged variant (Null, Scalar, Structured, Opaque) representing
    data in any of a node's three representations.
  - Structured: An insertion-ordered string-to-Value mapping used for
    compound data.
  - Stage: A point in the set-value or bind pipeline where hooks fire.
  - Constraint: A shape check applied to presentation values.
*/
package domain
