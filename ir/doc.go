// Package ir provides the document tree that templates are read into and
// written out of.
//
// # Node Structure
//
// A Node is a recursive tagged union. The Type field says which of the
// remaining fields carry the value:
//
//   - NullType: no value
//   - BoolType: Bool
//   - NumberType: Int64 or Float64, with the literal in Number
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields and Values
//
// For ObjectType nodes, Fields[i] is a string node naming the key for
// Values[i], so there are always as many fields as values. Field order is
// the order the document was written in and is preserved by every
// operation in this package.
//
// Each node records its Parent and its position there (ParentIndex,
// ParentField), which is what Node.Path reports.
//
// # Paths
//
// A Path is a chain of Field and Index steps from a root, written
// "$.a[0].b". Lookup, SetPath and UnsetPath read and modify a tree in place
// by Path; Assign merges the entries of one object into another.
//
// # Conversion
//
// FromAny and ToAny convert between nodes and the plain values produced by
// encoding/json or a YAML decoder.
package ir
