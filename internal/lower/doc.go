// Package lower rewrites record declarations into equivalent plain classes.
//
// The transform is pure: it never mutates its input and identical input
// always yields identical output. Applying it to its own output is a no-op,
// because the output is class-shaped and the transform only acts on records.
//
// Member order in the produced class:
//
//  1. pre-existing static fields (left in place)
//  2. synthesized instance fields
//  3. canonical constructor
//  4. other pre-existing constructors (left in place)
//  5. synthesized accessors
//  6. other pre-existing methods (left in place)
//  7. equals, 8. hashCode, 9. toString
//
// Synthesized members are anchored on existing members by identity, never by
// index, so earlier insertions cannot invalidate later anchors.
package lower
