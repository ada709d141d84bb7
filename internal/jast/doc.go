// Package jast provides syntax tree types for the Java subset the rewriter
// operates on.
//
// This package contains type definitions only. All other internal packages
// import jast; jast imports nothing internal. This keeps the tree the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Member bodies are verbatim statement strings, never re-parsed, so
//     user-written code survives a rewrite byte-for-byte
//   - Members are referenced by pointer identity; insertion anchors are
//     member references, never list indices
//   - A Declaration is never mutated through a pointer the caller still
//     holds; transforms work on copies
package jast
