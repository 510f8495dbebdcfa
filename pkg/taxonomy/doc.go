// SPDX-License-Identifier: MPL-2.0

// Package taxonomy models a product taxonomy: a forest of categories, the
// attributes attached to them, and the values those attributes can take.
//
// A taxonomy is built in two phases. First every entity is created and
// registered in the per-build indices owned by Taxonomy, which reject
// duplicate identifiers. Then categories are linked into trees with
// Category.AddChild, which refuses attachments that would create a cycle.
// After linking, Taxonomy.Seal warms every derived cache and the structure is
// treated as read-only, so serializers can traverse it concurrently.
//
// Category identifiers encode the path from the root: a vertical has a
// two-letter id ("aa") and each level appends a numeric segment ("aa-1-2").
// Validate checks this encoding against the actual tree and reports every
// problem of a subtree at once rather than stopping at the first.
package taxonomy
