// Package rules holds the product policy of the validation engine, kept out
// of the scanning loops so it can be tested and extended independently.
//
// Two things live here:
//
//   - Policy: every tunable threshold (grid pitch, overlap epsilon, touch
//     margin, connector tolerance, placement padding) as a named configuration
//     constant with a TOML-loadable override. These values drifted across
//     product revisions; naming them keeps the pipeline's logic stable while
//     the numbers move.
//
//   - Table: the declarative pair-exception table consulted during overlap
//     scanning - which element type pairs may interpenetrate freely, and which
//     form tolerant shallow connections instead of crashes. Rules are pure
//     predicates over (type, type), evaluated symmetrically, first match wins.
//
// The type-set predicates (Solid, Navigable, MustBeOnRoad, MustBeOffRoad)
// define which elements each validation pass applies to; their membership is
// policy, not geometry.
package rules
