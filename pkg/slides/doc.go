// Package slides draws the fixed 1280×720 presentation slides of a study.
//
// Every slide is a pure function of a [Projection]: the same projection
// always produces the same pixels. Slides share a header (title plus
// "municipality, state"), a brand footer and a date line, and reuse the
// text-layout and segment-rendering primitives of the chart packages.
//
// # Slides
//
// The registered slides, in deck order, are:
//
//   - archetype: archetypal profile with positive and negative points
//   - adjectives: adjectives, counter-adjectives and candidate cards
//   - profiling: hardness columns plus a treemap of population segments
//   - candidates: 2×2 candidate cards with their digital signal
//   - universe: the digital universe as one large figure
//   - block-a: Block A hardness table
//   - block-b: Block B population segments
//
// [DefaultDeck] lists the first three; [Deck] renders any ordered subset.
package slides
