// Package tables detects tabular structure in extracted page content.
//
// The Detector consumes the fragments and vector graphics collected by
// the text and graphics sinks:
//
//	det := tables.NewDetector()
//	found := det.Detect(textEx.Fragments(), gfx.Lines(), gfx.Rects())
//
// Detection combines two signals. Text fragments are clustered by
// vertical proximity and each cluster's edge alignments are tested for
// a cell lattice; drawn lines (and stroked rectangle borders) are
// grouped into rules by the GridDetector, recovering ruled tables
// whose text is too ragged to align on its own. Candidates are scored
// on grid regularity, fragment alignment, visible ruling, and cell
// occupancy, and kept above a configurable confidence threshold.
package tables
