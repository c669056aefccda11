// Package text assembles plain text from the glyph events an
// interpreter emits while processing a page.
//
// The [Extractor] implements interpreter.EventSink. Wire it into an
// engine, process a page, and read the result:
//
//	ex := text.NewExtractor()
//	it := interpreter.New(ex)
//	operators.RegisterStandard(it)
//	if err := it.ProcessPage(page); err != nil {
//		return err
//	}
//	fmt.Println(ex.Text())
//
// Fragments carry device-space positions, so line grouping and word
// spacing work on what a reader would see rather than on the order
// operators appeared in the stream. Right-to-left runs are detected
// per line with [DetectDirection] and reordered before assembly.
package text
