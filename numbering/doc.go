// Package numbering resolves list and outline numbering into concrete labels.
//
// Word-processing documents describe numbering in two layers. An abstract
// numbering ([AbstractNumbering]) defines per-level formatting rules: the
// start value, the number format, the text pattern ("%1.%2.") and the
// suffix. A numbering instance ([NumberingInstance]) is what paragraphs
// reference; it instantiates one abstract numbering and may override the
// start value or the whole definition of individual levels.
//
// # Basic Usage
//
// Load the definitions once and render labels in document order:
//
//	res, err := numbering.Load(defs)
//	if err != nil {
//	    return err
//	}
//	state := numbering.NewCounterState()
//	for _, p := range paragraphs {
//	    label, err := res.RenderLabel(state, p.NumID, p.Level)
//	    if err != nil {
//	        continue // render without a label
//	    }
//	    fmt.Println(label.WithSuffix() + p.Text)
//	}
//
// # Restart Semantics
//
// Using level L of an instance resets the counters of every deeper level of
// that instance, so nested lists restart at their own start value. The
// w:lvlRestart rule of a deeper level ([LevelDefinition.Restart]) can narrow
// or disable this.
//
// # Style Links
//
// An abstract numbering with a numStyleLink takes its level formatting from
// the numbering behind that style: either an abstract in the same registry
// whose styleLink names the style, or whatever a [StyleLookup] passed with
// [WithStyleLookup] reports.
//
// # Concurrency
//
// [Registry], [InstanceTable] and [Resolver] are immutable and may be shared.
// A [CounterState] belongs to a single render pass.
package numbering
