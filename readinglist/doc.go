// Package readinglist turns a research topic and candidate article titles into
// an appended markdown record.
//
// File model:
//   - Append-only. Records are never rewritten, merged or deduplicated; the
//     same topic twice yields two headings.
//   - One record per call: a "## <topic> " heading, one bullet per resolved
//     article, then a blank-line separator. The heading is written even when
//     no title resolved.
package readinglist
