// Package runner sends prompt requests to the Anthropic Messages API and
// interprets the response segments.
//
// A response is an ordered list of segments, each text or tool_use. Nothing
// guarantees a tool_use is present or sits at a particular index, so callers
// locate invocations by scanning (FindInvocation) and treat absence as an
// ordinary outcome.
//
// Flow for a research session:
//
//	user(text) + system + tools -> assistant(text?, tool_use) -> Invoke(tool_use)
package runner
