// Package odf implements a minimal OpenDocument Text (ODT) container codec.
//
// An ODT file is a ZIP archive with a fixed internal layout: a "mimetype"
// entry that must be the first physical entry and must be stored without
// compression, a manifest under META-INF/ listing the parts present, and a
// content.xml part carrying the document body. This package synthesizes and
// reads that layout directly, without involving an office suite. It exists
// as the fallback path for tooling that normally shells out to a converter:
// when the converter is absent or fails, Write produces a container any
// standards-compliant reader will open, and Read recovers the flat text.
//
// # Basic Usage
//
// To write a document:
//
//	body := odf.Split("Hello World\nSecond paragraph")
//	err := odf.Write("out.odt", body)
//
// To read it back:
//
//	body, err := odf.Read("out.odt")
//
// Edits are expressed through the pure recombination policy:
//
//	next := odf.Apply(body, odf.EditRequest{Text: "Appendix", Anchor: odf.AnchorEnd})
//	err := odf.Write("out.odt", next)
//
// # Fidelity
//
// The codec operates on flat text only. A TextBody written by this package
// round-trips exactly, paragraph boundaries included. Reading documents
// produced by a full office suite is best effort: character content is
// recovered, styling and structure beyond paragraph breaks are not, and
// ExtractText deliberately collapses everything to space-joined text. Edits
// routed through Apply rewrite the whole body as flat text, discarding any
// rich formatting the document previously carried.
//
// # Safety
//
// Write stages the archive in a temporary file and renames it into place,
// so a failed write never leaves a partial container behind. Read enforces
// configurable [Limits] on entry counts and inflated sizes to guard against
// decompression bombs. Callers are responsible for serializing concurrent
// writers to the same path; the package takes no file locks.
package odf
