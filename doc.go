// Package inject fills templates: documents in which some positions are
// marked as placeholders for named refs.
//
// # Markers
//
// With the default tokens a template can contain
//
//	{"<i>": "ref"}          anywhere a value can appear; the whole object
//	                        is replaced by the value of ref
//	{"<i>:name": "ref"}     inside an object; becomes name: <value of ref>
//	{"<...>": "ref"}        inside an object; the entries of the object
//	                        value of ref are merged into the enclosing
//	                        object, overriding same named entries
//
// The tokens can be changed with KeyPrefix, MergeToken and ItemToken.
// An object with more entries than just the item token is an ordinary
// object, not a placeholder.
//
// # Injecting
//
// Build indexes a copy of the template. Inject resolves markers against
// that copy, which the Injector keeps: each call changes it and returns an
// independent snapshot. Refs left unresolved by one call can be supplied by
// a later one, so a template can be filled in over several calls:
//
//	inj, _ := inject.Build(tmpl)
//	inj.Inject(inject.Context{"a": a}, inject.Only("a"))
//	doc, _ := inj.Inject(inject.Context{"b": b}, inject.Only("b"))
//
// InjectOn resolves the same markers in a document supplied by the caller,
// which must have the template's shape. It changes that document in place
// and returns a snapshot of it; the Injector's own copy is not touched.
//
// # Total mode
//
// By default (Total) every ref is resolved. A ref the context has no value
// for is reported to the diagnostics handler, and its marker is removed
// regardless: total mode deletes markers it cannot fill. Use FailUnresolved
// to refuse such calls instead, or Only, OnlyPresent, Omit and When to
// resolve a subset.
//
// # Concurrency
//
// Calls on one Injector are serialized. A document passed to InjectOn
// belongs to the caller, who must not use it concurrently with the call.
package inject
