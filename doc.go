package xsdform

// Package xsdform provides:
//
// - Typed, data-bindable fields derived from XML Schema attribute and element declarations
// - Reading and writing field values against attribute or text nodes of an XML document
// - Declarative UI-control descriptors for dynamic form front-ends
// - A stable error model via Issues plus StructuralError and InvalidOutcomeValueError
//
// Design policy:
// - Keep only the error model in the root package; fields live under field/, attribute sets under outcome/.
// - The schema model is in schema/, the XSD loader under source/xsd, documents under document/.
// - The CLI lives in cmd/xsdform and the HTTP surface in formapi/.
//
// Typical usage:
//
//	set, err := xsd.Load(data)
//	ct, _ := set.ComplexType("OrderType")
//	attrs := outcome.NewAttributeList(ct, outcome.Options{})
//
//	doc := document.New("order")
//	attrs.CreateDefaults(doc, doc.Root())
//	attrs.PruneOptionalEmpties()
//	out, err := doc.Marshal()
