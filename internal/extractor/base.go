package extractor

import "docmark/internal/doc"

// Unit is one exported declaration together with the hints needed to attach
// it to its owning aggregate once the whole package has been read.
type Unit struct {
	Record doc.Record `json:"record"`
	File   string     `json:"file"`
	Line   int        `json:"line"`

	// Receiver is the base type name of a method's receiver.
	Receiver string `json:"receiver,omitempty"`
	// ResultType is the base type name of a plain function's first result.
	ResultType string `json:"result_type,omitempty"`
	// MethodNames lists the methods required by an interface.
	MethodNames []string `json:"method_names,omitempty"`
	// Embeds lists interfaces embedded in an interface.
	Embeds []string `json:"embeds,omitempty"`
}

// File is the extraction result of one source file.
type File struct {
	Path    string `json:"path"`
	Package string `json:"package"`
	Units   []Unit `json:"units"`
}
