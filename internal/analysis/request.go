package analysis

// Request selects between the whole-document and the offset-scoped pass
type Request interface {
	isRequest()
}

// WholeDocument requests only the whole-document symbol table
type WholeDocument struct{}

// AtOffset additionally resolves the scope enclosing a byte offset
type AtOffset struct {
	Offset int
}

func (WholeDocument) isRequest() {}
func (AtOffset) isRequest()      {}
