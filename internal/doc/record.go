package doc

// Kind classifies a documented declaration.
type Kind string

const (
	KindVar             Kind = "var"
	KindFunc            Kind = "func"
	KindStruct          Kind = "struct"
	KindTrait           Kind = "trait"
	KindEnum            Kind = "enum"
	KindTypeEnum        Kind = "type_enum"
	KindTypeAlias       Kind = "type_alias"
	KindStrictTypeAlias Kind = "strict_type_alias"
)

// Record is one public declaration: its formatted signature plus its parsed comment.
type Record struct {
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	Kind    Kind           `json:"kind"`
	Context []Node         `json:"context"`
	Meta    *AggregateMeta `json:"meta,omitempty"`
	// Static marks constructor-like functions listed under their aggregate
	// before the instance methods.
	Static bool `json:"static,omitempty"`
}

// AggregateMeta collects what a struct-like declaration owns across a whole package.
type AggregateMeta struct {
	Traits  []string `json:"traits"`
	Methods []Record `json:"methods"`
}

// AddTrait appends label unless it is already present.
func (m *AggregateMeta) AddTrait(label string) {
	for _, t := range m.Traits {
		if t == label {
			return
		}
	}
	m.Traits = append(m.Traits, label)
}

// AddMethod appends a method record.
func (m *AggregateMeta) AddMethod(r Record) {
	m.Methods = append(m.Methods, r)
}

// Aggregate is implemented by records that may own traits and methods.
type Aggregate interface {
	AggregateName() string
	AggregateCode() string
	AggregateMeta() *AggregateMeta
}

type aggregate struct{ r *Record }

func (a aggregate) AggregateName() string         { return a.r.Name }
func (a aggregate) AggregateCode() string         { return a.r.Code }
func (a aggregate) AggregateMeta() *AggregateMeta { return a.r.Meta }

// IsAggregate reports whether records of kind k may own AggregateMeta.
func (k Kind) IsAggregate() bool {
	return k == KindStruct || k == KindStrictTypeAlias
}

// Aggregate returns the aggregate view of r, or false for kinds that own no methods.
func (r *Record) Aggregate() (Aggregate, bool) {
	if !r.Kind.IsAggregate() {
		return nil, false
	}
	return aggregate{r: r}, true
}
