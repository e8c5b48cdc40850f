package model

// Operation enumerates the remote operations that are gated by a capability
type Operation int

const (
	OpCreate Operation = iota
	OpShow
	OpList
	OpFilter
	OpSearch
	OpUpdate
	OpDestroy
	OpListIDs
	OpCount
)

func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "creatable"
	case OpShow:
		return "showable"
	case OpList:
		return "listable"
	case OpFilter:
		return "filterable"
	case OpSearch:
		return "searchable"
	case OpUpdate:
		return "updatable"
	case OpDestroy:
		return "destroyable"
	case OpListIDs:
		return "id listable"
	case OpCount:
		return "countable"
	default:
		return "unknown"
	}
}

// Capabilities declares which operations the API supports for a model. The
// zero value supports nothing.
type Capabilities struct {
	Creatable   bool
	Showable    bool
	Listable    bool
	Filterable  bool
	Searchable  bool
	Updatable   bool
	Destroyable bool
	IDListable  bool
	Countable   bool
}

func (c Capabilities) Allows(op Operation) bool {
	switch op {
	case OpCreate:
		return c.Creatable
	case OpShow:
		return c.Showable
	case OpList:
		return c.Listable
	case OpFilter:
		return c.Filterable
	case OpSearch:
		return c.Searchable
	case OpUpdate:
		return c.Updatable
	case OpDestroy:
		return c.Destroyable
	case OpListIDs:
		return c.IDListable
	case OpCount:
		return c.Countable
	}
	return false
}
