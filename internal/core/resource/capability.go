package resource

import "strings"

// Capability is a set of CRUD operations a handler supports.
type Capability uint8

const (
	CapList Capability = 1 << iota
	CapRetrieve
	CapCreate
	CapUpdate
	CapDelete
)

const (
	ReadOnly = CapList | CapRetrieve
	// Mutable covers kinds that can be created and removed but never edited in place.
	Mutable = ReadOnly | CapCreate | CapDelete
	Full    = Mutable | CapUpdate
)

func (c Capability) Has(other Capability) bool {
	return c&other == other
}

func (c Capability) String() string {
	names := []string{}
	for _, n := range []struct {
		cap  Capability
		name string
	}{
		{CapList, "list"},
		{CapRetrieve, "retrieve"},
		{CapCreate, "create"},
		{CapUpdate, "update"},
		{CapDelete, "delete"},
	} {
		if c.Has(n.cap) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Retrieval selects how RetrieveObject resolves a single object.
type Retrieval int

const (
	// RetrieveDirect calls the definition's Get with the lookup value.
	RetrieveDirect Retrieval = iota
	// RetrieveFilteredList scans ListObjects for a matching identifier.
	RetrieveFilteredList
	// RetrieveSynthetic returns the definition's synthetic record.
	RetrieveSynthetic
)

func (r Retrieval) String() string {
	switch r {
	case RetrieveDirect:
		return "direct"
	case RetrieveFilteredList:
		return "filtered-list"
	case RetrieveSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}
