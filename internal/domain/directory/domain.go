package directory

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
)

type Recipient struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Role     Role      `json:"role"`
	Active   bool      `json:"active"`
}

// Index is a per-sweep snapshot of the active user base, loaded once
// so target resolution never goes back to the store.
type Index struct {
	byRole map[Role][]Recipient
	byID   map[uuid.UUID]Recipient
}

func NewIndex(recipients []Recipient) Index {
	ix := Index{
		byRole: make(map[Role][]Recipient),
		byID:   make(map[uuid.UUID]Recipient, len(recipients)),
	}
	for _, r := range recipients {
		if !r.Active {
			continue
		}
		ix.byRole[r.Role] = append(ix.byRole[r.Role], r)
		ix.byID[r.ID] = r
	}
	return ix
}

func (ix Index) ByRole(role Role) []Recipient { return ix.byRole[role] }

func (ix Index) Lookup(id uuid.UUID) (Recipient, bool) {
	r, ok := ix.byID[id]
	return r, ok
}
