// Package policy maps caller roles to visibility and mutation rules.
// It is consulted by the aggregation engine (to decide which fields to
// compute) and by the ledger before owner-only mutations.
package policy

// Role identifies the caller's scope.
type Role string

const (
    RoleOwner   Role = "owner"
    RoleManager Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleOwner || r == RoleManager }

// Permissions is the full set of role-derived affordances.
type Permissions struct {
    // CanViewFinancials permits monetary sums in aggregates; without it
    // summaries carry counts only.
    CanViewFinancials bool
    CanDeleteParty    bool
    CanToggleStatus   bool
    CanManageParties  bool
}

// ForRole returns the permissions for a role. Unknown roles get the most
// restrictive set.
func ForRole(r Role) Permissions {
    switch r {
    case RoleOwner:
        return Permissions{
            CanViewFinancials: true,
            CanDeleteParty:    true,
            CanToggleStatus:   true,
            CanManageParties:  true,
        }
    case RoleManager:
        return Permissions{
            CanViewFinancials: false,
            CanDeleteParty:    false,
            CanToggleStatus:   false,
            CanManageParties:  true,
        }
    default:
        return Permissions{}
    }
}
