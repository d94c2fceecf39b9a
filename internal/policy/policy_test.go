package policy

import "testing"

func TestForRole(t *testing.T) {
    owner := ForRole(RoleOwner)
    if !owner.CanViewFinancials || !owner.CanDeleteParty || !owner.CanToggleStatus || !owner.CanManageParties {
        t.Fatalf("owner should have all permissions: %+v", owner)
    }

    mgr := ForRole(RoleManager)
    if mgr.CanViewFinancials || mgr.CanDeleteParty || mgr.CanToggleStatus {
        t.Fatalf("manager should not see financials or mutate status/parties: %+v", mgr)
    }
    if !mgr.CanManageParties {
        t.Fatal("manager should be able to manage parties")
    }

    if p := ForRole(Role("auditor")); p != (Permissions{}) {
        t.Fatalf("unknown role should get empty permissions: %+v", p)
    }
}

func TestRoleValid(t *testing.T) {
    if !RoleOwner.Valid() || !RoleManager.Valid() {
        t.Fatal("known roles should be valid")
    }
    if Role("root").Valid() {
        t.Fatal("unknown role should be invalid")
    }
}
