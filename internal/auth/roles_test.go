package auth

import "testing"

func TestAuthorize(t *testing.T) {
	companyID := uint(7)
	superAdmin := &Principal{ID: 1, Role: RoleSuperAdmin}
	companyAdmin := &Principal{ID: 2, Role: RoleCompanyAdmin, CompanyID: &companyID}
	regular := &Principal{ID: 3, Role: RoleUser, CompanyID: &companyID}

	tests := []struct {
		name      string
		principal *Principal
		required  []Role
		want      bool
	}{
		{"nil principal always denied", nil, nil, false},
		{"empty set only needs authentication", regular, nil, true},
		{"exact match allowed", companyAdmin, []Role{RoleCompanyAdmin}, true},
		{"member of set allowed", regular, []Role{RoleCompanyAdmin, RoleUser}, true},
		{"super admin not implicitly allowed on company routes", superAdmin, []Role{RoleCompanyAdmin, RoleUser}, false},
		{"company admin not a subset of super admin", companyAdmin, []Role{RoleSuperAdmin}, false},
		{"regular user denied admin routes", regular, []Role{RoleCompanyAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.principal, tt.required...); got != tt.want {
				t.Errorf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveLandingRoute(t *testing.T) {
	companyID := uint(7)

	if got := ResolveLandingRoute(nil); got != RouteLogin {
		t.Errorf("nil principal lands at %q, want %q", got, RouteLogin)
	}
	if got := ResolveLandingRoute(&Principal{Role: RoleSuperAdmin}); got != RouteSuperAdminHome {
		t.Errorf("super admin lands at %q, want %q", got, RouteSuperAdminHome)
	}
	if got := ResolveLandingRoute(&Principal{Role: RoleCompanyAdmin, CompanyID: &companyID}); got != RouteCompanyDashboard {
		t.Errorf("company admin lands at %q, want %q", got, RouteCompanyDashboard)
	}
	if got := ResolveLandingRoute(&Principal{Role: RoleUser, CompanyID: &companyID}); got != RouteCompanyDashboard {
		t.Errorf("user lands at %q, want %q", got, RouteCompanyDashboard)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleCompanyAdmin, RoleUser} {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if Role("manager").Valid() {
		t.Error("unknown role should be invalid")
	}
}
