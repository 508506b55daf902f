package auth

// Role is one of the three access levels of the platform.
// Authorization is exact-membership over role sets, not hierarchical:
// a super admin is not implicitly allowed on company-scoped routes
// and a company admin is not a subset of super admin.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleCompanyAdmin Role = "admin_empresa"
	RoleUser         Role = "user"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleUser:
		return true
	}
	return false
}

// Principal is the authenticated identity plus the role and tenant context
// driving every authorization decision. CompanyID is nil for super admins.
type Principal struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CompanyID *uint  `json:"company_id,omitempty"`
}

// Landing routes the SPA navigates to after authentication.
const (
	RouteLogin            = "/login"
	RouteSuperAdminHome   = "/super-admin"
	RouteCompanyDashboard = "/dashboard"
)

// Authorize reports whether the principal's role is a member of the required
// set. Empty set means the route only needs authentication.
func Authorize(p *Principal, required ...Role) bool {
	if p == nil {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if p.Role == r {
			return true
		}
	}
	return false
}

// ResolveLandingRoute maps a principal to its post-login destination:
// unauthenticated goes to login, super admins to the platform dashboard,
// everyone else to the company dashboard.
func ResolveLandingRoute(p *Principal) string {
	switch {
	case p == nil:
		return RouteLogin
	case p.Role == RoleSuperAdmin:
		return RouteSuperAdminHome
	default:
		return RouteCompanyDashboard
	}
}
