package session

// Gate kinds guarding the portal's views. Each gate is a pure function of the
// session state, evaluated once per navigation and decoupled from rendering.
type Gate int

const (
	// GateProtected requires any authenticated user.
	GateProtected Gate = iota
	// GateAdminOnly requires an authenticated admin.
	GateAdminOnly
	// GatePublicOnly is for the login view; authenticated users are sent away.
	GatePublicOnly
)

// Decision is the outcome of evaluating a gate.
type Decision int

const (
	// DecisionPending restore has not completed; show a pending indicator and
	// suspend redirect logic.
	DecisionPending Decision = iota
	// DecisionRender the view may be shown.
	DecisionRender
	// DecisionRedirectLogin send the visitor to the login view.
	DecisionRedirectLogin
	// DecisionRedirectDefault send the visitor to the default authenticated view.
	DecisionRedirectDefault
)

// Decide evaluates gate g against session state s:
//
//	gate       | loading | anonymous      | member          | admin
//	-----------+---------+----------------+-----------------+--------
//	Protected  | pending | redirect login | render          | render
//	AdminOnly  | pending | redirect login | redirect default| render
//	PublicOnly | pending | render         | redirect default| redirect default
func Decide(g Gate, s State) Decision {
	if s.Loading {
		return DecisionPending
	}
	authenticated := s.User != nil
	admin := authenticated && s.User.IsAdmin()

	switch g {
	case GateAdminOnly:
		if !authenticated {
			return DecisionRedirectLogin
		}
		if !admin {
			return DecisionRedirectDefault
		}
		return DecisionRender
	case GatePublicOnly:
		if authenticated {
			return DecisionRedirectDefault
		}
		return DecisionRender
	default: // GateProtected
		if !authenticated {
			return DecisionRedirectLogin
		}
		return DecisionRender
	}
}
