package domain

// Principal identifies the actor behind a request. A zero Principal is an
// anonymous visitor.
type Principal struct {
	UserID string
}

// Anonymous is the principal of an unauthenticated request.
var Anonymous = Principal{}

func (p Principal) IsAnonymous() bool {
	return p.UserID == ""
}

// Action enumerates the operations the authorization engine decides on.
type Action string

const (
	ActionRead       Action = "read"
	ActionCreate     Action = "create"
	ActionWrite      Action = "write"
	ActionDelete     Action = "delete"
	ActionHideToggle Action = "hide-toggle"
)

// A check is one predicate in an ordered authorization chain.
type check func(Principal) error

// evaluate runs checks in order and returns the first failure, so an
// authentication failure always surfaces before any ownership failure.
func evaluate(p Principal, checks ...check) error {
	for _, c := range checks {
		if err := c(p); err != nil {
			return err
		}
	}
	return nil
}

func authenticated(p Principal) error {
	if p.IsAnonymous() {
		return ErrUnauthenticated
	}
	return nil
}

// owns requires the principal to be the given user. An anonymous principal
// never matches: absence of identity cannot equal a concrete owner.
func owns(userID string) check {
	return func(p Principal) error {
		if p.IsAnonymous() || p.UserID != userID {
			return ErrForbidden
		}
		return nil
	}
}

// AuthorizeFundraiser decides whether p may perform action on f. Reads are
// public; writes and deletes belong to the owner alone.
func AuthorizeFundraiser(p Principal, action Action, f *Fundraiser) error {
	switch action {
	case ActionRead:
		return nil
	case ActionCreate:
		return evaluate(p, authenticated)
	case ActionWrite, ActionDelete:
		return evaluate(p, authenticated, owns(f.OwnerID))
	}
	return ErrForbidden
}

// AuthorizePledge decides whether p may perform action on g. Reads are
// public (subject to the visibility filter); the comment and anonymous flag
// belong to the supporter, the hidden flag to the fundraiser owner.
func AuthorizePledge(p Principal, action Action, g *Pledge) error {
	switch action {
	case ActionRead:
		return nil
	case ActionCreate:
		return evaluate(p, authenticated)
	case ActionWrite, ActionDelete:
		return evaluate(p, authenticated, owns(g.SupporterID))
	case ActionHideToggle:
		return evaluate(p, authenticated, owns(g.FundraiserOwnerID))
	}
	return ErrForbidden
}
