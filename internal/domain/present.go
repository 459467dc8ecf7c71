package domain

import "time"

// PledgeView is the outward representation of a pledge. The field set is an
// explicit contract; nothing is derived from the entity by reflection.
type PledgeView struct {
	ID              string    `json:"id"`
	Amount          int64     `json:"amount"`
	Comment         string    `json:"comment"`
	Anonymous       bool      `json:"anonymous"`
	IsHiddenByOwner bool      `json:"is_hidden_by_owner"`
	DateCreated     time.Time `json:"date_created"`
	Fundraiser      string    `json:"fundraiser"`
	Supporter       string    `json:"supporter"`
}

// PresentPledge shapes a pledge for the given viewer. When the fundraiser
// owner has hidden the pledge, the comment is withheld from everyone except
// the owner and the supporter; every other field stays visible. The stored
// comment itself is untouched, so unhiding restores it verbatim. This is the
// only implementation of the rule; standalone and nested paths both go
// through it.
func PresentPledge(g Pledge, viewer Principal) PledgeView {
	view := PledgeView{
		ID:              g.ID,
		Amount:          g.Amount,
		Comment:         g.Comment,
		Anonymous:       g.Anonymous,
		IsHiddenByOwner: g.IsHiddenByOwner,
		DateCreated:     g.DateCreated,
		Fundraiser:      g.FundraiserID,
		Supporter:       g.SupporterID,
	}
	if g.IsHiddenByOwner && !canSeeHiddenComment(g, viewer) {
		view.Comment = ""
	}
	return view
}

func canSeeHiddenComment(g Pledge, viewer Principal) bool {
	if viewer.IsAnonymous() {
		return false
	}
	return viewer.UserID == g.FundraiserOwnerID || viewer.UserID == g.SupporterID
}

// PresentPledges filters a list for one viewer. It always returns a non-nil
// slice so list responses encode as [] rather than null.
func PresentPledges(pledges []Pledge, viewer Principal) []PledgeView {
	views := make([]PledgeView, 0, len(pledges))
	for _, g := range pledges {
		views = append(views, PresentPledge(g, viewer))
	}
	return views
}

// FundraiserView is the outward representation of a fundraiser.
type FundraiserView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Goal        int64     `json:"goal"`
	Image       string    `json:"image"`
	IsOpen      bool      `json:"is_open"`
	DateCreated time.Time `json:"date_created"`
	Owner       string    `json:"owner"`
}

func PresentFundraiser(f Fundraiser) FundraiserView {
	return FundraiserView{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Goal:        f.Goal,
		Image:       f.Image,
		IsOpen:      f.IsOpen,
		DateCreated: f.DateCreated,
		Owner:       f.OwnerID,
	}
}

// FundraiserDetailView wraps the base representation and adds the nested,
// viewer-filtered pledge list.
type FundraiserDetailView struct {
	FundraiserView
	Pledges []PledgeView `json:"pledges"`
}

func PresentFundraiserDetail(f Fundraiser, pledges []Pledge, viewer Principal) FundraiserDetailView {
	return FundraiserDetailView{
		FundraiserView: PresentFundraiser(f),
		Pledges:        PresentPledges(pledges, viewer),
	}
}
