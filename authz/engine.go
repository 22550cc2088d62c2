// Package authz decides who may list, read, create and modify each resource
// type. Decisions depend only on the principal and instance snapshots passed
// in; the engine keeps no per-request state.
package authz

import (
	"github.com/rs/zerolog"

	"ruedo-cms/logging"
	"ruedo-cms/metrics"
	"ruedo-cms/models"
)

type Outcome int

const (
	Allow Outcome = iota
	DenyUnauthenticated
	DenyForbidden
	// DenyNotFound hides the instance's existence from the caller.
	DenyNotFound
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "unauthenticated"
	case DenyForbidden:
		return "forbidden"
	case DenyNotFound:
		return "not_found"
	}
	return "unknown"
}

type Decision struct {
	Outcome Outcome
	Reason  string
}

func (d Decision) Allowed() bool { return d.Outcome == Allow }

// Err converts a denial into the matching error type, nil when allowed.
func (d Decision) Err() error {
	switch d.Outcome {
	case DenyUnauthenticated:
		return models.ErrorUnauthorized{Message: d.Reason}
	case DenyForbidden:
		return models.ErrorForbidden{Reason: d.Reason}
	case DenyNotFound:
		return models.ErrorNotFound{Message: d.Reason}
	}
	return nil
}

var allowed = Decision{Outcome: Allow}

func unauthenticated() Decision {
	return Decision{Outcome: DenyUnauthenticated, Reason: models.MsgAuthenticationRequired}
}

func forbidden(reason string) Decision {
	return Decision{Outcome: DenyForbidden, Reason: reason}
}

func notFound() Decision {
	return Decision{Outcome: DenyNotFound, Reason: models.MsgNotFound}
}

type Engine struct {
	policy *Policy
	log    zerolog.Logger
}

// NewEngine binds a logger at construction, so logging must be initialised
// first.
func NewEngine(policy *Policy) *Engine {
	return &Engine{
		policy: policy,
		log:    logging.With().Str("component", "authz").Logger(),
	}
}

// NewDefaultEngine loads the embedded policy.
func NewDefaultEngine() (*Engine, error) {
	policy, err := LoadPolicy()
	if err != nil {
		return nil, err
	}
	return NewEngine(policy), nil
}

// CanList returns the predicate every list query for t must apply.
func (e *Engine) CanList(p *models.User, t ResourceType) (QueryPredicate, Decision) {
	d := describe(t)
	if dec, done := e.gate(p, d, ActionList); done {
		return QueryPredicate{}, e.record(t, ActionList, dec)
	}

	var pred QueryPredicate
	switch d.Visibility {
	case VisibleWhenPublished:
		pred.PublishedOnly = !e.policy.Allows(p, t, actionReadDrafts)
	case VisibleToOwner:
		id := p.ID
		pred.OwnerID = &id
	}
	return pred, e.record(t, ActionList, allowed)
}

// CanReadOne decides visibility of a single instance. For content blocks
// pass the parent article.
func (e *Engine) CanReadOne(p *models.User, t ResourceType, instance Ownable) Decision {
	d := describe(t)
	if dec, done := e.gate(p, d, ActionRead); done {
		return e.record(t, ActionRead, dec)
	}

	switch d.Visibility {
	case VisibleWhenPublished:
		if pub, ok := instance.(Publishable); ok && pub.IsPublished() {
			return e.record(t, ActionRead, allowed)
		}
		if e.policy.Allows(p, t, actionReadDrafts) {
			return e.record(t, ActionRead, allowed)
		}
		return e.record(t, ActionRead, notFound())
	case VisibleToOwner:
		if ownedBy(instance, p) {
			return e.record(t, ActionRead, allowed)
		}
		return e.record(t, ActionRead, notFound())
	case VisibleToSelfOrAdmin:
		if ownedBy(instance, p) || e.policy.Allows(p, t, actionReadAny) {
			return e.record(t, ActionRead, allowed)
		}
		return e.record(t, ActionRead, forbidden(models.MsgAdminOnly))
	}
	return e.record(t, ActionRead, allowed)
}

func (e *Engine) CanCreate(p *models.User, t ResourceType) Decision {
	d := describe(t)
	if p == nil {
		return e.record(t, ActionCreate, unauthenticated())
	}
	if !p.IsActive {
		return e.record(t, ActionCreate, forbidden(models.MsgInactiveAccount))
	}
	if !e.policy.Allows(p, t, ActionCreate) {
		return e.record(t, ActionCreate, forbidden(d.CreateDenied))
	}
	return e.record(t, ActionCreate, allowed)
}

// CanModify decides an update of instance. A nil owner on the instance
// leaves it modifiable by admins only.
func (e *Engine) CanModify(p *models.User, t ResourceType, instance Ownable) Decision {
	return e.modify(p, t, ActionUpdate, instance)
}

func (e *Engine) CanDelete(p *models.User, t ResourceType, instance Ownable) Decision {
	return e.modify(p, t, ActionDelete, instance)
}

func (e *Engine) modify(p *models.User, t ResourceType, act Action, instance Ownable) Decision {
	d := describe(t)
	if p == nil {
		return e.record(t, act, unauthenticated())
	}
	if !p.IsActive {
		return e.record(t, act, forbidden(models.MsgInactiveAccount))
	}
	if e.policy.Allows(p, t, actionModifyAny) {
		return e.record(t, act, allowed)
	}
	if ownedBy(instance, p) && e.policy.Allows(p, t, act) {
		return e.record(t, act, allowed)
	}
	if d.Visibility == VisibleToOwner {
		return e.record(t, act, notFound())
	}
	return e.record(t, act, forbidden(d.ModifyDenied))
}

// CanEditProfile allows a principal to edit their own profile and an admin
// to edit anyone's.
func (e *Engine) CanEditProfile(p *models.User, target *models.User) Decision {
	return e.CanModify(p, ResourceUser, target)
}

// GuardProfileUpdate drops the fields only an admin may set. Everything else
// in req is left for the caller to apply.
func (e *Engine) GuardProfileUpdate(p *models.User, req *models.ProfileUpdateRequest) {
	if e.policy.Allows(p, ResourceUser, actionAssignRole) && p.IsActive {
		return
	}
	if req.Role != nil || req.IsActive != nil {
		e.log.Debug().Uint("user_id", principalID(p)).Msg("dropping role fields from profile update")
	}
	req.Role = nil
	req.IsActive = nil
}

// gate applies the checks shared by list and read: role capability and the
// active flag. done is true when the decision is final.
func (e *Engine) gate(p *models.User, d Descriptor, act Action) (Decision, bool) {
	if p != nil && !p.IsActive {
		return forbidden(models.MsgInactiveAccount), true
	}
	if e.policy.Allows(p, d.Type, act) {
		return allowed, false
	}
	if p == nil {
		return unauthenticated(), true
	}
	reason := d.ListDenied
	if reason == "" {
		reason = models.MsgAdminOnly
	}
	return forbidden(reason), true
}

func (e *Engine) record(t ResourceType, act Action, dec Decision) Decision {
	metrics.RecordAuthzDecision(string(t), string(act), dec.Outcome.String())
	if !dec.Allowed() {
		e.log.Debug().
			Str("resource", string(t)).
			Str("action", string(act)).
			Str("outcome", dec.Outcome.String()).
			Msg("authorization denied")
	}
	return dec
}

func describe(t ResourceType) Descriptor {
	d, ok := descriptors[t]
	if !ok {
		// unknown types get nothing from the policy either
		return Descriptor{Type: t, Visibility: VisibleToOwner, ModifyDenied: models.MsgNotFound}
	}
	return d
}

func ownedBy(instance Ownable, p *models.User) bool {
	if instance == nil || p == nil {
		return false
	}
	owner := instance.OwnerID()
	return owner != nil && *owner == p.ID
}

func principalID(p *models.User) uint {
	if p == nil {
		return 0
	}
	return p.ID
}
