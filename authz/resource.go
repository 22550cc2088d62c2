package authz

import "ruedo-cms/models"

type ResourceType string

const (
	ResourceUser          ResourceType = "user"
	ResourceEvent         ResourceType = "event"
	ResourceEventCategory ResourceType = "event_category"
	ResourceNews          ResourceType = "news"
	ResourceContentBlock  ResourceType = "content_block"
	ResourceInterview     ResourceType = "interview"
	ResourceSavedEvent    ResourceType = "saved_event"
)

type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// capabilities that widen the ones above
	actionModifyAny  Action = "modify_any"
	actionReadDrafts Action = "read_drafts"
	actionReadAny    Action = "read_any"
	actionAssignRole Action = "assign_role"
)

type Ownership int

const (
	// OwnedByNobody resources have no owner field; only role decides.
	OwnedByNobody Ownership = iota
	// OwnedByCreator resources carry a nullable creator reference.
	OwnedByCreator
	// OwnedBySelf is the principal record itself.
	OwnedBySelf
	// OwnedByParent resources inherit ownership and visibility from their parent.
	OwnedByParent
	// OwnedExclusively resources are invisible to anyone but their owner.
	OwnedExclusively
)

type Visibility int

const (
	VisibleToAll Visibility = iota
	VisibleWhenPublished
	VisibleToOwner
	VisibleToSelfOrAdmin
)

// Descriptor is the static policy row for one resource type.
type Descriptor struct {
	Type         ResourceType
	Ownership    Ownership
	Visibility   Visibility
	CreateDenied string
	ModifyDenied string
	ListDenied   string
}

var descriptors = map[ResourceType]Descriptor{
	ResourceUser: {
		Type:         ResourceUser,
		Ownership:    OwnedBySelf,
		Visibility:   VisibleToSelfOrAdmin,
		CreateDenied: models.MsgAdminOnly,
		ModifyDenied: models.MsgOwnProfileOnly,
		ListDenied:   models.MsgAdminOnly,
	},
	ResourceEvent: {
		Type:         ResourceEvent,
		Ownership:    OwnedByCreator,
		Visibility:   VisibleToAll,
		CreateDenied: models.MsgCreatorOnly,
		ModifyDenied: models.MsgNotOwner,
	},
	ResourceEventCategory: {
		Type:         ResourceEventCategory,
		Ownership:    OwnedByNobody,
		Visibility:   VisibleToAll,
		CreateDenied: models.MsgCreatorOnly,
		ModifyDenied: models.MsgCreatorOnly,
	},
	ResourceNews: {
		Type:         ResourceNews,
		Ownership:    OwnedByCreator,
		Visibility:   VisibleWhenPublished,
		CreateDenied: models.MsgCreatorOnly,
		ModifyDenied: models.MsgNotOwner,
	},
	ResourceContentBlock: {
		Type:         ResourceContentBlock,
		Ownership:    OwnedByParent,
		Visibility:   VisibleWhenPublished,
		CreateDenied: models.MsgCreatorOnly,
		ModifyDenied: models.MsgNotOwner,
	},
	ResourceInterview: {
		Type:         ResourceInterview,
		Ownership:    OwnedByCreator,
		Visibility:   VisibleWhenPublished,
		CreateDenied: models.MsgCreatorOnly,
		ModifyDenied: models.MsgNotOwner,
	},
	ResourceSavedEvent: {
		Type:         ResourceSavedEvent,
		Ownership:    OwnedExclusively,
		Visibility:   VisibleToOwner,
		CreateDenied: models.MsgAuthenticationRequired,
		ModifyDenied: models.MsgNotFound,
	},
}

// Describe returns the descriptor registered for t.
func Describe(t ResourceType) (Descriptor, bool) {
	d, ok := descriptors[t]
	return d, ok
}

// Ownable is any instance the engine can check ownership on. For content
// blocks the parent article is passed.
type Ownable interface {
	OwnerID() *uint
}

type Publishable interface {
	IsPublished() bool
}

// QueryPredicate narrows a list query. The zero value means no restriction.
type QueryPredicate struct {
	PublishedOnly bool
	OwnerID       *uint
}

func (q QueryPredicate) Unrestricted() bool {
	return !q.PublishedOnly && q.OwnerID == nil
}
