// Package policy implements the ownership-scoped authorization rules applied
// uniformly across posts, contacts and support messages. Decide is a pure
// function: it never touches the store and never returns an error, only a
// Decision with a reason tag. Malformed input is rejected earlier by the
// service-level field validation.
package policy

import "inkwell/internal/identity"

// Operation identifies an API operation subject to authorization.
type Operation string

const (
	OpListPosts         Operation = "posts.list"
	OpReadPost          Operation = "posts.read"
	OpListPostsByAuthor Operation = "posts.list_by_author"
	OpCreatePost        Operation = "posts.create"
	OpUpdatePost        Operation = "posts.update"
	OpDeletePost        Operation = "posts.delete"

	OpListContactsPublic Operation = "contacts.list_public"
	OpListContactsAdmin  Operation = "contacts.list_admin"
	OpCreateContact      Operation = "contacts.create"
	OpUpdateContact      Operation = "contacts.update"
	OpDeleteContact      Operation = "contacts.delete"

	OpCreateSupportMessage Operation = "support.create"
	OpListSupportMessages  Operation = "support.list"
)

// Reason tags a denial.
type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonOwnership       Reason = "ownership"
	ReasonNotFound        Reason = "not_found"
)

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow is the permitting decision.
var Allow = Decision{Allowed: true}

// Deny returns a denying decision tagged with reason.
func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Target carries the attributes of the record a decision is about.
// A nil Target means the operation has no single target record.
type Target struct {
	// Exists reports whether the target record is present in the store.
	Exists bool
	// OwnerID is the owning principal id (Post.AuthorID), or for
	// OpListPostsByAuthor the author whose posts are requested.
	OwnerID string
}

// Decide evaluates the authorization rules for op given the (possibly absent)
// principal and target record.
//
// Precedence for targeted mutations: authentication, then existence, then
// ownership — a missing record yields not_found even when the caller would
// also fail the ownership check.
func Decide(op Operation, p *identity.Principal, t *Target) Decision {
	switch op {
	case OpListPosts, OpReadPost, OpListContactsPublic, OpCreateSupportMessage:
		// Public operations. The public contact listing is additionally
		// restricted to isActive records at the store query, not here.
		return Allow

	case OpListPostsByAuthor:
		if p == nil {
			return Deny(ReasonUnauthenticated)
		}
		if t == nil || p.ID != t.OwnerID {
			return Deny(ReasonOwnership)
		}
		return Allow

	case OpCreatePost, OpCreateContact, OpListContactsAdmin, OpListSupportMessages:
		if p == nil {
			return Deny(ReasonUnauthenticated)
		}
		return Allow

	case OpUpdatePost, OpDeletePost:
		if p == nil {
			return Deny(ReasonUnauthenticated)
		}
		if t == nil || !t.Exists {
			return Deny(ReasonNotFound)
		}
		if p.ID != t.OwnerID {
			return Deny(ReasonOwnership)
		}
		return Allow

	case OpUpdateContact, OpDeleteContact:
		if p == nil {
			return Deny(ReasonUnauthenticated)
		}
		if t != nil && !t.Exists {
			return Deny(ReasonNotFound)
		}
		return Allow
	}

	// Unknown operations are never permitted.
	return Decision{Allowed: false}
}
