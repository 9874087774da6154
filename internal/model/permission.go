package model

// Action is a single operation a role may be granted on a resource.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Resource identifies a protected entity class.
type Resource string

const (
	ResourceUser        Resource = "user"
	ResourceProject     Resource = "project"
	ResourceAssignment  Resource = "assignment"
	ResourceLead        Resource = "lead"
	ResourceCustomer    Resource = "customer"
	ResourceInteraction Resource = "interaction"
)

// AllResources lists every resource the permission system knows about.
var AllResources = []Resource{
	ResourceUser,
	ResourceProject,
	ResourceAssignment,
	ResourceLead,
	ResourceCustomer,
	ResourceInteraction,
}

// AllActions lists every action the permission system knows about.
var AllActions = []Action{
	ActionCreate,
	ActionRead,
	ActionUpdate,
	ActionDelete,
}

// Requirement is the {resource, action} pair a protected route demands.
type Requirement struct {
	Resource Resource
	Action   Action
}

// ResourceGrant groups the actions a role holds on one resource.
type ResourceGrant struct {
	Resource Resource `json:"resource"`
	Actions  []Action `json:"actions"`
}

// RoleSnapshot is the role view embedded in access tokens: the role name plus
// its full set of resource grants at issuance time.
type RoleSnapshot struct {
	Name        string          `json:"name"`
	Permissions []ResourceGrant `json:"permissions"`
}

// Authorize reports whether the role's grants satisfy the requirement.
// A resource with no grant entry denies. Flat per-(resource, action)
// membership only; there are no wildcards and no hierarchy.
func Authorize(role RoleSnapshot, required Requirement) bool {
	granted := make(map[Resource]map[Action]struct{}, len(role.Permissions))
	for _, g := range role.Permissions {
		set, ok := granted[g.Resource]
		if !ok {
			set = make(map[Action]struct{}, len(g.Actions))
			granted[g.Resource] = set
		}
		for _, a := range g.Actions {
			set[a] = struct{}{}
		}
	}

	actions, ok := granted[required.Resource]
	if !ok {
		return false
	}
	_, ok = actions[required.Action]
	return ok
}
