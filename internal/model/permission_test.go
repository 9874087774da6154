package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func managerRole() RoleSnapshot {
	return RoleSnapshot{
		Name: RoleProjectManager,
		Permissions: []ResourceGrant{
			{Resource: ResourceProject, Actions: []Action{ActionRead, ActionUpdate}},
			{Resource: ResourceUser, Actions: []Action{ActionRead}},
		},
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     RoleSnapshot
		required Requirement
		want     bool
	}{
		{
			name:     "granted action on granted resource",
			role:     managerRole(),
			required: Requirement{Resource: ResourceProject, Action: ActionRead},
			want:     true,
		},
		{
			name:     "second action on same resource",
			role:     managerRole(),
			required: Requirement{Resource: ResourceProject, Action: ActionUpdate},
			want:     true,
		},
		{
			name:     "ungranted action on granted resource",
			role:     managerRole(),
			required: Requirement{Resource: ResourceProject, Action: ActionDelete},
			want:     false,
		},
		{
			name:     "resource with no grant entry",
			role:     managerRole(),
			required: Requirement{Resource: ResourceLead, Action: ActionRead},
			want:     false,
		},
		{
			name:     "role with no grants at all",
			role:     RoleSnapshot{Name: RoleEngineer},
			required: Requirement{Resource: ResourceProject, Action: ActionRead},
			want:     false,
		},
		{
			name: "duplicate grant entries for one resource are merged",
			role: RoleSnapshot{
				Name: RoleAdmin,
				Permissions: []ResourceGrant{
					{Resource: ResourceUser, Actions: []Action{ActionRead}},
					{Resource: ResourceUser, Actions: []Action{ActionCreate}},
				},
			},
			required: Requirement{Resource: ResourceUser, Action: ActionCreate},
			want:     true,
		},
		{
			name:     "zero-value role denies",
			role:     RoleSnapshot{},
			required: Requirement{Resource: ResourceUser, Action: ActionRead},
			want:     false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Authorize(tt.role, tt.required))
		})
	}
}

func TestAuthorizeFullMatrix(t *testing.T) {
	t.Parallel()

	// A role granted everything must pass every (resource, action) pair.
	grants := make([]ResourceGrant, 0, len(AllResources))
	for _, res := range AllResources {
		grants = append(grants, ResourceGrant{Resource: res, Actions: AllActions})
	}
	admin := RoleSnapshot{Name: RoleAdmin, Permissions: grants}

	for _, res := range AllResources {
		for _, act := range AllActions {
			assert.True(t, Authorize(admin, Requirement{Resource: res, Action: act}),
				"expected %s:%s to be granted", res, act)
		}
	}
}
