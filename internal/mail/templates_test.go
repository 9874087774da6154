package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jane", firstName("Jane Doe"))
	assert.Equal(t, "Jane", firstName("Jane"))
	assert.Equal(t, "", firstName(""))
}

func TestInviteTemplate(t *testing.T) {
	t.Parallel()

	tmpl := NewTemplates("Upeo Back Office", "http://localhost:3001/")

	msg := tmpl.Invite("jane@example.com", "Jane Doe", "ENGINEER", "abc123")
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "You're Invited to Join Upeo Back Office", msg.Subject)
	assert.Contains(t, msg.HTML, "http://localhost:3001/auth/accept-invite?token=abc123")
	assert.Contains(t, msg.HTML, "<strong>ENGINEER</strong>")
	assert.Contains(t, msg.HTML, "Hello Jane,")
}

func TestPasswordResetTemplate(t *testing.T) {
	t.Parallel()

	tmpl := NewTemplates("Upeo Back Office", "http://localhost:3001")

	msg := tmpl.PasswordReset("jane@example.com", "Jane Doe", "deadbeef")
	assert.Equal(t, "Password Reset Request", msg.Subject)
	assert.Contains(t, msg.HTML, "http://localhost:3001/auth/reset-password?token=deadbeef")
}

func TestProjectTemplates(t *testing.T) {
	t.Parallel()

	tmpl := NewTemplates("Upeo Back Office", "http://localhost:3001")

	assigned := tmpl.ProjectAssignment("x@example.com", "Alex Kim", "Apollo")
	assert.Contains(t, assigned.HTML, "<strong>Apollo</strong>")
	assert.Contains(t, assigned.Subject, "New Project Assignment")

	unassigned := tmpl.ProjectUnassignment("x@example.com", "Alex Kim", "Apollo")
	assert.Contains(t, unassigned.HTML, "unassigned from the project <strong>Apollo</strong>")
	assert.Contains(t, unassigned.Subject, "Project Unassignment Notification")
}
