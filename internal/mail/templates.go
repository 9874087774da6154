package mail

import (
	"fmt"
	"strings"
)

// Templates renders the transactional emails the platform sends.
type Templates struct {
	appName    string
	webBaseURL string
}

// NewTemplates creates a Templates renderer. webBaseURL is the frontend
// origin links point at.
func NewTemplates(appName, webBaseURL string) *Templates {
	return &Templates{appName: appName, webBaseURL: strings.TrimRight(webBaseURL, "/")}
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

const mailWrapper = `<div style="font-family: Arial, sans-serif; color: #333; padding: 20px;">%s</div>`

func button(href, label string) string {
	return fmt.Sprintf(`<a href="%s" style="background-color: #4CAF50; color: white; padding: 10px 15px; text-decoration: none; border-radius: 5px;">%s</a>`, href, label)
}

// Invite builds the invitation email carrying the accept link.
func (t *Templates) Invite(to, name, role, token string) *Message {
	inviteLink := fmt.Sprintf("%s/auth/accept-invite?token=%s", t.webBaseURL, token)
	body := fmt.Sprintf(`
		<h2 style="color: #4CAF50;">You're Invited to Join %[1]s</h2>
		<p>Hello %[2]s,</p>
		<p>You've been invited to join %[1]s as a <strong>%[3]s</strong>.</p>
		<p>To get started, please accept your invitation by clicking the link below:</p>
		%[4]s
		<p style="margin-top: 20px;">Or copy and paste this link into your browser:</p>
		<p>%[5]s</p>
		<p>We look forward to working with you!</p>
		<p>Best Regards,<br>%[1]s Team</p>
		<hr />
		<p style="font-size: 12px; color: #999;">If you did not expect this invitation, please disregard this email.</p>`,
		t.appName, firstName(name), role, button(inviteLink, "Accept Invitation"), inviteLink)

	return &Message{
		To:      to,
		Subject: fmt.Sprintf("You're Invited to Join %s", t.appName),
		HTML:    fmt.Sprintf(mailWrapper, body),
	}
}

// PasswordReset builds the reset email carrying the short-lived reset link.
func (t *Templates) PasswordReset(to, name, token string) *Message {
	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", t.webBaseURL, token)
	body := fmt.Sprintf(`
		<h2 style="color: #4CAF50;">Password Reset Request</h2>
		<p>Hello %[1]s,</p>
		<p>We received a request to reset your password. If you did not make this request, you can ignore this email.</p>
		<p>To reset your password, click the link below:</p>
		%[2]s
		<p style="margin-top: 20px;">Or copy and paste this link into your browser:</p>
		<p>%[3]s</p>
		<p>Thank you,<br>%[4]s Team</p>
		<hr />
		<p style="font-size: 12px; color: #999;">If you did not request a password reset, please disregard this email.</p>`,
		firstName(name), button(resetLink, "Reset Password"), resetLink, t.appName)

	return &Message{
		To:      to,
		Subject: "Password Reset Request",
		HTML:    fmt.Sprintf(mailWrapper, body),
	}
}

// RoleUpdate notifies a user their role changed.
func (t *Templates) RoleUpdate(to, name, newRole string) *Message {
	loginURL := t.webBaseURL + "/auth/login"
	body := fmt.Sprintf(`
		<h2 style="color: #4CAF50;">Your Role Has Been Updated on %[1]s</h2>
		<p>Hello %[2]s,</p>
		<p>We wanted to let you know that your role on %[1]s has been updated to <strong>%[3]s</strong>.</p>
		<p>With this new role, you may have additional permissions and access to new features.</p>
		<p>Feel free to log in and explore your updated permissions:</p>
		%[4]s
		<p style="margin-top: 20px;">Or copy and paste this link into your browser:</p>
		<p>%[5]s</p>
		<p>If you have any questions about your new role, please feel free to reach out to us.</p>
		<p>Best Regards,<br>%[1]s Team</p>
		<hr />
		<p style="font-size: 12px; color: #999;">If you think this is a mistake, please contact our support team immediately.</p>`,
		t.appName, firstName(name), newRole, button(loginURL, "Log In"), loginURL)

	return &Message{
		To:      to,
		Subject: fmt.Sprintf("Your Role Has Been Updated on %s", t.appName),
		HTML:    fmt.Sprintf(mailWrapper, body),
	}
}

// ProjectAssignment notifies a user they joined a project.
func (t *Templates) ProjectAssignment(to, name, projectName string) *Message {
	projectsURL := t.webBaseURL + "/projects"
	body := fmt.Sprintf(`
		<h2 style="color: #4CAF50;">You've Been Assigned a New Project on %[1]s</h2>
		<p>Hello %[2]s,</p>
		<p>We're excited to inform you that you've been assigned to a new project: <strong>%[3]s</strong>.</p>
		<p>You can view the project details and get started by logging into the platform:</p>
		%[4]s
		<p style="margin-top: 20px;">Or copy and paste this link into your browser:</p>
		<p>%[5]s</p>
		<p>If you have any questions regarding this project, please feel free to reach out to your project manager or team.</p>
		<p>Best Regards,<br>%[1]s Team</p>
		<hr />
		<p style="font-size: 12px; color: #999;">If you think this assignment is a mistake, please contact our support team.</p>`,
		t.appName, firstName(name), projectName, button(projectsURL, "View Project"), projectsURL)

	return &Message{
		To:      to,
		Subject: fmt.Sprintf("New Project Assignment on %s", t.appName),
		HTML:    fmt.Sprintf(mailWrapper, body),
	}
}

// ProjectUnassignment notifies a user they were removed from a project.
func (t *Templates) ProjectUnassignment(to, name, projectName string) *Message {
	projectsURL := t.webBaseURL + "/projects"
	body := fmt.Sprintf(`
		<h2 style="color: #4CAF50;">Update on Your Project Assignment in %[1]s</h2>
		<p>Hello %[2]s,</p>
		<p>We wanted to let you know that you have been unassigned from the project <strong>%[3]s</strong> in %[1]s.</p>
		<p>If you believe this change was made in error or have any questions, please don't hesitate to reach out to us.</p>
		<p>You can view your current project assignments by logging into your account:</p>
		%[4]s
		<p style="margin-top: 20px;">Or copy and paste this link into your browser:</p>
		<p>%[5]s</p>
		<p>Thank you for your continued contributions.</p>
		<p>Best Regards,<br>%[1]s Team</p>
		<hr />
		<p style="font-size: 12px; color: #999;">If you did not expect this change, please contact our support team immediately.</p>`,
		t.appName, firstName(name), projectName, button(projectsURL, "View My Projects"), projectsURL)

	return &Message{
		To:      to,
		Subject: fmt.Sprintf("Project Unassignment Notification in %s", t.appName),
		HTML:    fmt.Sprintf(mailWrapper, body),
	}
}
