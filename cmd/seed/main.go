package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/upeohq/backoffice-backend/internal/config"
	"github.com/upeohq/backoffice-backend/internal/database"
	"github.com/upeohq/backoffice-backend/internal/logger"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// roleGrants maps each seeded role to the permissions it receives.
// ADMIN gets everything; the others are scoped to their day-to-day work.
var roleGrants = map[string][]model.Requirement{
	model.RoleAdmin: allRequirements(),
	model.RoleProjectManager: {
		{Resource: model.ResourceProject, Action: model.ActionRead},
		{Resource: model.ResourceProject, Action: model.ActionUpdate},
		{Resource: model.ResourceAssignment, Action: model.ActionRead},
		{Resource: model.ResourceUser, Action: model.ActionRead},
		{Resource: model.ResourceLead, Action: model.ActionCreate},
		{Resource: model.ResourceLead, Action: model.ActionRead},
		{Resource: model.ResourceLead, Action: model.ActionUpdate},
		{Resource: model.ResourceCustomer, Action: model.ActionCreate},
		{Resource: model.ResourceCustomer, Action: model.ActionRead},
		{Resource: model.ResourceCustomer, Action: model.ActionUpdate},
		{Resource: model.ResourceInteraction, Action: model.ActionCreate},
		{Resource: model.ResourceInteraction, Action: model.ActionRead},
		{Resource: model.ResourceInteraction, Action: model.ActionUpdate},
	},
	model.RoleEngineer: {
		{Resource: model.ResourceProject, Action: model.ActionRead},
	},
}

var roleDescriptions = map[string]string{
	model.RoleAdmin:          "Full access to every resource",
	model.RoleProjectManager: "Manages projects, assignments and CRM records",
	model.RoleEngineer:       "Works on assigned projects",
}

func allRequirements() []model.Requirement {
	var reqs []model.Requirement
	for _, resource := range model.AllResources {
		for _, action := range model.AllActions {
			reqs = append(reqs, model.Requirement{Resource: resource, Action: action})
		}
	}
	return reqs
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	roleRepo := repository.NewRoleRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ─── Seed Permissions ──────────────────────────────────────────────
	permissionIDs := make(map[model.Requirement]uuid.UUID)
	for _, resource := range model.AllResources {
		for _, action := range model.AllActions {
			id, err := roleRepo.EnsurePermission(ctx, resource, action)
			if err != nil {
				log.Fatal().Err(err).
					Str("resource", string(resource)).
					Str("action", string(action)).
					Msg("Failed to seed permission")
			}
			permissionIDs[model.Requirement{Resource: resource, Action: action}] = id
		}
	}
	log.Info().Int("count", len(permissionIDs)).Msg("Permissions seeded")

	// ─── Seed Roles ────────────────────────────────────────────────────
	roleIDs := make(map[string]uuid.UUID)
	for name, grants := range roleGrants {
		roleID, err := roleRepo.EnsureRole(ctx, name, roleDescriptions[name])
		if err != nil {
			log.Fatal().Err(err).Str("role", name).Msg("Failed to seed role")
		}

		ids := make([]uuid.UUID, 0, len(grants))
		for _, grant := range grants {
			ids = append(ids, permissionIDs[grant])
		}
		if err := roleRepo.ReplaceRolePermissions(ctx, roleID, ids); err != nil {
			log.Fatal().Err(err).Str("role", name).Msg("Failed to grant permissions")
		}

		roleIDs[name] = roleID
		log.Info().Str("role", name).Int("permissions", len(ids)).Msg("Role seeded")
	}

	// ─── Create Admin User ─────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin User (leave name empty to skip) ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Skipped admin creation")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Phone Number: ")
	phone, _ := reader.ReadString('\n')
	phone = strings.TrimSpace(phone)

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 8 {
		fmt.Println("Error: Password must be at least 8 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	now := time.Now()
	admin := &model.User{
		Name:            name,
		Email:           email,
		PhoneNumber:     phone,
		PasswordHash:    string(hashedPassword),
		EmailVerifiedAt: &now,
		RoleID:          roleIDs[model.RoleAdmin],
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin user")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %s\n", admin.Name, admin.Email, admin.ID)
}
