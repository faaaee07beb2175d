package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/email"
	"github.com/takamaro111/construction-management-app/internal/identity"
	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
	"github.com/takamaro111/construction-management-app/internal/saga"
	"github.com/takamaro111/construction-management-app/internal/utils"
)

var (
	ErrInvalidID         = errors.New("identifier is not a valid UUID")
	ErrMemberNotFound    = errors.New("member not found")
	ErrEmailMismatch     = errors.New("email does not match the stored profile")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrInviterNotFound   = errors.New("inviting user not found")
	ErrCannotDeleteSelf  = errors.New("cannot delete your own account")
	ErrInvitationFailed  = errors.New("failed to invite member")
	ErrPasswordOperation = errors.New("failed to update password")
)

// MemberService implements the privileged member-lifecycle workflows:
// invitation, deletion, password reset and password retrieval. Each keeps
// the auth account and the profile row consistent as a pair.
type MemberService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	idp         identity.Provider
	mailer      email.Sender
	appURL      string
	log         *slog.Logger
}

// NewMemberService creates a new MemberService.
func NewMemberService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, idp identity.Provider, mailer email.Sender, appURL string, log *slog.Logger) *MemberService {
	if log == nil {
		log = slog.Default()
	}
	return &MemberService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		idp:         idp,
		mailer:      mailer,
		appURL:      appURL,
		log:         log,
	}
}

// InviteInput represents an administrator's request to add a member.
// Role uses the client vocabulary (admin/manager/member).
type InviteInput struct {
	Email     string
	Name      string
	Role      string
	CompanyID string
	InvitedBy string
}

// InviteResult reports the outcome of an invitation. The temporary password
// is returned so an administrator can relay it manually when email delivery
// is unavailable or fails.
type InviteResult struct {
	UserID       string
	TempPassword string
	EmailSent    bool
	EmailMessage string
}

// Invite creates an auth account and a matching profile row for the new
// member. If the profile insert fails, the just-created auth account is
// deleted again. Email delivery failure is not fatal.
func (s *MemberService) Invite(input InviteInput) (*InviteResult, error) {
	if !utils.IsUUID(input.CompanyID) || !utils.IsUUID(input.InvitedBy) {
		return nil, ErrInvalidID
	}
	memberEmail := strings.TrimSpace(input.Email)

	// Reject when the email exists in either the profile table or the
	// credential store.
	if _, err := s.userRepo.FindByEmail(memberEmail); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check profile email: %w", err)
	}
	if _, err := s.idp.FindByEmail(memberEmail); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, identity.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check auth email: %w", err)
	}

	if _, err := s.companyRepo.FindByID(input.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if _, err := s.userRepo.FindByID(input.InvitedBy); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviterNotFound
		}
		return nil, fmt.Errorf("failed to find inviter: %w", err)
	}

	tempPassword := utils.GenerateTempPassword()

	var account *models.AuthAccount
	wf := saga.New(s.log).
		AddStep(saga.Step{
			Name: "create auth account",
			Run: func() error {
				var err error
				account, err = s.idp.CreateAccount(memberEmail, tempPassword, true)
				return err
			},
			Compensate: func() error {
				return s.idp.DeleteAccount(account.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "create member profile",
			Run: func() error {
				user := &models.User{
					ID:        account.ID,
					CompanyID: input.CompanyID,
					Email:     memberEmail,
					Name:      strings.TrimSpace(input.Name),
					Role:      models.MapRole(input.Role),
				}
				return s.userRepo.Create(user)
			},
		})

	if err := wf.Execute(); err != nil {
		s.log.Error("member invitation failed", "email", memberEmail, "error", err)
		return nil, ErrInvitationFailed
	}

	result := &InviteResult{
		UserID:       account.ID,
		TempPassword: tempPassword,
	}

	loginURL := s.appURL + "/auth/login"
	body := email.InvitationBody(input.Name, memberEmail, tempPassword, loginURL)
	if err := s.mailer.Send(memberEmail, "[GENBA] You have been invited", body); err != nil {
		s.log.Warn("invitation email not delivered", "email", memberEmail, "error", err)
		result.EmailMessage = "invitation email could not be delivered; relay the temporary password manually"
	} else {
		result.EmailSent = true
		result.EmailMessage = "invitation email sent"
	}

	return result, nil
}

// DeleteResult reports the outcome of a deletion. Warning is set when the
// profile row was removed but the auth account deletion failed afterwards;
// the operation still counts as a success.
type DeleteResult struct {
	UserName string
	Email    string
	Warning  string
}

// Delete removes a member: profile row first, auth account second. The
// given email must match the stored profile and the target must belong to
// the actor's company. A failure deleting the auth account after the
// profile is gone is surfaced as a warning, not an error.
func (s *MemberService) Delete(userID, memberEmail, actorID, companyID string) (*DeleteResult, error) {
	if !utils.IsUUID(userID) {
		return nil, ErrInvalidID
	}
	if userID == actorID {
		return nil, ErrCannotDeleteSelf
	}

	user, err := s.userRepo.FindByIDInCompany(userID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if user.Email != memberEmail {
		return nil, ErrEmailMismatch
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return nil, fmt.Errorf("failed to delete profile: %w", err)
	}

	result := &DeleteResult{UserName: user.Name, Email: user.Email}

	if err := s.idp.DeleteAccount(userID); err != nil {
		// The profile row is already gone. An orphaned auth account is an
		// accepted transient inconsistency; report success with a warning.
		s.log.Warn("auth account deletion failed after profile removal",
			"user_id", userID, "error", err)
		result.Warning = fmt.Sprintf("auth account could not be deleted: %v", err)
	}

	return result, nil
}

// ResetResult reports a password reset.
type ResetResult struct {
	TempPassword string
	EmailSent    bool
}

// ResetPassword generates a new temporary password for the member with the
// given email and overwrites their credential. The plaintext is returned to
// the caller once; a notification email is sent best-effort. Members of
// other companies read as not found.
func (s *MemberService) ResetPassword(memberEmail, companyID string) (*ResetResult, error) {
	user, err := s.userRepo.FindByEmail(memberEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if user.CompanyID != companyID {
		return nil, ErrMemberNotFound
	}

	tempPassword := utils.GenerateTempPassword()
	if err := s.idp.SetPassword(user.ID, tempPassword, true); err != nil {
		s.log.Error("password reset failed", "user_id", user.ID, "error", err)
		return nil, ErrPasswordOperation
	}

	result := &ResetResult{TempPassword: tempPassword}

	loginURL := s.appURL + "/auth/login"
	body := email.PasswordResetBody(user.Name, memberEmail, tempPassword, loginURL)
	if err := s.mailer.Send(memberEmail, "[GENBA] Your password has been reset", body); err != nil {
		s.log.Warn("reset email not delivered", "email", memberEmail, "error", err)
	} else {
		result.EmailSent = true
	}

	return result, nil
}

// GetPassword recovers the member's stored temporary password. When none is
// recorded, a new one is generated and persisted, the same effect as a
// reset, and returned. Plaintext retrieval is a deliberate product
// behavior carried over from the original system. The target must belong
// to the actor's company.
func (s *MemberService) GetPassword(userID, memberEmail, companyID string) (string, error) {
	if !utils.IsUUID(userID) {
		return "", ErrInvalidID
	}

	user, err := s.userRepo.FindByIDInCompany(userID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMemberNotFound
		}
		return "", fmt.Errorf("failed to find member: %w", err)
	}
	if user.Email != memberEmail {
		return "", ErrEmailMismatch
	}

	account, err := s.idp.FindByID(userID)
	if err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			return "", ErrMemberNotFound
		}
		return "", fmt.Errorf("failed to find auth account: %w", err)
	}

	if account.TempPassword != nil && *account.TempPassword != "" {
		return *account.TempPassword, nil
	}

	tempPassword := utils.GenerateTempPassword()
	if err := s.idp.SetPassword(userID, tempPassword, true); err != nil {
		s.log.Error("password regeneration failed", "user_id", userID, "error", err)
		return "", ErrPasswordOperation
	}

	return tempPassword, nil
}

// ListMembers returns the company's member profiles.
func (s *MemberService) ListMembers(companyID string) ([]models.User, error) {
	users, err := s.userRepo.ListByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return users, nil
}
