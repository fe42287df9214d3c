package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/notification"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/validator"
	"github.com/thinkforge/hrms-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db *database.DB
	user.UserRepository
	user.RoleRepository
	employee.EmployeeRepository
	employee.ProfileRepository
	notifier notification.Notifier
}

func NewEmployeeService(
	db *database.DB,
	userRepository user.UserRepository,
	roleRepository user.RoleRepository,
	employeeRepository employee.EmployeeRepository,
	profileRepository employee.ProfileRepository,
	notifier notification.Notifier,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		db:                 db,
		UserRepository:     userRepository,
		RoleRepository:     roleRepository,
		EmployeeRepository: employeeRepository,
		ProfileRepository:  profileRepository,
		notifier:           notifier,
	}
}

// Provision creates the personnel record and, when the email is new, the
// principal behind it. Only admin or hr may call this.
func (s *EmployeeServiceImpl) Provision(ctx context.Context, actorUserID string, req employee.ProvisionEmployeeRequest) (employee.ProvisionEmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProvisionEmployeeResponse{}, err
	}

	allowed, err := s.RoleRepository.IsAdminOrHR(ctx, actorUserID)
	if err != nil {
		return employee.ProvisionEmployeeResponse{}, fmt.Errorf("failed to check actor privileges: %w", err)
	}
	if !allowed {
		return employee.ProvisionEmployeeResponse{}, user.ErrAdminOrHRRequired
	}

	exists, err := s.EmployeeRepository.ExistsByCode(ctx, req.EmployeeCode)
	if err != nil {
		return employee.ProvisionEmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if exists {
		return employee.ProvisionEmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	if req.ReportingManagerID != nil {
		if err := s.validateManager(ctx, "", *req.ReportingManagerID); err != nil {
			return employee.ProvisionEmployeeResponse{}, err
		}
	}

	var response employee.ProvisionEmployeeResponse
	var tempPassword string

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// Reuse the principal when the email already has one; otherwise
		// create it with a temp password the caller relays to the employee.
		principal, err := s.UserRepository.GetByEmail(txCtx, req.Email)
		if err != nil {
			if !errors.Is(err, user.ErrUserNotFound) {
				return fmt.Errorf("failed to get user by email: %w", err)
			}

			tempPassword = generateTempPassword()
			hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash temp password: %w", err)
			}
			hashed := string(hash)

			principal, err = s.UserRepository.Create(txCtx, user.User{
				Email:        req.Email,
				PasswordHash: &hashed,
			})
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			if _, err := s.ProfileRepository.Create(txCtx, employee.Profile{
				UserID:    principal.ID,
				FirstName: req.FirstName,
				LastName:  req.LastName,
				Email:     req.Email,
				Phone:     req.Phone,
			}); err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
		}

		if err := s.RoleRepository.Assign(txCtx, principal.ID, user.RoleTeamMember); err != nil {
			return fmt.Errorf("failed to assign role: %w", err)
		}

		joining, _ := validator.IsValidDate(req.DateOfJoining)
		record := employee.Employee{
			UserID:             &principal.ID,
			EmployeeCode:       req.EmployeeCode,
			DepartmentID:       req.DepartmentID,
			ReportingManagerID: req.ReportingManagerID,
			EmploymentType:     employee.EmploymentType(req.EmploymentType),
			DateOfJoining:      joining,
			WorkLocation:       req.WorkLocation,
			Designation:        req.Designation,
			IsActive:           true,
		}
		if req.Gender != nil {
			g := employee.Gender(*req.Gender)
			record.Gender = &g
		}
		if req.ProbationEndDate != nil {
			probation, _ := validator.IsValidDate(*req.ProbationEndDate)
			record.ProbationEndDate = &probation
		}

		created, err := s.EmployeeRepository.Create(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		response = employee.ProvisionEmployeeResponse{
			EmployeeID:       created.ID,
			UserID:           principal.ID,
			ShowTempPassword: tempPassword != "",
		}
		if tempPassword != "" {
			response.TempPassword = &tempPassword
		}
		return nil
	})
	if err != nil {
		return employee.ProvisionEmployeeResponse{}, err
	}

	s.sendWelcome(ctx, req, tempPassword)
	return response, nil
}

// Update patches the personnel record. Manager changes re-run the cycle
// check against the stored reporting chain.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, id); err != nil {
		return employee.Employee{}, err
	}

	if req.ReportingManagerID != nil {
		if err := s.validateManager(ctx, id, *req.ReportingManagerID); err != nil {
			return employee.Employee{}, err
		}
	}

	if err := s.EmployeeRepository.Update(ctx, id, req); err != nil {
		return employee.Employee{}, err
	}
	return s.EmployeeRepository.GetByID(ctx, id)
}

// Deactivate soft-deletes the record. The row stays for history.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !emp.IsActive {
		return employee.ErrAlreadyInactive
	}
	return s.EmployeeRepository.SetActive(ctx, id, false)
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	return s.EmployeeRepository.ListActive(ctx)
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.EmployeeRepository.GetByID(ctx, id)
}

// validateManager rejects self-management, inactive managers, and any
// assignment that would close a reporting cycle. employeeID is empty for new
// records, which cannot form a cycle.
func (s *EmployeeServiceImpl) validateManager(ctx context.Context, employeeID, managerID string) error {
	if employeeID != "" && employeeID == managerID {
		return employee.ErrSelfManager
	}

	manager, err := s.EmployeeRepository.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrManagerNotFound
		}
		return fmt.Errorf("failed to get manager: %w", err)
	}
	if !manager.IsActive {
		return employee.ErrManagerInactive
	}
	if employeeID == "" {
		return nil
	}

	// Walk up from the proposed manager. Hitting the employee means the
	// assignment would close a loop. The visited set guards against a chain
	// that is already corrupt.
	visited := map[string]bool{managerID: true}
	current := manager
	for current.ReportingManagerID != nil {
		next := *current.ReportingManagerID
		if next == employeeID {
			return employee.ErrManagerCycle
		}
		if visited[next] {
			return employee.ErrManagerCycle
		}
		visited[next] = true

		current, err = s.EmployeeRepository.GetByID(ctx, next)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil
			}
			return fmt.Errorf("failed to walk reporting chain: %w", err)
		}
	}
	return nil
}

// sendWelcome fires the onboarding email without blocking provisioning.
func (s *EmployeeServiceImpl) sendWelcome(ctx context.Context, req employee.ProvisionEmployeeRequest, tempPassword string) {
	data := map[string]string{
		"first_name":    req.FirstName,
		"last_name":     req.LastName,
		"employee_code": req.EmployeeCode,
		"email":         req.Email,
		"temp_password": tempPassword,
	}

	sendCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.notifier.Send(sendCtx, notification.EmailRequest{
			To:           req.Email,
			TemplateName: notification.TemplateWelcome,
			Data:         data,
		}); err != nil {
			slog.Warn("failed to send welcome email", "email", req.Email, "error", err)
		}
	}()
}

func generateTempPassword() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
