package main

import (
	"fmt"
	"net/http"

	"github.com/thinkforge/hrms-backend-go/internal/config"
	appHTTP "github.com/thinkforge/hrms-backend-go/internal/handler/http"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/jwt"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/mailer"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/oauth"
	"github.com/thinkforge/hrms-backend-go/internal/repository/postgresql"
	authService "github.com/thinkforge/hrms-backend-go/internal/service/auth"
	dashboardService "github.com/thinkforge/hrms-backend-go/internal/service/dashboard"
	departmentService "github.com/thinkforge/hrms-backend-go/internal/service/department"
	employeeService "github.com/thinkforge/hrms-backend-go/internal/service/employee"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
	leaveService "github.com/thinkforge/hrms-backend-go/internal/service/leave"
	notifierService "github.com/thinkforge/hrms-backend-go/internal/service/notifier"
	settingsService "github.com/thinkforge/hrms-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveApplicationRepo := postgresql.NewLeaveApplicationRepository(db)
	emailTemplateRepo := postgresql.NewEmailTemplateRepository(db)
	senderConfigRepo := postgresql.NewSenderConfigRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	})

	notifier := notifierService.NewNotifierService(emailTemplateRepo, senderConfigRepo, smtpMailer)
	resolver := identity.NewResolverService(roleRepo, employeeRepo)
	visibility := leaveService.NewVisibilityService(employeeRepo)
	balanceSvc := leaveService.NewBalanceService(leaveTypeRepo, leaveBalanceRepo, employeeRepo)
	routerSvc := leaveService.NewRouterService(db, leaveTypeRepo, leaveApplicationRepo, leaveBalanceRepo, employeeRepo, balanceSvc, notifier)
	leaveSvc := leaveService.NewService(leaveTypeRepo, leaveApplicationRepo, visibility)
	employeeSvc := employeeService.NewEmployeeService(db, userRepo, roleRepo, employeeRepo, profileRepo, notifier)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, leaveApplicationRepo, balanceSvc, leaveSvc)
	settingsSvc := settingsService.NewSettingsService(emailTemplateRepo, senderConfigRepo, announcementRepo)
	authSvc := authService.NewAuthService(db, userRepo, employeeRepo, JWTService, refreshTokenRepo, resolver)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	leaveHandler := appHTTP.NewLeaveHandler(resolver, routerSvc, leaveSvc, balanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	departmentHandler := appHTTP.NewDepartmentHandler(departmentSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(resolver, dashboardSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		leaveHandler,
		employeeHandler,
		departmentHandler,
		dashboardHandler,
		settingsHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
		cfg.App.LogLevel,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
