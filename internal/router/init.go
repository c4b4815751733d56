package router

import (
	"github.com/ysakata/member-api/internal/application"
	"github.com/ysakata/member-api/internal/container"
	pginfra "github.com/ysakata/member-api/internal/infrastructure/postgres"
	handlers "github.com/ysakata/member-api/internal/interface/http"
	"github.com/ysakata/member-api/internal/router/modules"
)

type MemberModuleDeps struct {
	Verifications *application.VerificationService
	Registration  *application.RegistrationService
	Auth          *application.AuthService
	Profile       *application.ProfileService

	MemberHandler     *handlers.MemberHandler
	ProfileHandler    *handlers.ProfileHandler
	MasterDataHandler *handlers.MasterDataHandler
}

func buildMemberDeps() MemberModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewMemberProfileRepository(pool)
	verifications := pginfra.NewEmailVerificationRepository(pool)

	verificationSvc := application.NewVerificationService(verifications, logger)

	var pub application.MailPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	registrationSvc := application.NewRegistrationService(
		users,
		verificationSvc,
		pub,
		logger,
		cfg.RegisterURL(),
		cfg.MailSendEnabled,
	)

	authSvc := application.NewAuthService(
		users,
		profiles,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		cfg.SessionTTL,
	)

	profileSvc := application.NewProfileService(
		users,
		profiles,
		verificationSvc,
		pub,
		logger,
		cfg.UpdateEmailURL(),
		cfg.MailSendEnabled,
	)

	return MemberModuleDeps{
		Verifications: verificationSvc,
		Registration:  registrationSvc,
		Auth:          authSvc,
		Profile:       profileSvc,

		MemberHandler: handlers.NewMemberHandler(
			registrationSvc,
			authSvc,
			verificationSvc,
			logger,
			cfg.CookieDomain,
			cfg.CookieSecure,
		),
		ProfileHandler:    handlers.NewProfileHandler(profileSvc, logger),
		MasterDataHandler: handlers.NewMasterDataHandler(),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildMemberDeps()
	jwt := container.GetJWT()
	rdb := container.GetRedis()

	r.Add(modules.NewMasterDataModule(deps.MasterDataHandler))
	r.Add(modules.NewMemberModule(deps.MemberHandler, jwt, rdb))
	r.Add(modules.NewProfileModule(deps.ProfileHandler, jwt, rdb))
}
