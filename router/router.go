package router

import (
	"net/http"
	"wiser-api/common"
	"wiser-api/handler"
	"wiser-api/model"
)

// NewRouter wires every handler into a ServeMux. Route access follows the
// role model: members manage their own data, managers see their team's
// plans, HR and admins manage reference data, admins manage users.
func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	skillHandler *handler.SkillHandler,
	masterDataHandler *handler.MasterDataHandler,
	mappingHandler *handler.MappingHandler,
	profileHandler *handler.ProfileHandler,
	configDataHandler *handler.ConfigDataHandler,
	careerPlanHandler *handler.CareerPlanHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Auth
	mux.Handle("POST /auth/signup", handler.ErrorHandlingMiddleware(authHandler.Signup))
	mux.Handle("POST /auth/signin", handler.ErrorHandlingMiddleware(authHandler.Signin))
	mux.Handle("POST /auth/logout", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(authHandler.Logout)))
	mux.Handle("POST /auth/refresh", handler.RefreshMiddleware(handler.ErrorHandlingMiddleware(authHandler.Refresh)))

	// Users
	mux.Handle("GET /users/profile", authed(userHandler.GetProfile))
	mux.Handle("PATCH /users/profile", authed(userHandler.UpdateProfile))
	mux.Handle("GET /users", authed(userHandler.ListUsers))
	mux.Handle("GET /users/{id}", authed(userHandler.GetUser))
	mux.Handle("POST /users", restricted(userHandler.CreateUser, model.RoleAdmin))
	mux.Handle("PATCH /users/{id}", restricted(userHandler.UpdateUser, model.RoleAdmin, model.RoleHR))
	mux.Handle("PATCH /users/{id}/roles", restricted(userHandler.UpdateUserRoles, model.RoleAdmin))
	mux.Handle("DELETE /users/{id}", restricted(userHandler.DeleteUser, model.RoleAdmin))

	// User skills
	mux.Handle("POST /user-skills", authed(skillHandler.AddSkill))
	mux.Handle("GET /user-skills", authed(skillHandler.ListMySkills))
	mux.Handle("GET /user-skills/all", restricted(skillHandler.ListAllSkills, model.RoleManager, model.RoleHR, model.RoleAdmin))
	mux.Handle("PATCH /user-skills/{id}", authed(skillHandler.UpdateSkill))
	mux.Handle("DELETE /user-skills/{id}", authed(skillHandler.DeleteSkill))

	// Master data
	mux.Handle("GET /master-data", authed(masterDataHandler.List))
	mux.Handle("GET /master-data/{id}", authed(masterDataHandler.Get))
	mux.Handle("POST /master-data", restricted(masterDataHandler.Create, model.RoleHR, model.RoleAdmin))
	mux.Handle("POST /master-data/import", restricted(masterDataHandler.Import, model.RoleHR, model.RoleAdmin))
	mux.Handle("PATCH /master-data/{id}", restricted(masterDataHandler.Update, model.RoleHR, model.RoleAdmin))
	mux.Handle("DELETE /master-data/{id}", restricted(masterDataHandler.Delete, model.RoleHR, model.RoleAdmin))

	// Role-skill mappings
	mux.Handle("GET /role-skill-mappings", authed(mappingHandler.List))
	mux.Handle("GET /role-skill-mappings/{id}", authed(mappingHandler.Get))
	mux.Handle("POST /role-skill-mappings", restricted(mappingHandler.Create, model.RoleHR, model.RoleAdmin))
	mux.Handle("PATCH /role-skill-mappings/{id}", restricted(mappingHandler.Update, model.RoleHR, model.RoleAdmin))
	mux.Handle("DELETE /role-skill-mappings/{id}", restricted(mappingHandler.Delete, model.RoleHR, model.RoleAdmin))

	// Employee profiles
	mux.Handle("GET /employee-profiles", restricted(profileHandler.List, model.RoleManager, model.RoleHR, model.RoleAdmin))
	mux.Handle("GET /employee-profiles/{id}", restricted(profileHandler.Get, model.RoleManager, model.RoleHR, model.RoleAdmin))
	mux.Handle("POST /employee-profiles", restricted(profileHandler.Create, model.RoleHR, model.RoleAdmin))
	mux.Handle("PATCH /employee-profiles/{id}", restricted(profileHandler.Update, model.RoleHR, model.RoleAdmin))
	mux.Handle("DELETE /employee-profiles/{id}", restricted(profileHandler.Delete, model.RoleHR, model.RoleAdmin))

	// Config data
	mux.Handle("GET /config-data", authed(configDataHandler.List))
	mux.Handle("POST /config-data", restricted(configDataHandler.Create, model.RoleAdmin))
	mux.Handle("PATCH /config-data/{id}", restricted(configDataHandler.Update, model.RoleAdmin))
	mux.Handle("DELETE /config-data/{id}", restricted(configDataHandler.Delete, model.RoleAdmin))

	// Career plans
	mux.Handle("POST /career-plans", authed(careerPlanHandler.Create))
	mux.Handle("GET /career-plans/my-plans", authed(careerPlanHandler.MyPlans))
	mux.Handle("GET /career-plans/team-plans", restricted(careerPlanHandler.TeamPlans, model.RoleManager, model.RoleHR, model.RoleAdmin))
	mux.Handle("POST /career-plans/{id}/comment", restricted(careerPlanHandler.AddComment, model.RoleManager, model.RoleHR, model.RoleAdmin))
	mux.Handle("POST /career-plans/{id}/employee-comment", authed(careerPlanHandler.AddEmployeeComment))
	mux.Handle("PATCH /career-plans/{id}/status", authed(careerPlanHandler.UpdateStatus))
	mux.Handle("POST /career-plans/generate-growth-map", authed(careerPlanHandler.GenerateGrowthMap))
	mux.Handle("POST /career-plans/certificates", authed(careerPlanHandler.UploadCertificate))
	mux.Handle("GET /career-plans/my-certificates", authed(careerPlanHandler.MyCertificates))

	return mux
}

func authed(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
	return handler.AuthMiddleware(handler.ErrorHandlingMiddleware(h))
}

func restricted(h func(http.ResponseWriter, *http.Request) *common.AppError, roles ...model.Role) http.Handler {
	return handler.AuthMiddleware(handler.RoleMiddleware(handler.ErrorHandlingMiddleware(h), roles...))
}
