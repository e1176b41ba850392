package handlers

import "net/http"

// RegisterRoutes mounts the JSON API on mux
func RegisterRoutes(mux *http.ServeMux, m *Middleware, auth *AuthHandler, head *HeadHandler, admin *AdminHandler) {
	// Public routes
	mux.HandleFunc("GET /healthz", Health)
	mux.HandleFunc("GET /api/settings", auth.PublicSettings)
	mux.HandleFunc("POST /api/login", m.RateLimit(auth.Login))
	mux.HandleFunc("POST /api/register", m.RateLimit(auth.Register))

	// Any signed-in user
	mux.HandleFunc("POST /api/logout", m.RequireAuth(m.CSRFProtect(auth.Logout)))
	mux.HandleFunc("GET /api/me", m.RequireAuth(auth.Me))
	mux.HandleFunc("POST /api/me/dashboard", m.RequireAuth(m.CSRFProtect(auth.SwitchDashboard)))

	// Family head routes
	mux.HandleFunc("GET /api/family", m.RequireHead(head.GetFamily))
	mux.HandleFunc("POST /api/family", m.RequireHead(m.CSRFProtect(head.CreateFamily)))
	mux.HandleFunc("PUT /api/family", m.RequireHead(m.CSRFProtect(head.UpdateFamily)))
	mux.HandleFunc("GET /api/family/members", m.RequireHead(head.ListMembers))
	mux.HandleFunc("POST /api/family/members", m.RequireHead(m.CSRFProtect(head.AddMember)))
	mux.HandleFunc("PUT /api/family/members/{id}", m.RequireHead(m.CSRFProtect(head.UpdateMember)))
	mux.HandleFunc("DELETE /api/family/members/{id}", m.RequireHead(m.CSRFProtect(head.DeleteMember)))
	mux.HandleFunc("GET /api/family/requests", m.RequireHead(head.ListRequests))
	mux.HandleFunc("POST /api/family/requests", m.RequireHead(m.CSRFProtect(head.CreateRequest)))
	mux.HandleFunc("GET /api/notifications", m.RequireHead(head.Notifications))

	// Admin routes
	mux.HandleFunc("GET /api/admin/families", m.RequireAdmin(admin.ListFamilies))
	mux.HandleFunc("GET /api/admin/families/{id}", m.RequireAdmin(admin.GetFamily))
	mux.HandleFunc("PUT /api/admin/families/{id}", m.RequireAdmin(m.CSRFProtect(admin.UpdateFamily)))
	mux.HandleFunc("POST /api/admin/families/{id}/status", m.RequireAdmin(m.CSRFProtect(admin.SetFamilyStatus)))
	mux.HandleFunc("POST /api/admin/families/{id}/members", m.RequireAdmin(m.CSRFProtect(admin.AddMember)))
	mux.HandleFunc("PUT /api/admin/families/{id}/members/{memberId}", m.RequireAdmin(m.CSRFProtect(admin.UpdateMember)))
	mux.HandleFunc("DELETE /api/admin/families/{id}/members/{memberId}", m.RequireAdmin(m.CSRFProtect(admin.DeleteMember)))
	mux.HandleFunc("GET /api/admin/requests", m.RequireAdmin(admin.ListRequests))
	mux.HandleFunc("POST /api/admin/requests/{id}/review", m.RequireAdmin(m.CSRFProtect(admin.ReviewRequest)))
	mux.HandleFunc("GET /api/admin/notifications", m.RequireAdmin(admin.ListNotifications))
	mux.HandleFunc("POST /api/admin/notifications", m.RequireAdmin(m.CSRFProtect(admin.SendNotification)))
	mux.HandleFunc("GET /api/admin/users", m.RequireAdmin(admin.ListUsers))
	mux.HandleFunc("POST /api/admin/users", m.RequireAdmin(m.CSRFProtect(admin.CreateUser)))
	mux.HandleFunc("GET /api/admin/stats", m.RequireAdmin(admin.Stats))
	mux.HandleFunc("GET /api/admin/export", m.RequireAdmin(admin.Export))

	// Root only
	mux.HandleFunc("GET /api/admin/settings", m.RequireRoot(admin.GetSettings))
	mux.HandleFunc("PUT /api/admin/settings", m.RequireRoot(m.CSRFProtect(admin.UpdateSettings)))
	mux.HandleFunc("GET /api/admin/activity", m.RequireRoot(admin.Activity))
}
