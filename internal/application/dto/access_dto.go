package dto

// PermissionsResponse respuesta de GET /api/access/permissions.
type PermissionsResponse struct {
	UserID      string   `json:"user_id"`
	CompanyID   string   `json:"company_id"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	Modules     []string `json:"modules"`
	Loading     bool     `json:"loading"`
}

// RouteCheckResponse decisión del guard para una ruta del dashboard.
type RouteCheckResponse struct {
	Path     string `json:"path"`
	State    string `json:"state"`
	Redirect string `json:"redirect,omitempty"`
}
