package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o están fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// Envelope respuesta exitosa: {"success": true, "data": ...}.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorEnvelope respuesta de error: {"success": false, "error": {...}}.
type ErrorEnvelope struct {
	Success bool          `json:"success"`
	Error   ErrorResponse `json:"error"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK envuelve data en un Envelope exitoso.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail construye el envelope de error.
func Fail(code, message string) ErrorEnvelope {
	return ErrorEnvelope{Error: ErrorResponse{Code: code, Message: message}}
}
